package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	sdkmath "cosmossdk.io/math"
	bolt "go.etcd.io/bbolt"

	"github.com/babylonchain/staking-ledger/types"
	"github.com/babylonchain/staking-ledger/util"
)

const (
	// DatabaseFileName is the name of the ledger database under the data directory.
	DatabaseFileName = "ledger.db"

	boltOpenTimeout = 1 * time.Second
)

var (
	settingsBucket = []byte("settings")
	recordsBucket  = []byte("records")
	eventsBucket   = []byte("events")
	balancesBucket = []byte("balances")

	settingsKey = []byte("current")
)

// Store keeps the ledger state in a bolt database: the settings singleton,
// one record per account, the event log and the custody token balances.
type Store struct {
	db     *bolt.DB
	dbPath string
}

func NewStore(dbPath string) (*Store, error) {
	if err := util.MakeDirectory(filepath.Dir(dbPath)); err != nil {
		return nil, err
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, fmt.Errorf("cannot obtain database lock, database may be in use by another process")
		}
		return nil, fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		return createBuckets(tx, settingsBucket, recordsBucket, eventsBucket, balancesBucket)
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func createBuckets(tx *bolt.Tx, buckets ...[]byte) error {
	for _, bucket := range buckets {
		if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) SaveSettings(settings *types.Settings) error {
	v, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put(settingsKey, v)
	})
}

// LoadSettings returns nil if no settings were ever saved.
func (s *Store) LoadSettings() (*types.Settings, error) {
	var settings *types.Settings
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get(settingsKey)
		if v == nil {
			return nil
		}
		settings = &types.Settings{}
		return json.Unmarshal(v, settings)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	return settings, nil
}

func (s *Store) SaveRecord(rec *types.StakeRecord) error {
	if rec.Account == "" {
		return fmt.Errorf("record without account")
	}
	v, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(rec.Account), v)
	})
}

func (s *Store) LoadRecords() ([]*types.StakeRecord, error) {
	records := make([]*types.StakeRecord, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).ForEach(func(k, v []byte) error {
			rec := &types.StakeRecord{}
			if err := json.Unmarshal(v, rec); err != nil {
				return fmt.Errorf("invalid record of %s: %w", k, err)
			}
			records = append(records, rec)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	return records, nil
}

// SaveEvent appends ev to the event log and sets its sequence number.
func (s *Store) SaveEvent(ev *types.Event) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(eventsBucket)
		seq, err := bkt.NextSequence()
		if err != nil {
			return err
		}

		stored := *ev
		stored.Seq = seq
		v, err := json.Marshal(&stored)
		if err != nil {
			return err
		}
		if err := bkt.Put(seqKey(seq), v); err != nil {
			return err
		}

		ev.Seq = seq
		return nil
	})
}

// LoadEvents returns up to limit events with a sequence number of at least
// from, in order. A zero limit returns all of them.
func (s *Store) LoadEvents(from uint64, limit uint64) ([]*types.Event, error) {
	events := make([]*types.Event, 0)
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(eventsBucket).Cursor()
		for k, v := c.Seek(seqKey(from)); k != nil; k, v = c.Next() {
			if limit != 0 && uint64(len(events)) >= limit {
				break
			}
			ev := &types.Event{}
			if err := json.Unmarshal(v, ev); err != nil {
				return fmt.Errorf("invalid event %d: %w", binary.BigEndian.Uint64(k), err)
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	return events, nil
}

func (s *Store) SaveBalances(token string, balances map[string]sdkmath.Int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.Bucket(balancesBucket).CreateBucketIfNotExists([]byte(token))
		if err != nil {
			return err
		}
		for acc, bal := range balances {
			v, err := bal.Marshal()
			if err != nil {
				return err
			}
			if err := bkt.Put([]byte(acc), v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) LoadBalances(token string) (map[string]sdkmath.Int, error) {
	balances := make(map[string]sdkmath.Int)
	err := s.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(balancesBucket).Bucket([]byte(token))
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, v []byte) error {
			var bal sdkmath.Int
			if err := bal.Unmarshal(v); err != nil {
				return fmt.Errorf("invalid balance of %s: %w", k, err)
			}
			balances[string(k)] = bal
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load balances of %s: %w", token, err)
	}

	return balances, nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
