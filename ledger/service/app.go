package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/babylonchain/staking-ledger/access"
	"github.com/babylonchain/staking-ledger/config"
	"github.com/babylonchain/staking-ledger/ledger"
	"github.com/babylonchain/staking-ledger/store"
	"github.com/babylonchain/staking-ledger/tokencontroller"
)

// autoInitCaller is the caller logged when the daemon initializes the
// ledger from its config.
const autoInitCaller = "stkd"

// LedgerApp holds the components of a running ledger daemon, all backed by
// the same database.
type LedgerApp struct {
	Store    *store.Store
	Admins   *access.AdminSet
	Banks    map[string]*tokencontroller.Bank
	Settings *ledger.SettingsController
	Ledger   *ledger.Ledger
	API      *APIServer

	logger *zap.Logger
}

// NewLedgerApp opens the database and restores the ledger from it. If the
// ledger was never initialized and the config asks for it, it is
// initialized with the configured settings.
func NewLedgerApp(cfg *config.Config, logger *zap.Logger) (*LedgerApp, error) {
	apiAddr, err := cfg.API.Address()
	if err != nil {
		return nil, err
	}

	st, err := store.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open the ledger database: %w", err)
	}

	app, err := newLedgerApp(cfg, st, apiAddr, logger)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	return app, nil
}

func newLedgerApp(cfg *config.Config, st *store.Store, apiAddr string, logger *zap.Logger) (*LedgerApp, error) {
	logger.Info("opened ledger database", zap.String("path", st.Path()))

	admins := access.NewAdminSet(cfg.Admins...)
	if admins.Len() == 0 {
		logger.Warn("no administrator configured, the settings cannot be changed")
	}

	registry := tokencontroller.NewStaticRegistry(logger)
	banks := make(map[string]*tokencontroller.Bank)
	apiBanks := make(map[string]TokenBank)
	for _, symbol := range cfg.Ledger.Tokens() {
		bank, err := tokencontroller.NewBank(symbol, cfg.Ledger.CustodyAccount, st, logger)
		if err != nil {
			return nil, err
		}
		if err := registry.Register(symbol, bank); err != nil {
			return nil, err
		}
		banks[symbol] = bank
		apiBanks[symbol] = bank

		logger.Info("loaded custody token",
			zap.String("token", bank.Symbol()),
			zap.String("custody_account", bank.Custody()),
			zap.String("total_supply", bank.TotalSupply().String()),
		)
	}

	sc, err := ledger.NewSettingsController(admins, st, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore the ledger settings: %w", err)
	}

	if !sc.IsInitialized() && cfg.Ledger.AutoInitialize {
		if err := sc.Initialize(
			autoInitCaller,
			cfg.Ledger.StakingToken,
			cfg.Ledger.RewardToken,
			cfg.Ledger.RewardPercentage,
			cfg.Ledger.UnstakeFrozenTime.Duration(),
			cfg.Ledger.ClaimFrozenTime.Duration(),
		); err != nil {
			return nil, fmt.Errorf("failed to initialize the ledger: %w", err)
		}
	}

	if settings := sc.Settings(); settings.Initialized {
		for _, symbol := range []string{settings.StakingToken, settings.RewardToken} {
			if _, ok := banks[symbol]; !ok {
				return nil, fmt.Errorf("the ledger was initialized with token %s which is not configured", symbol)
			}
		}
	}

	l, err := ledger.NewLedger(sc, registry, st, ledger.SystemClock{}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to restore the ledger: %w", err)
	}
	l.Subscribe(NewEventRecorder(st, logger))

	return &LedgerApp{
		Store:    st,
		Admins:   admins,
		Banks:    banks,
		Settings: sc,
		Ledger:   l,
		API:      NewAPIServer(apiAddr, l, sc, apiBanks, admins, st, logger),
		logger:   logger,
	}, nil
}

func (app *LedgerApp) Close() error {
	return app.Store.Close()
}
