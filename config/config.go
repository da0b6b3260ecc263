package config

import (
	"fmt"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/jessevdk/go-flags"

	"github.com/babylonchain/staking-ledger/util"
)

const (
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultLogFilename    = "stkd.log"
	defaultConfigFileName = "stkd.conf"
	defaultDBFileName     = "ledger.db"
	defaultLogDirname     = "logs"
	defaultDataDirname    = "data"
)

var (
	// DefaultStkdDir specifies the default home directory for the ledger daemon:
	//   C:\Users\<username>\AppData\Local\ on Windows
	//   ~/.stkd on Linux
	//   ~/Library/Application Support/Stkd on MacOS
	DefaultStkdDir = btcutil.AppDataDir("stkd", false)
)

type Config struct {
	LogLevel  string   `long:"loglevel" description:"Logging level for all subsystems" choice:"debug" choice:"info" choice:"warn" choice:"error" choice:"fatal"`
	LogFormat string   `long:"logformat" description:"Format of the log lines" choice:"console" choice:"json" choice:"logfmt"`
	DBPath    string   `long:"dbpath" description:"The path to the ledger database file"`
	Admins    []string `long:"admin" description:"An account holding the administrator capability, may be repeated"`

	Ledger *LedgerConfig `group:"ledger" namespace:"ledger"`

	API *APIConfig `group:"api" namespace:"api"`

	Metrics *MetricsConfig `group:"metrics" namespace:"metrics"`
}

// LoadConfig reads the configuration file under homePath and validates it.
// Options missing from the file keep their default values.
func LoadConfig(homePath string) (*Config, error) {
	cfgFile := ConfigFile(homePath)
	if !util.FileExists(cfgFile) {
		return nil, fmt.Errorf("specified config file does "+
			"not exist in %s", cfgFile)
	}

	cfg := DefaultConfigWithHomePath(homePath)
	fileParser := flags.NewParser(&cfg, flags.Default)
	if err := flags.NewIniParser(fileParser).ParseFile(cfgFile); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the given configuration to be sane and normalizes the
// database path.
func (cfg *Config) Validate() error {
	if cfg.Ledger == nil {
		return fmt.Errorf("empty ledger config")
	}
	if err := cfg.Ledger.Validate(); err != nil {
		return fmt.Errorf("invalid ledger config: %w", err)
	}

	if cfg.API == nil {
		return fmt.Errorf("empty api config")
	}
	if err := cfg.API.Validate(); err != nil {
		return fmt.Errorf("invalid api config: %w", err)
	}

	if cfg.Metrics == nil {
		return fmt.Errorf("empty metrics config")
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("invalid metrics config: %w", err)
	}

	if cfg.DBPath == "" {
		return fmt.Errorf("empty database path")
	}
	cfg.DBPath = util.CleanAndExpandPath(cfg.DBPath)

	return nil
}

func ConfigFile(homePath string) string {
	return filepath.Join(homePath, defaultConfigFileName)
}

func LogFile(homePath string) string {
	return filepath.Join(LogDir(homePath), defaultLogFilename)
}

func LogDir(homePath string) string {
	return filepath.Join(homePath, defaultLogDirname)
}

func DataDir(homePath string) string {
	return filepath.Join(homePath, defaultDataDirname)
}

func DefaultConfigWithHomePath(homePath string) Config {
	ledgerCfg := DefaultLedgerConfig()
	apiCfg := DefaultAPIConfig()
	metricsCfg := DefaultMetricsConfig()
	cfg := Config{
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
		DBPath:    filepath.Join(DataDir(homePath), defaultDBFileName),
		Ledger:    &ledgerCfg,
		API:       &apiCfg,
		Metrics:   &metricsCfg,
	}

	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	return cfg
}

func DefaultConfig() Config {
	return DefaultConfigWithHomePath(DefaultStkdDir)
}
