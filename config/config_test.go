package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-ledger/config"
)

func writeConfig(t *testing.T, homePath string, cfg *config.Config) {
	fileParser := flags.NewParser(cfg, flags.Default)
	err := flags.NewIniParser(fileParser).WriteFile(config.ConfigFile(homePath), flags.IniIncludeComments|flags.IniIncludeDefaults)
	require.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	homePath := t.TempDir()

	_, err := config.LoadConfig(homePath)
	require.Error(t, err)

	cfg := config.DefaultConfigWithHomePath(homePath)
	cfg.Admins = []string{"owner", "operator"}
	cfg.Ledger.AutoInitialize = true
	cfg.Ledger.RewardPercentage = 25
	cfg.Ledger.ClaimFrozenTime = config.FrozenTime(90 * time.Second)
	cfg.API.Port = 9090
	writeConfig(t, homePath, &cfg)

	loaded, err := config.LoadConfig(homePath)
	require.NoError(t, err)
	require.Equal(t, []string{"owner", "operator"}, loaded.Admins)
	require.True(t, loaded.Ledger.AutoInitialize)
	require.Equal(t, uint64(25), loaded.Ledger.RewardPercentage)
	require.Equal(t, 90*time.Second, loaded.Ledger.ClaimFrozenTime.Duration())
	require.Equal(t, 9090, loaded.API.Port)
	require.Equal(t, filepath.Join(config.DataDir(homePath), "ledger.db"), loaded.DBPath)

	addr, err := loaded.API.Address()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9090", addr)
}

func TestLoadConfigFrozenTimeInSeconds(t *testing.T) {
	homePath := t.TempDir()
	cfg := config.DefaultConfigWithHomePath(homePath)
	cfg.Ledger.ClaimFrozenTime = config.FrozenTime(7 * time.Minute)
	writeConfig(t, homePath, &cfg)

	// an operator writing a bare number of seconds
	cfgFile := config.ConfigFile(homePath)
	content, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "7m0s")
	content = []byte(strings.Replace(string(content), "7m0s", "600", 1))
	require.NoError(t, os.WriteFile(cfgFile, content, 0600))

	loaded, err := config.LoadConfig(homePath)
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, loaded.Ledger.ClaimFrozenTime.Duration())
}

func TestFrozenTimeFlag(t *testing.T) {
	var f config.FrozenTime
	require.NoError(t, f.UnmarshalFlag("600"))
	require.Equal(t, 10*time.Minute, f.Duration())
	require.NoError(t, f.UnmarshalFlag("90s"))
	require.Equal(t, 90*time.Second, f.Duration())
	require.Error(t, f.UnmarshalFlag("-1s"))

	s, err := config.FrozenTime(10 * time.Minute).MarshalFlag()
	require.NoError(t, err)
	require.Equal(t, "10m0s", s)
}

func TestLoadConfigInvalid(t *testing.T) {
	homePath := t.TempDir()
	cfg := config.DefaultConfigWithHomePath(homePath)
	cfg.API.Host = "localhost"
	writeConfig(t, homePath, &cfg)

	_, err := config.LoadConfig(homePath)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Ledger.RewardToken = ""
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.Metrics.UpdateInterval = 0
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.API.Port = 70000
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.DBPath = ""
	require.Error(t, cfg.Validate())
}

func TestLedgerTokens(t *testing.T) {
	cfg := config.DefaultLedgerConfig()
	require.Equal(t, []string{"STK", "RWRD"}, cfg.Tokens())

	cfg.RewardToken = cfg.StakingToken
	require.Equal(t, []string{"STK"}, cfg.Tokens())
}
