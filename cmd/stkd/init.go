package main

import (
	"fmt"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/urfave/cli"

	stkcfg "github.com/babylonchain/staking-ledger/config"
	"github.com/babylonchain/staking-ledger/util"
)

var initCommand = cli.Command{
	Name:  "init",
	Usage: "Initialize a staking ledger home directory.",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  homeFlag,
			Usage: "Path to where the home directory will be initialized",
			Value: stkcfg.DefaultStkdDir,
		},
		cli.BoolFlag{
			Name:     forceFlag,
			Usage:    "Override existing configuration",
			Required: false,
		},
		cli.StringSliceFlag{
			Name:  "admin",
			Usage: "An account holding the administrator capability, may be repeated",
		},
	},
	Action: initHome,
}

func initHome(c *cli.Context) error {
	homePath, err := filepath.Abs(c.String(homeFlag))
	if err != nil {
		return err
	}
	homePath = util.CleanAndExpandPath(homePath)
	force := c.Bool(forceFlag)

	if util.FileExists(homePath) && !force {
		return fmt.Errorf("home path %s already exists", homePath)
	}

	for _, dir := range []string{homePath, stkcfg.LogDir(homePath), stkcfg.DataDir(homePath)} {
		if err := util.MakeDirectory(dir); err != nil {
			return err
		}
	}

	defaultConfig := stkcfg.DefaultConfigWithHomePath(homePath)
	defaultConfig.Admins = c.StringSlice("admin")
	fileParser := flags.NewParser(&defaultConfig, flags.Default)

	return flags.NewIniParser(fileParser).WriteFile(stkcfg.ConfigFile(homePath), flags.IniIncludeComments|flags.IniIncludeDefaults)
}
