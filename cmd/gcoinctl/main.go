package main

import (
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, cfg, subConfig := parseCommandLine()

	err := run(subCmd, cfg, subConfig)
	if logger.BackendLog.IsRunning() {
		logger.BackendLog.Close()
	}
	if err != nil {
		printErrorAndExit(err)
	}
}

func run(subCmd string, cfg *config.Config, subConfig interface{}) error {
	switch subCmd {
	case genKeyPairSubCmd:
		return genKeyPair(cfg, subConfig.(*genKeyPairConfig))
	case createSubCmd:
		return create(cfg, subConfig.(*createConfig))
	case signSubCmd:
		return sign(cfg, subConfig.(*signConfig))
	}

	// The remaining commands work on the chain state and log what they do
	err := cfg.InitLogging()
	if err != nil {
		return err
	}
	switch subCmd {
	case validateSubCmd:
		return validate(cfg, subConfig.(*validateConfig))
	case applySubCmd:
		return apply(cfg, subConfig.(*applyConfig))
	case mineSubCmd:
		return mine(cfg, subConfig.(*mineConfig))
	case ownerSubCmd:
		return owner(cfg, subConfig.(*ownerConfig))
	case balanceSubCmd:
		return balance(cfg, subConfig.(*balanceConfig))
	case tipSubCmd:
		return tip(cfg)
	default:
		return errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}
}
