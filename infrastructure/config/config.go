package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/miningmanager/blocktemplatebuilder"
	"github.com/gcoinproject/gcoind/infrastructure/logger"
	"github.com/gcoinproject/gcoind/util"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultConfigFilename    = "gcoind.conf"
	defaultDataDirname       = "data"
	defaultLogLevel          = "info"
	defaultLogDirname        = "logs"
	defaultLogFilename       = "gcoind.log"
	defaultErrLogFilename    = "gcoind_err.log"
	defaultUTXOCacheSize     = 10_000
	defaultValidationWorkers = 4
	defaultLevelDBCacheMiB   = 256
)

var (
	// DefaultHomeDir is the default home directory for gcoind.
	DefaultHomeDir = btcutil.AppDataDir("gcoind", false)

	defaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(DefaultHomeDir, defaultLogDirname)

	// defaultMinRelayTxFee is DefaultMinRelayTxFee units of the default
	// fee color per 1000 bytes
	defaultMinRelayTxFee = util.FormatColorAmount(
		util.NewFeeRateFromValue(constants.DefaultMinRelayTxFee).PerK())
)

// Flags defines the configuration options shared by gcoind tools.
//
// See Load for details on the configuration load process.
type Flags struct {
	ConfigFile        string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir           string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir            string `long:"logdir" description:"Directory to log output."`
	DebugLevel        string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <level>,<subsystem>=<level>,<subsystem>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	MinRelayTxFee     string `long:"minrelaytxfee" description:"The minimum transaction fee rate per kilobyte, as color:amount pairs, for a transaction to not be considered low-fee"`
	BlockMaxSize      uint64 `long:"blockmaxsize" description:"Maximum block size in bytes to be used when creating a block"`
	BlockMinSize      uint64 `long:"blockminsize" description:"Size in bytes up to which low-fee transactions are still included when creating a block"`
	BlockPrioritySize uint64 `long:"blockprioritysize" description:"Size in bytes for high-priority transactions when creating a block"`
	ValidationWorkers int    `long:"validation-workers" description:"Number of transactions validated concurrently"`
	UTXOCacheSize     int    `long:"utxocachesize" description:"Number of UTXO entries kept in memory"`
	LevelDBCacheMiB   int    `long:"leveldbcache" description:"Size of the LevelDB block cache in MiB"`
	NetworkFlags
}

// Config is the resolved configuration
type Config struct {
	*Flags
	MinRelayTxFeeRate *util.FeeRate
}

// DefaultFlags returns the flags every tool starts from before the config
// file and the command line are applied
func DefaultFlags() *Flags {
	return &Flags{
		ConfigFile:        defaultConfigFile,
		DataDir:           defaultDataDir,
		LogDir:            defaultLogDir,
		DebugLevel:        defaultLogLevel,
		MinRelayTxFee:     defaultMinRelayTxFee,
		BlockMaxSize:      constants.DefaultBlockMaxSize,
		BlockMinSize:      constants.DefaultBlockMinSize,
		BlockPrioritySize: constants.DefaultBlockPrioritySize,
		ValidationWorkers: defaultValidationWorkers,
		UTXOCacheSize:     defaultUTXOCacheSize,
		LevelDBCacheMiB:   defaultLevelDBCacheMiB,
	}
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(DefaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but they variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// LoadConfigFile applies the config file named on the command line, or the
// default one, to cfgFlags. A missing default config file is not an error.
//
// The configuration proceeds as follows:
// 	1) Start with a default config with sane settings
// 	2) Pre-parse the command line to check for an alternative config file
// 	3) Load configuration file overwriting defaults with any specified options
//
// The caller then parses the command line with its own parser so command line
// options always take precedence.
func (cfgFlags *Flags) LoadConfigFile(args []string) error {
	preCfg := *cfgFlags
	preParser := flags.NewParser(&preCfg, flags.IgnoreUnknown)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			return err
		}
	}

	parser := flags.NewParser(cfgFlags, flags.IgnoreUnknown)
	err = flags.NewIniParser(parser).ParseFile(cleanAndExpandPath(preCfg.ConfigFile))
	if err != nil {
		if _, ok := err.(*os.PathError); ok && preCfg.ConfigFile == defaultConfigFile {
			return nil
		}
		return errors.Wrapf(err, "error parsing config file %s", preCfg.ConfigFile)
	}
	cfgFlags.ConfigFile = preCfg.ConfigFile
	return nil
}

// Resolve validates cfgFlags once they are parsed. The data and log
// directories get the network name appended so that every network keeps its
// own state.
func (cfgFlags *Flags) Resolve(parser *flags.Parser) (*Config, error) {
	err := cfgFlags.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	cfgFlags.DataDir = filepath.Join(cleanAndExpandPath(cfgFlags.DataDir), cfgFlags.NetParams().Name)
	cfgFlags.LogDir = filepath.Join(cleanAndExpandPath(cfgFlags.LogDir), cfgFlags.NetParams().Name)

	if cfgFlags.BlockMaxSize == 0 || cfgFlags.BlockMaxSize > constants.MaxBlockSize {
		return nil, errors.Errorf("blockmaxsize must be in the range 1..%d, got %d",
			constants.MaxBlockSize, cfgFlags.BlockMaxSize)
	}
	if cfgFlags.BlockMinSize > cfgFlags.BlockMaxSize {
		return nil, errors.Errorf("blockminsize %d is above blockmaxsize %d",
			cfgFlags.BlockMinSize, cfgFlags.BlockMaxSize)
	}
	if cfgFlags.ValidationWorkers <= 0 {
		return nil, errors.Errorf("validation-workers must be positive, got %d", cfgFlags.ValidationWorkers)
	}

	minRelayTxFee, err := util.ParseColorAmount(cfgFlags.MinRelayTxFee)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid minrelaytxfee %q", cfgFlags.MinRelayTxFee)
	}
	if !minRelayTxFee.IsPositive() {
		return nil, errors.Errorf("minrelaytxfee %q has a negative entry", cfgFlags.MinRelayTxFee)
	}

	return &Config{
		Flags:             cfgFlags,
		MinRelayTxFeeRate: util.NewFeeRate(minRelayTxFee),
	}, nil
}

// Policy returns the block template policy the flags describe
func (cfg *Config) Policy() *blocktemplatebuilder.Policy {
	return &blocktemplatebuilder.Policy{
		BlockMaxSize:      cfg.BlockMaxSize,
		BlockMinSize:      cfg.BlockMinSize,
		BlockPrioritySize: cfg.BlockPrioritySize,
		MinRelayTxFee:     cfg.MinRelayTxFeeRate,
	}
}

// InitLogging starts logging to files in the log directory and applies the
// debug level. The special level "show" lists the subsystems instead.
func (cfg *Config) InitLogging() error {
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", logger.SupportedSubsystems())
		os.Exit(0)
	}

	logger.InitLogFiles(filepath.Join(cfg.LogDir, defaultLogFilename),
		filepath.Join(cfg.LogDir, defaultErrLogFilename))

	err := logger.ParseAndSetLogLevels(cfg.DebugLevel)
	if err != nil {
		return errors.Wrapf(err, "invalid debuglevel %q", cfg.DebugLevel)
	}
	return nil
}
