package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/dagconfig"
	"github.com/jessevdk/go-flags"
)

func parse(t *testing.T, args []string) (*Config, error) {
	cfgFlags := DefaultFlags()
	err := cfgFlags.LoadConfigFile(args)
	if err != nil {
		return nil, err
	}
	parser := flags.NewParser(cfgFlags, flags.None)
	_, err = parser.ParseArgs(args)
	if err != nil {
		t.Fatalf("ParseArgs: %s", err)
	}
	return cfgFlags.Resolve(nil)
}

func TestDefaults(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestDefaults")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg, err := parse(t, []string{"--datadir", tmpDir})
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if cfg.NetParams() != &dagconfig.MainnetParams {
		t.Fatalf("expected mainnet by default, got %s", cfg.NetParams().Name)
	}
	if cfg.DataDir != filepath.Join(tmpDir, dagconfig.MainnetParams.Name) {
		t.Fatalf("the data directory is not namespaced by network: %s", cfg.DataDir)
	}
	expectedFee := externalapi.NewColorAmount(constants.DefaultFeeColor, constants.DefaultMinRelayTxFee)
	if !cfg.MinRelayTxFeeRate.PerK().Equal(expectedFee) {
		t.Fatalf("expected the default min relay fee %s, got %s", expectedFee, cfg.MinRelayTxFeeRate)
	}
	policy := cfg.Policy()
	if policy.BlockMaxSize != constants.DefaultBlockMaxSize ||
		policy.BlockPrioritySize != constants.DefaultBlockPrioritySize {

		t.Fatalf("unexpected default policy %+v", policy)
	}
}

func TestConfigFile(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "TestConfigFile")
	if err != nil {
		t.Fatalf("TempDir: %s", err)
	}
	defer os.RemoveAll(tmpDir)

	configFile := filepath.Join(tmpDir, "gcoind.conf")
	content := "[Application Options]\n" +
		"regtest=1\n" +
		"blockmaxsize=20000\n" +
		"blockprioritysize=5000\n" +
		"minrelaytxfee=5:0.001\n"
	err = ioutil.WriteFile(configFile, []byte(content), 0600)
	if err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	cfg, err := parse(t, []string{"--configfile", configFile, "--datadir", tmpDir, "--blockprioritysize", "7000"})
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if cfg.NetParams() != &dagconfig.RegtestParams {
		t.Fatalf("expected regtest from the config file, got %s", cfg.NetParams().Name)
	}
	if cfg.BlockMaxSize != 20000 {
		t.Fatalf("expected blockmaxsize from the config file, got %d", cfg.BlockMaxSize)
	}
	if cfg.BlockPrioritySize != 7000 {
		t.Fatalf("expected the command line to override the config file, got %d", cfg.BlockPrioritySize)
	}
	expectedFee := externalapi.NewColorAmount(5, constants.UnitsPerCoin/1000)
	if !cfg.MinRelayTxFeeRate.PerK().Equal(expectedFee) {
		t.Fatalf("expected min relay fee %s, got %s", expectedFee, cfg.MinRelayTxFeeRate)
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := parse(t, []string{"--configfile", filepath.Join(os.TempDir(), "no-such-dir", "gcoind.conf")})
	if err == nil {
		t.Fatalf("expected an error for an explicitly named missing config file")
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfgFlags *Flags)
	}{
		{"two networks", func(cfgFlags *Flags) { cfgFlags.Testnet, cfgFlags.Regtest = true, true }},
		{"zero block size", func(cfgFlags *Flags) { cfgFlags.BlockMaxSize = 0 }},
		{"block size above consensus", func(cfgFlags *Flags) { cfgFlags.BlockMaxSize = constants.MaxBlockSize + 1 }},
		{"min size above max size", func(cfgFlags *Flags) { cfgFlags.BlockMinSize = cfgFlags.BlockMaxSize + 1 }},
		{"no workers", func(cfgFlags *Flags) { cfgFlags.ValidationWorkers = 0 }},
		{"bad fee", func(cfgFlags *Flags) { cfgFlags.MinRelayTxFee = "1" }},
		{"negative fee", func(cfgFlags *Flags) { cfgFlags.MinRelayTxFee = "1:-0.1" }},
	}
	for _, test := range tests {
		cfgFlags := DefaultFlags()
		test.modify(cfgFlags)
		_, err := cfgFlags.Resolve(nil)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
		}
	}
}
