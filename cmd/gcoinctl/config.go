package main

import (
	"os"

	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	genKeyPairSubCmd = "genkeypair"
	createSubCmd     = "create"
	signSubCmd       = "sign"
	validateSubCmd   = "validate"
	applySubCmd      = "apply"
	mineSubCmd       = "mine"
	ownerSubCmd      = "owner"
	balanceSubCmd    = "balance"
	tipSubCmd        = "tip"
)

type genKeyPairConfig struct {
	Mnemonic string `long:"mnemonic" short:"m" description:"Restore the key of this mnemonic instead of creating a new one"`
}

type createConfig struct {
	Type     string   `long:"type" short:"t" description:"Transaction type {normal, mint, license, activate}" default:"normal"`
	Inputs   []string `long:"input" short:"i" description:"An outpoint to spend, as <transaction id>:<index>, or null for a mint"`
	Outputs  []string `long:"output" short:"o" description:"An output, as <address>=<color>:<amount>[,<color>:<amount>...]" required:"true"`
	Fee      string   `long:"fee" short:"f" description:"The declared fee, as <color>:<amount>[,<color>:<amount>...]"`
	Payload  string   `long:"payload" short:"p" description:"The payload, encoded in hex"`
	License  string   `long:"license-file" description:"A JSON file with the license info to put in the payload"`
	LockTime uint64   `long:"locktime" description:"The lock time of the transaction"`
}

type signConfig struct {
	PrivateKey  string `long:"private-key" short:"k" description:"The private key of the signer (encoded in hex). Prompted for if neither it nor --mnemonic is given"`
	Mnemonic    string `long:"mnemonic" short:"m" description:"The mnemonic of the signer"`
	Transaction string `long:"transaction" short:"t" description:"The unsigned transactions to sign (encoded in hex)" required:"true"`
}

type validateConfig struct {
	Transaction string `long:"transaction" short:"t" description:"The transactions to validate (encoded in hex)" required:"true"`
}

type applyConfig struct {
	Transaction string `long:"transaction" short:"t" description:"The transactions to apply, in order (encoded in hex)" required:"true"`
}

type mineConfig struct {
	MiningAddress string `long:"miningaddr" short:"a" description:"The address the coinbase pays the fees to" required:"true"`
	Transaction   string `long:"transaction" short:"t" description:"The candidate transactions (encoded in hex)"`
}

type ownerConfig struct {
	Color string `long:"color" short:"c" description:"The color to look up" required:"true"`
}

type balanceConfig struct {
	Address string `long:"address" short:"a" description:"The address to check the balance of" required:"true"`
}

type tipConfig struct{}

func parseCommandLine() (subCommand string, cfg *config.Config, subConfig interface{}) {
	args := os.Args[1:]
	cfgFlags := config.DefaultFlags()
	err := cfgFlags.LoadConfigFile(args)
	if err != nil {
		printErrorAndExit(err)
	}

	parser := flags.NewParser(cfgFlags, flags.PrintErrors|flags.HelpFlag)

	genKeyPairConf := &genKeyPairConfig{}
	parser.AddCommand(genKeyPairSubCmd, "Generates a key pair",
		"Generates a mnemonic, the private key derived from it and its address on the selected network", genKeyPairConf)

	createConf := &createConfig{}
	parser.AddCommand(createSubCmd, "Creates an unsigned transaction",
		"Creates an unsigned transaction from inputs, outputs and a fee", createConf)

	signConf := &signConfig{}
	parser.AddCommand(signSubCmd, "Signs transactions",
		"Signs every input of the given transactions with one key", signConf)

	validateConf := &validateConfig{}
	parser.AddCommand(validateSubCmd, "Validates transactions",
		"Validates transactions against the local chain state without changing it", validateConf)

	applyConf := &applyConfig{}
	parser.AddCommand(applySubCmd, "Applies transactions",
		"Validates and applies transactions to the local chain state", applyConf)

	mineConf := &mineConfig{}
	parser.AddCommand(mineSubCmd, "Mines a block",
		"Builds a block template from the candidate transactions and adds its block to the local chain", mineConf)

	ownerConf := &ownerConfig{}
	parser.AddCommand(ownerSubCmd, "Shows the license of a color",
		"Shows the owner, the license info and the minted supply of a color", ownerConf)

	balanceConf := &balanceConfig{}
	parser.AddCommand(balanceSubCmd, "Shows the balance of an address",
		"Shows the colored balance of an address in the local chain state", balanceConf)

	tipConf := &tipConfig{}
	parser.AddCommand(tipSubCmd, "Shows the chain tip",
		"Shows the tip, its height and the UTXO commitment of the local chain state", tipConf)

	_, err = parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	cfg, err = cfgFlags.Resolve(parser)
	if err != nil {
		printErrorAndExit(err)
	}

	switch parser.Command.Active.Name {
	case genKeyPairSubCmd:
		subConfig = genKeyPairConf
	case createSubCmd:
		subConfig = createConf
	case signSubCmd:
		subConfig = signConf
	case validateSubCmd:
		subConfig = validateConf
	case applySubCmd:
		subConfig = applyConf
	case mineSubCmd:
		subConfig = mineConf
	case ownerSubCmd:
		subConfig = ownerConf
	case balanceSubCmd:
		subConfig = balanceConf
	case tipSubCmd:
		subConfig = tipConf
	}

	return parser.Command.Active.Name, cfg, subConfig
}
