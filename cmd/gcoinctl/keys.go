package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/kaspanet/go-secp256k1"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/term"
)

func newMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.WithStack(err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return mnemonic, nil
}

// privateKeyFromMnemonic derives a private key as the blake2b hash of the
// BIP39 seed of mnemonic
func privateKeyFromMnemonic(mnemonic string) ([]byte, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	privateKey := blake2b.Sum256(seed)
	return privateKey[:], nil
}

// signerKeyPair returns the key pair named by the sign flags, prompting for
// a private key when none is given
func signerKeyPair(conf *signConfig) (*secp256k1.SchnorrKeyPair, error) {
	if conf.PrivateKey != "" && conf.Mnemonic != "" {
		return nil, errors.New("Both --private-key and --mnemonic cannot be passed at the same time")
	}

	var privateKey []byte
	var err error
	switch {
	case conf.Mnemonic != "":
		privateKey, err = privateKeyFromMnemonic(conf.Mnemonic)
	case conf.PrivateKey != "":
		privateKey, err = hex.DecodeString(strings.TrimSpace(conf.PrivateKey))
	default:
		var privateKeyHex []byte
		privateKeyHex, err = readSecret("Enter the private key (encoded in hex):")
		if err == nil {
			privateKey, err = hex.DecodeString(strings.TrimSpace(string(privateKeyHex)))
		}
	}
	if err != nil {
		return nil, err
	}
	return txsign.KeyPairFromBytes(privateKey)
}

// readSecret reads a line from the terminal without echoing it
func readSecret(prompt string) ([]byte, error) {
	stdin := int(syscall.Stdin)
	initialTermState, err := term.GetState(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "stdin is not a terminal, pass the key as a flag instead")
	}

	// Restore the terminal in the event of an interrupt.
	interrupt := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(interrupt, os.Interrupt)
	spawn("readSecret-restoreTerminal", func() {
		select {
		case <-interrupt:
			_ = term.Restore(stdin, initialTermState)
			os.Exit(1)
		case <-done:
		}
	})
	defer func() {
		signal.Stop(interrupt)
		close(done)
	}()

	fmt.Print(prompt)
	secret, err := term.ReadPassword(stdin)
	fmt.Println()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return secret, nil
}
