package main

import (
	"encoding/hex"
	"fmt"

	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/util"
)

func genKeyPair(cfg *config.Config, conf *genKeyPairConfig) error {
	mnemonic := conf.Mnemonic
	if mnemonic == "" {
		var err error
		mnemonic, err = newMnemonic()
		if err != nil {
			return err
		}
	}

	privateKey, err := privateKeyFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	keyPair, err := txsign.KeyPairFromBytes(privateKey)
	if err != nil {
		return err
	}
	publicKey, err := txsign.SerializePublicKey(keyPair)
	if err != nil {
		return err
	}

	fmt.Printf("Mnemonic: %s\n", mnemonic)
	fmt.Printf("Private key: %s\n", hex.EncodeToString(privateKey))
	fmt.Printf("Public key: %s\n", hex.EncodeToString(publicKey))
	fmt.Printf("Address (%s): %s\n", cfg.NetParams().Name,
		util.AddressFromPublicKey(publicKey, cfg.NetParams().AddressPrefix))
	return nil
}
