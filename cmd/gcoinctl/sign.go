package main

import (
	"fmt"

	"github.com/gcoinproject/gcoind/domain/consensus/utils/txsign"
	"github.com/gcoinproject/gcoind/infrastructure/config"
)

func sign(_ *config.Config, conf *signConfig) error {
	transactions, err := decodeTransactionsFromHex(conf.Transaction)
	if err != nil {
		return err
	}
	keyPair, err := signerKeyPair(conf)
	if err != nil {
		return err
	}

	for _, transaction := range transactions {
		err = txsign.SignAllInputs(transaction, keyPair)
		if err != nil {
			return err
		}
	}

	fmt.Println(encodeTransactionsToHex(transactions))
	return nil
}
