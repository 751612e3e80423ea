package main

import (
	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/pkg/errors"
)

func validate(cfg *config.Config, conf *validateConfig) error {
	transactions, err := decodeTransactionsFromHex(conf.Transaction)
	if err != nil {
		return err
	}

	return withConsensus(cfg, func(tc consensus.Consensus) error {
		verdicts, err := tc.ValidateTransactions(transactions)
		if err != nil {
			return err
		}
		if !printVerdicts(transactions, verdicts) {
			return errors.New("some transactions are invalid")
		}
		return nil
	})
}
