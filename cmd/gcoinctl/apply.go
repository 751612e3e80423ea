package main

import (
	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/pkg/errors"
)

// apply applies the transactions one after the other and stops at the first
// rejected one
func apply(cfg *config.Config, conf *applyConfig) error {
	transactions, err := decodeTransactionsFromHex(conf.Transaction)
	if err != nil {
		return err
	}

	return withConsensus(cfg, func(tc consensus.Consensus) error {
		for i, transaction := range transactions {
			verdict, err := tc.ApplyTransaction(transaction)
			if err != nil {
				return err
			}
			printVerdicts(transactions[i:i+1], []*externalapi.Verdict{verdict})
			if !verdict.Accepted {
				return errors.Errorf("transaction %d was rejected, %d were applied", i, i)
			}
		}
		return nil
	})
}
