package main

import (
	"fmt"
	"time"

	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/domain/miningmanager"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/util/mstime"
	"github.com/pkg/errors"
)

func mine(cfg *config.Config, conf *mineConfig) error {
	candidates, err := decodeTransactionsFromHex(conf.Transaction)
	if err != nil {
		return err
	}

	return withConsensus(cfg, func(tc consensus.Consensus) error {
		miningManager := miningmanager.NewFactory().NewMiningManager(tc, cfg.Policy())
		block, verdict, err := miningManager.MineBlock(externalapi.DomainAddress(conf.MiningAddress), candidates)
		if err != nil {
			return err
		}
		if !verdict.Accepted {
			return errors.Errorf("the block was rejected: %s", verdict)
		}

		fmt.Printf("Block %s at height %d, %s\n", consensushashing.BlockHash(block), block.Header.Height,
			mstime.ToTime(block.Header.TimeInMilliseconds).Format(time.RFC3339))
		for _, tx := range block.Transactions {
			fmt.Printf("  %s\n", consensushashing.TransactionID(tx))
		}
		if skipped := len(candidates) - (len(block.Transactions) - 1); skipped > 0 {
			fmt.Printf("%d candidates were left out\n", skipped)
		}
		return nil
	})
}
