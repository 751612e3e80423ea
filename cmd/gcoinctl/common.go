package main

import (
	"fmt"
	"os"

	"github.com/gcoinproject/gcoind/domain/consensus"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/consensushashing"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/infrastructure/db/database/ldb"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

// withConsensus opens the chain state in the data directory, calls f with
// it, and closes it again
func withConsensus(cfg *config.Config, f func(tc consensus.Consensus) error) error {
	db, err := ldb.NewLevelDB(cfg.DataDir, cfg.LevelDBCacheMiB)
	if err != nil {
		return errors.Wrapf(err, "couldn't open the chain state in %s", cfg.DataDir)
	}
	defer func() {
		closeErr := db.Close()
		if closeErr != nil {
			log.Errorf("Error closing the chain state: %s", closeErr)
		}
	}()

	tc, err := consensus.NewFactory().NewConsensus(&consensus.Config{
		Params:            cfg.NetParams(),
		UTXOCacheSize:     cfg.UTXOCacheSize,
		ValidationWorkers: cfg.ValidationWorkers,
	}, db)
	if err != nil {
		return err
	}
	return f(tc)
}

func printVerdicts(txs []*externalapi.DomainTransaction, verdicts []*externalapi.Verdict) (allAccepted bool) {
	allAccepted = true
	for i, verdict := range verdicts {
		fmt.Printf("%s: %s\n", consensushashing.TransactionID(txs[i]), verdict)
		if !verdict.Accepted {
			allAccepted = false
		}
	}
	return allAccepted
}

func printColorAmount(title string, amount *externalapi.ColorAmount) {
	if amount.IsEmpty() {
		fmt.Printf("%s: none\n", title)
		return
	}
	fmt.Printf("%s: %s\n", title, util.FormatColorAmount(amount))
}
