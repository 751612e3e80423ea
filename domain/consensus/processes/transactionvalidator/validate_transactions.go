package transactionvalidator

import (
	"sync"

	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// ValidateTransactions validates txs concurrently against the same view.
// The returned verdicts are in the order of txs. The first internal error
// aborts the remaining checks.
func (v *transactionValidator) ValidateTransactions(txs []*externalapi.DomainTransaction,
	view model.ChainStateView) ([]*externalapi.Verdict, error) {

	verdicts := make([]*externalapi.Verdict, len(txs))
	if len(txs) == 0 {
		return verdicts, nil
	}

	workers := v.workers
	if workers > len(txs) {
		workers = len(txs)
	}

	jobs := make(chan int)
	quit := make(chan struct{})
	var quitOnce sync.Once
	var firstErr error
	var wg sync.WaitGroup

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		spawn("ValidateTransactions-worker", func() {
			defer wg.Done()
			for index := range jobs {
				verdict, err := v.ValidateTransaction(txs[index], view)
				if err != nil {
					quitOnce.Do(func() {
						firstErr = err
						close(quit)
					})
					continue
				}
				verdicts[index] = verdict
			}
		})
	}

feed:
	for index := range txs {
		select {
		case jobs <- index:
		case <-quit:
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return verdicts, nil
}
