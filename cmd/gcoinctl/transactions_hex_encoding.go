package main

import (
	"encoding/hex"
	"strings"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// hexTransactionsSeparator is used to mark the end of one transaction and the beginning of the next one.
// We use a separator that is not in the hex alphabet, but which will not split selection with a double click
const hexTransactionsSeparator = "_"

func encodeTransactionsToHex(transactions []*externalapi.DomainTransaction) string {
	transactionsInHex := make([]string, len(transactions))
	for i, transaction := range transactions {
		transactionsInHex[i] = hex.EncodeToString(serialization.TransactionToBytes(transaction))
	}
	return strings.Join(transactionsInHex, hexTransactionsSeparator)
}

func decodeTransactionsFromHex(transactionsHex string) ([]*externalapi.DomainTransaction, error) {
	transactionsHex = strings.TrimSpace(transactionsHex)
	if transactionsHex == "" {
		return nil, nil
	}
	splitTransactionsHexes := strings.Split(transactionsHex, hexTransactionsSeparator)
	transactions := make([]*externalapi.DomainTransaction, len(splitTransactionsHexes))

	for i, transactionHex := range splitTransactionsHexes {
		transactionBytes, err := hex.DecodeString(transactionHex)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d is not valid hex", i)
		}
		transactions[i], err = serialization.TransactionFromBytes(transactionBytes)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't deserialize transaction %d", i)
		}
	}

	return transactions, nil
}
