package consensushashing

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/hashes"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// CalculateSignatureHash returns the hash signed by the key spending input
// inputIndex of tx. It commits to the whole transaction except the
// signatures, and to the index of the signed input.
func CalculateSignatureHash(tx *externalapi.DomainTransaction, inputIndex int) (*externalapi.DomainHash, error) {
	if inputIndex < 0 || inputIndex >= len(tx.Inputs) {
		return nil, errors.Errorf("input index %d is out of range for a transaction with %d inputs",
			inputIndex, len(tx.Inputs))
	}

	writer := hashes.NewTransactionSigningHashWriter()
	err := serialization.SerializeTransactionWithoutSignatures(writer, tx)
	if err != nil {
		return nil, err
	}
	err = serialization.WriteElement(writer, uint32(inputIndex))
	if err != nil {
		return nil, err
	}
	return writer.Finalize(), nil
}
