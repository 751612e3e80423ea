package utxosetstore

import (
	"bytes"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

func serializeTip(height uint64, tipHash *externalapi.DomainHash) []byte {
	w := &bytes.Buffer{}
	err := serialization.WriteElements(w, height, tipHash)
	if err != nil {
		panic(errors.Wrap(err, "writing to a bytes.Buffer should never fail"))
	}
	return w.Bytes()
}

func deserializeTip(tipBytes []byte) (uint64, *externalapi.DomainHash, error) {
	r := bytes.NewReader(tipBytes)
	var height uint64
	tipHash := &externalapi.DomainHash{}
	err := serialization.ReadElements(r, &height, tipHash)
	if err != nil {
		return 0, nil, err
	}
	return height, tipHash, nil
}
