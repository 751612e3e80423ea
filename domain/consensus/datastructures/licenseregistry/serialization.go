package licenseregistry

import (
	"bytes"
	"encoding/binary"
	"encoding/json"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

const maxAddressLength = 256

func colorToBytes(color externalapi.Color) []byte {
	colorBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(colorBytes, uint32(color))
	return colorBytes
}

func colorFromBytes(colorBytes []byte) (externalapi.Color, error) {
	if len(colorBytes) < 4 {
		return 0, errors.Errorf("color key is too short: %d bytes", len(colorBytes))
	}
	return externalapi.Color(binary.LittleEndian.Uint32(colorBytes[:4])), nil
}

func memberSuffix(color externalapi.Color, address externalapi.DomainAddress) []byte {
	return append(colorToBytes(color), address...)
}

func parseMemberSuffix(suffix []byte) (externalapi.Color, externalapi.DomainAddress, error) {
	color, err := colorFromBytes(suffix)
	if err != nil {
		return 0, "", err
	}
	return color, externalapi.DomainAddress(suffix[4:]), nil
}

func mintSuffix(color externalapi.Color, mintID *externalapi.DomainTransactionID) []byte {
	return append(colorToBytes(color), (*externalapi.DomainHash)(mintID).ByteSlice()...)
}

func parseMintSuffix(suffix []byte) (externalapi.Color, *externalapi.DomainTransactionID, error) {
	color, err := colorFromBytes(suffix)
	if err != nil {
		return 0, nil, err
	}
	hash, err := externalapi.NewDomainHashFromByteSlice(suffix[4:])
	if err != nil {
		return 0, nil, err
	}
	return color, (*externalapi.DomainTransactionID)(hash), nil
}

func serializeRecord(record *externalapi.ColorRecord) ([]byte, error) {
	w := &bytes.Buffer{}
	err := serialization.WriteVarBytes(w, []byte(record.Owner))
	if err != nil {
		return nil, err
	}

	infoBytes := []byte{}
	if record.Info != nil {
		infoBytes, err = json.Marshal(record.Info)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}
	err = serialization.WriteVarBytes(w, infoBytes)
	if err != nil {
		return nil, err
	}

	err = serialization.WriteElement(w, record.MintedSupply)
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func deserializeRecord(recordBytes []byte) (*externalapi.ColorRecord, error) {
	r := bytes.NewReader(recordBytes)
	ownerBytes, err := serialization.ReadVarBytes(r, maxAddressLength, "owner")
	if err != nil {
		return nil, err
	}

	infoBytes, err := serialization.ReadVarBytes(r, constants.MaxPayloadSize, "license info")
	if err != nil {
		return nil, err
	}
	var info *externalapi.LicenseInfo
	if len(infoBytes) > 0 {
		info = &externalapi.LicenseInfo{}
		err = json.Unmarshal(infoBytes, info)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	var mintedSupply int64
	err = serialization.ReadElement(r, &mintedSupply)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Errorf("%d trailing bytes after color record", r.Len())
	}

	return &externalapi.ColorRecord{
		Owner:        externalapi.DomainAddress(ownerBytes),
		Info:         info,
		MintedSupply: mintedSupply,
	}, nil
}
