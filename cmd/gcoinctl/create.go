package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
	"github.com/gcoinproject/gcoind/domain/consensus/processes/transactionhandler"
	"github.com/gcoinproject/gcoind/domain/consensus/utils/constants"
	"github.com/gcoinproject/gcoind/infrastructure/config"
	"github.com/gcoinproject/gcoind/util"
	"github.com/pkg/errors"
)

func create(cfg *config.Config, conf *createConfig) error {
	tx, err := newUnsignedTransaction(cfg.NetParams().AddressPrefix, conf)
	if err != nil {
		return err
	}
	fmt.Println(encodeTransactionsToHex([]*externalapi.DomainTransaction{tx}))
	return nil
}

func newUnsignedTransaction(addressPrefix byte, conf *createConfig) (*externalapi.DomainTransaction, error) {
	txType, err := parseTxType(conf.Type)
	if err != nil {
		return nil, err
	}

	tx := &externalapi.DomainTransaction{
		Version:  constants.TransactionVersion,
		Type:     txType,
		Fee:      externalapi.NewEmptyColorAmount(),
		LockTime: conf.LockTime,
		Payload:  []byte{},
	}

	if len(conf.Inputs) == 0 {
		return nil, errors.New("at least one --input is required")
	}
	for _, input := range conf.Inputs {
		outpoint, err := parseOutpoint(input)
		if err != nil {
			return nil, err
		}
		tx.Inputs = append(tx.Inputs, &externalapi.DomainTransactionInput{PreviousOutpoint: *outpoint})
	}

	for _, output := range conf.Outputs {
		parsed, err := parseOutput(addressPrefix, output)
		if err != nil {
			return nil, err
		}
		tx.Outputs = append(tx.Outputs, parsed)
	}

	if conf.Fee != "" {
		tx.Fee, err = util.ParseColorAmount(conf.Fee)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid fee %q", conf.Fee)
		}
	}

	if conf.Payload != "" && conf.License != "" {
		return nil, errors.New("Both --payload and --license-file cannot be passed at the same time")
	}
	if conf.Payload != "" {
		tx.Payload, err = hex.DecodeString(conf.Payload)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid payload")
		}
	}
	if conf.License != "" {
		tx.Payload, err = licensePayload(conf.License)
		if err != nil {
			return nil, err
		}
	}
	return tx, nil
}

func parseTxType(str string) (externalapi.TxType, error) {
	for _, txType := range []externalapi.TxType{externalapi.TxTypeNormal, externalapi.TxTypeMint,
		externalapi.TxTypeLicense, externalapi.TxTypeActivate} {

		if txType.String() == strings.ToLower(str) {
			return txType, nil
		}
	}
	return 0, errors.Errorf("unknown transaction type %q", str)
}

// parseOutpoint parses <transaction id>:<index>, or null for the null outpoint
func parseOutpoint(str string) (*externalapi.DomainOutpoint, error) {
	if str == "null" {
		outpoint := externalapi.NewNullOutpoint()
		return &outpoint, nil
	}
	separator := strings.LastIndexByte(str, ':')
	if separator < 0 {
		return nil, errors.Errorf("invalid outpoint %q, expected <transaction id>:<index>", str)
	}
	transactionID, err := externalapi.NewDomainHashFromString(str[:separator])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid transaction id in outpoint %q", str)
	}
	index, err := strconv.ParseUint(str[separator+1:], 10, 32)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid index in outpoint %q", str)
	}
	return &externalapi.DomainOutpoint{
		TransactionID: externalapi.DomainTransactionID(*transactionID),
		Index:         uint32(index),
	}, nil
}

// parseOutput parses <address>=<color amount>
func parseOutput(addressPrefix byte, str string) (*externalapi.DomainTransactionOutput, error) {
	separator := strings.IndexByte(str, '=')
	if separator < 0 {
		return nil, errors.Errorf("invalid output %q, expected <address>=<color>:<amount>", str)
	}
	address := externalapi.DomainAddress(str[:separator])
	_, err := util.DecodeAddress(address, addressPrefix)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address in output %q", str)
	}
	value, err := util.ParseColorAmount(str[separator+1:])
	if err != nil {
		return nil, errors.Wrapf(err, "invalid amount in output %q", str)
	}
	return &externalapi.DomainTransactionOutput{Value: value, Address: address}, nil
}

func licensePayload(path string) ([]byte, error) {
	licenseJSON, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read license info from %s", path)
	}
	info, err := transactionhandler.DecodeLicenseInfo(licenseJSON)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid license info in %s", path)
	}
	return transactionhandler.EncodeLicenseInfo(info)
}
