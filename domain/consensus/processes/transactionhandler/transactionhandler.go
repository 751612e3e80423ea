package transactionhandler

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model"
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// dispatcher owns one handler per transaction type
type dispatcher struct {
	normal   *normalHandler
	mint     *mintHandler
	license  *licenseHandler
	activate *activateHandler
}

// New instantiates the handlers of every transaction type for a network
// whose addresses carry addressPrefix
func New(addressPrefix byte) model.TransactionHandlerDispatcher {
	base := &baseHandler{addressPrefix: addressPrefix}
	return &dispatcher{
		normal:   &normalHandler{base},
		mint:     &mintHandler{base},
		license:  &licenseHandler{base},
		activate: &activateHandler{base},
	}
}

// GetHandler returns the handler of txType, or false for an unknown tag
func (d *dispatcher) GetHandler(txType externalapi.TxType) (model.TransactionHandler, bool) {
	switch txType {
	case externalapi.TxTypeNormal:
		return d.normal, true
	case externalapi.TxTypeMint:
		return d.mint, true
	case externalapi.TxTypeLicense:
		return d.license, true
	case externalapi.TxTypeActivate:
		return d.activate, true
	default:
		return nil, false
	}
}
