package model

import (
	"github.com/gcoinproject/gcoind/domain/consensus/model/externalapi"
)

// BlockTemplateBuilder builds block templates for miners to consume
type BlockTemplateBuilder interface {
	CreateBlockTemplate(coinbaseAddress externalapi.DomainAddress,
		candidates []*externalapi.DomainTransaction) (*externalapi.DomainBlockTemplate, error)
}
