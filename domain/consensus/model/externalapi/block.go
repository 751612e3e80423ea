package externalapi

// DomainBlock represents a block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []*DomainTransaction
}

// Clone returns a clone of DomainBlock
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]*DomainTransaction, len(block.Transactions))
	for i, tx := range block.Transactions {
		transactionClone[i] = tx.Clone()
	}

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// DomainBlockHeader represents the header part of a block
type DomainBlockHeader struct {
	Version            uint16
	ParentHash         DomainHash
	HashMerkleRoot     DomainHash
	UTXOCommitment     DomainHash
	TimeInMilliseconds int64
	Height             uint64
	Nonce              uint64
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	clone := *header
	return &clone
}

// DomainBlockTemplate houses a block that has yet to be solved along with
// the fee and signature operation count of each of its transactions.
// Since the first transaction is the coinbase, Fees[0] is the negation of
// the total fees paid by all other transactions.
type DomainBlockTemplate struct {
	Block       *DomainBlock
	Fees        []*ColorAmount
	SigOpCounts []int64
}
