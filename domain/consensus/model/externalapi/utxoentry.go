package externalapi

// UTXOEntry houses details about an individual transaction output in a utxo
// set: the colored amount it holds, the address that may spend it, the
// height of the block that accepted it and the type of the transaction
// that created it.
type UTXOEntry interface {
	Amount() *ColorAmount
	Address() DomainAddress
	BlockHeight() uint64
	TxType() TxType
	Equal(other UTXOEntry) bool
}

// OutpointAndUTXOEntryPair is an outpoint along with its
// respective UTXO entry
type OutpointAndUTXOEntryPair struct {
	Outpoint  *DomainOutpoint
	UTXOEntry UTXOEntry
}
