package database

// DataAccessor is what both the database and its transactions offer the
// chain state stores. Keys are always bucket scoped.
type DataAccessor interface {
	// Put overwrites any previous value of key
	Put(key *Key, value []byte) error

	// Get returns ErrNotFound when key is missing
	Get(key *Key) ([]byte, error)

	Has(key *Key) (bool, error)

	// Delete is a no-op for a missing key
	Delete(key *Key) error

	// Cursor iterates over the keys of bucket and its sub buckets
	Cursor(bucket *Bucket) (Cursor, error)
}

// Database is an open key-value store
type Database interface {
	DataAccessor
	Begin() (Transaction, error)
	Close() error
}

// Transaction batches writes until Commit. Reads through a transaction see
// the database as it was when the transaction began, without its own
// uncommitted writes.
type Transaction interface {
	DataAccessor
	Commit() error
	Rollback() error

	// RollbackUnlessClosed rolls back a transaction that was neither
	// committed nor rolled back yet, and does nothing otherwise
	RollbackUnlessClosed() error
}

// Cursor walks a bucket in key order. Every method but Close panics or
// fails once the cursor is closed.
type Cursor interface {
	First() bool
	Next() bool

	// Key returns the key relative to the cursor's bucket, or ErrNotFound
	// when the cursor is exhausted
	Key() (*Key, error)

	// Value returns ErrNotFound when the cursor is exhausted. The slice is
	// only valid until the cursor moves.
	Value() ([]byte, error)

	Close() error
}
