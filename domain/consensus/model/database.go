package model

// DBCursor walks the entries of one bucket in key order. The stores only
// ever scan a bucket from its start, so there is no seeking.
type DBCursor interface {
	// First positions the cursor on the first entry and reports whether
	// there is one
	First() bool

	// Next advances the cursor and reports whether it landed on an entry
	Next() bool

	// Key and Value return ErrNotFound once the cursor is exhausted. The
	// returned bytes are only valid until the cursor moves.
	Key() (DBKey, error)
	Value() ([]byte, error)

	Close() error
}

// DBReader is the read side of the chain state database
type DBReader interface {
	// Get returns ErrNotFound for a missing key
	Get(key DBKey) ([]byte, error)
	Has(key DBKey) (bool, error)
	Cursor(bucket DBBucket) (DBCursor, error)
}

// DBWriter reads and writes single keys. Deleting a missing key is not an
// error.
type DBWriter interface {
	DBReader
	Put(key DBKey, value []byte) error
	Delete(key DBKey) error
}

// DBTransaction groups the writes of one commit. Staging shards write into
// it and nothing is visible to readers of the DBManager before Commit.
type DBTransaction interface {
	DBWriter
	Commit() error
	Rollback() error

	// RollbackUnlessClosed is meant for defer right after Begin
	RollbackUnlessClosed() error
}

// DBManager is the chain state database as the stores see it
type DBManager interface {
	DBWriter
	Begin() (DBTransaction, error)
}

// DBKey is a suffix inside a bucket. Stores decode outpoints, colors and
// member addresses back from Suffix while iterating.
type DBKey interface {
	Bytes() []byte
	Bucket() DBBucket
	Suffix() []byte
}

// DBBucket is a key prefix. Sub buckets append their name to the path.
type DBBucket interface {
	Bucket(bucketBytes []byte) DBBucket
	Key(suffix []byte) DBKey
	Path() []byte
}
