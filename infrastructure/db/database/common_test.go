package database_test

import (
	"encoding/binary"
	"io/ioutil"
	"os"
	"testing"

	"github.com/gcoinproject/gcoind/infrastructure/db/database"
	"github.com/gcoinproject/gcoind/infrastructure/db/database/ldb"
)

func prepareDatabaseForTest(t *testing.T, testName string) (db database.Database, teardownFunc func()) {
	path, err := ioutil.TempDir("", testName)
	if err != nil {
		t.Fatalf("%s: TempDir failed: %s", testName, err)
	}
	db, err = ldb.NewLevelDB(path, 8)
	if err != nil {
		t.Fatalf("%s: NewLevelDB failed: %s", testName, err)
	}
	teardownFunc = func() {
		err := db.Close()
		if err != nil {
			t.Fatalf("%s: Close failed: %s", testName, err)
		}
		os.RemoveAll(path)
	}
	return db, teardownFunc
}

type keyValuePair struct {
	key   *database.Key
	value []byte
}

// populateDatabaseForTest writes count entries into bucket. Every value is
// the big endian index of its entry.
func populateDatabaseForTest(t *testing.T, db database.Database, bucket *database.Bucket,
	count int) []keyValuePair {

	entries := make([]keyValuePair, count)
	for i := range entries {
		value := make([]byte, 4)
		binary.BigEndian.PutUint32(value, uint32(i))
		entries[i] = keyValuePair{key: bucket.Key(value), value: value}

		err := db.Put(entries[i].key, entries[i].value)
		if err != nil {
			t.Fatalf("Put failed: %s", err)
		}
	}
	return entries
}
