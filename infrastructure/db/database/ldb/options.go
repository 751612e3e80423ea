package ldb

import "github.com/syndtr/goleveldb/leveldb/opt"

var defaultOptions = opt.Options{
	Compression:            opt.NoCompression,
	DisableSeeksCompaction: true,
}

// Options returns the leveldb options for a database with the given
// block cache size. The write buffer is half the cache.
func Options(cacheSizeMiB int) *opt.Options {
	opts := defaultOptions
	opts.BlockCacheCapacity = cacheSizeMiB * opt.MiB
	opts.WriteBuffer = opts.BlockCacheCapacity / 2
	return &opts
}
