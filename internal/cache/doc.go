// Package cache provides a bounded least-recently-used map.
//
//	memo := cache.NewLRU[uint64, int](1 << 16)
//	memo.Put(27, 111)
//	steps, ok := memo.Get(27)
//
// # Thread Safety
//
// LRU is not safe for concurrent use; callers must handle synchronization.
package cache
