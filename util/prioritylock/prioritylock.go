// Package prioritylock provides a mutex whose writers come in two
// priorities. Block insertion takes the high priority lock so that it is
// never starved by a stream of single transaction applications, which take
// the low priority lock.
package prioritylock

import (
	"sync"
)

// Mutex is a read/write mutex that lets high priority lockers overtake
// low priority ones
type Mutex struct {
	dataMutex           sync.RWMutex
	lowPriorityMutex    sync.Mutex
	highPriorityWaiting sync.WaitGroup
}

// New returns an unlocked Mutex
func New() *Mutex {
	return &Mutex{}
}

// LowPriorityLock acquires the write lock once no high priority locker is
// waiting or holding it
func (mtx *Mutex) LowPriorityLock() {
	mtx.lowPriorityMutex.Lock()
	mtx.highPriorityWaiting.Wait()
	mtx.dataMutex.Lock()
}

// LowPriorityUnlock releases a lock taken with LowPriorityLock
func (mtx *Mutex) LowPriorityUnlock() {
	mtx.dataMutex.Unlock()
	mtx.lowPriorityMutex.Unlock()
}

// HighPriorityLock acquires the write lock ahead of any low priority locker
// that has not yet taken it
func (mtx *Mutex) HighPriorityLock() {
	mtx.highPriorityWaiting.Add(1)
	mtx.dataMutex.Lock()
}

// HighPriorityUnlock releases a lock taken with HighPriorityLock
func (mtx *Mutex) HighPriorityUnlock() {
	mtx.dataMutex.Unlock()
	mtx.highPriorityWaiting.Done()
}

// HighPriorityReadLock acquires the read lock, holding off low priority
// writers until it is released
func (mtx *Mutex) HighPriorityReadLock() {
	mtx.highPriorityWaiting.Add(1)
	mtx.dataMutex.RLock()
}

// HighPriorityReadUnlock releases a lock taken with HighPriorityReadLock
func (mtx *Mutex) HighPriorityReadUnlock() {
	mtx.highPriorityWaiting.Done()
	mtx.dataMutex.RUnlock()
}
