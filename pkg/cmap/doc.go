// Package cmap provides a concurrent-safe sharded map keyed by string.
//
// Keys are spread over a power-of-two number of shards by their murmur3
// hash; each shard has its own RWMutex, so unrelated keys do not contend.
//
// Usage:
//
//	m := cmap.New[*clientState](0)
//	st := m.GetOrCreate(ip, newClientState)
//	m.DeleteFunc(func(_ string, st *clientState) bool { return st.idle() })
//
// Range and DeleteFunc lock one shard at a time, so they do not observe a
// consistent snapshot across shards.
package cmap
