package shaderhash

import (
	"sync"

	"github.com/wippyai/vk-perflayers/vk"
)

// Table remembers the content hash of every live shader module.
// Safe for concurrent use.
type Table struct {
	hashes map[vk.ShaderModule]uint64
	mu     sync.RWMutex
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{hashes: make(map[vk.ShaderModule]uint64)}
}

// Insert records the hash of module, replacing any stale entry left by a
// reused handle.
func (t *Table) Insert(module vk.ShaderModule, hash uint64) {
	t.mu.Lock()
	t.hashes[module] = hash
	t.mu.Unlock()
}

// Lookup returns the hash recorded for module.
func (t *Table) Lookup(module vk.ShaderModule) (uint64, bool) {
	t.mu.RLock()
	h, ok := t.hashes[module]
	t.mu.RUnlock()
	return h, ok
}

// Erase forgets module. It reports whether an entry was present.
func (t *Table) Erase(module vk.ShaderModule) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.hashes[module]; !ok {
		return false
	}
	delete(t.hashes, module)
	return true
}

// Vector resolves the hashes of modules in order. Unknown modules map to 0.
func (t *Table) Vector(modules ...vk.ShaderModule) HashVector {
	v := make(HashVector, len(modules))
	t.mu.RLock()
	for i, m := range modules {
		v[i] = t.hashes[m]
	}
	t.mu.RUnlock()
	return v
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.hashes)
}
