package layer

import (
	"sync"

	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/vk"
)

// InstanceKey identifies the instance that owns a handle. The key of an
// instance and the keys of the physical devices enumerated from it resolve
// to the same instance.
type InstanceKey struct {
	Physical bool
	Handle   uint64
}

// KeyOf returns the instance key of an instance or physical device handle.
func KeyOf[H vk.Instance | vk.PhysicalDevice](h H) InstanceKey {
	switch v := any(h).(type) {
	case vk.PhysicalDevice:
		return InstanceKey{Physical: true, Handle: uint64(v)}
	default:
		return InstanceKey{Handle: uint64(h)}
	}
}

// instanceRegistry maps instances to their dispatch tables and instance
// keys to their owners. Both maps share one lock so an instance and all of
// its keys appear and disappear together.
type instanceRegistry struct {
	tables map[vk.Instance]vk.InstanceDispatchTable
	keys   map[InstanceKey]vk.Instance
	owned  map[vk.Instance][]InstanceKey
	mu     sync.RWMutex
}

func newInstanceRegistry() *instanceRegistry {
	return &instanceRegistry{
		tables: make(map[vk.Instance]vk.InstanceDispatchTable),
		keys:   make(map[InstanceKey]vk.Instance),
		owned:  make(map[vk.Instance][]InstanceKey),
	}
}

func (r *instanceRegistry) add(instance vk.Instance, table vk.InstanceDispatchTable, physical []vk.PhysicalDevice) error {
	keys := make([]InstanceKey, 0, len(physical)+1)
	keys = append(keys, KeyOf(instance))
	for _, pd := range physical {
		keys = append(keys, KeyOf(pd))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[instance]; ok {
		return errors.Duplicate(errors.PhaseRegister, "instance", uint64(instance))
	}
	for _, k := range keys {
		if owner, ok := r.keys[k]; ok {
			return errors.New(errors.PhaseRegister, errors.KindDuplicate).
				Object("instance key").
				Handle(k.Handle).
				Value(k).
				Detail("already owned by instance %#x", uint64(owner)).
				Build()
		}
	}
	r.tables[instance] = table
	for _, k := range keys {
		r.keys[k] = instance
	}
	r.owned[instance] = keys
	return nil
}

func (r *instanceRegistry) remove(instance vk.Instance) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[instance]; !ok {
		return false
	}
	for _, k := range r.owned[instance] {
		delete(r.keys, k)
	}
	delete(r.owned, instance)
	delete(r.tables, instance)
	return true
}

func (r *instanceRegistry) table(instance vk.Instance) (vk.InstanceDispatchTable, bool) {
	r.mu.RLock()
	t, ok := r.tables[instance]
	r.mu.RUnlock()
	return t, ok
}

func (r *instanceRegistry) lookup(key InstanceKey) (vk.Instance, bool) {
	r.mu.RLock()
	i, ok := r.keys[key]
	r.mu.RUnlock()
	return i, ok
}

func (r *instanceRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// deviceRegistry maps devices to their dispatch tables and owning instances.
type deviceRegistry struct {
	tables map[vk.Device]vk.DeviceDispatchTable
	owners map[vk.Device]vk.Instance
	mu     sync.RWMutex
}

func newDeviceRegistry() *deviceRegistry {
	return &deviceRegistry{
		tables: make(map[vk.Device]vk.DeviceDispatchTable),
		owners: make(map[vk.Device]vk.Instance),
	}
}

func (r *deviceRegistry) add(device vk.Device, owner vk.Instance, table vk.DeviceDispatchTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[device]; ok {
		return errors.Duplicate(errors.PhaseRegister, "device", uint64(device))
	}
	r.tables[device] = table
	r.owners[device] = owner
	return nil
}

func (r *deviceRegistry) remove(device vk.Device) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[device]; !ok {
		return false
	}
	delete(r.tables, device)
	delete(r.owners, device)
	return true
}

func (r *deviceRegistry) table(device vk.Device) (vk.DeviceDispatchTable, bool) {
	r.mu.RLock()
	t, ok := r.tables[device]
	r.mu.RUnlock()
	return t, ok
}

func (r *deviceRegistry) owner(device vk.Device) (vk.Instance, bool) {
	r.mu.RLock()
	i, ok := r.owners[device]
	r.mu.RUnlock()
	return i, ok
}

func (r *deviceRegistry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// pipelineRegistry remembers the shader hashes each live pipeline was
// built from.
type pipelineRegistry struct {
	hashes map[vk.Pipeline]shaderhash.HashVector
	mu     sync.RWMutex
}

func newPipelineRegistry() *pipelineRegistry {
	return &pipelineRegistry{hashes: make(map[vk.Pipeline]shaderhash.HashVector)}
}

func (r *pipelineRegistry) insert(p vk.Pipeline, v shaderhash.HashVector) {
	r.mu.Lock()
	r.hashes[p] = v
	r.mu.Unlock()
}

func (r *pipelineRegistry) lookup(p vk.Pipeline) (shaderhash.HashVector, bool) {
	r.mu.RLock()
	v, ok := r.hashes[p]
	r.mu.RUnlock()
	return v, ok
}

func (r *pipelineRegistry) erase(p vk.Pipeline) {
	r.mu.Lock()
	delete(r.hashes, p)
	r.mu.Unlock()
}
