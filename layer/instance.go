package layer

import (
	"go.uber.org/zap"

	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/vk"
)

// AddInstance registers the dispatch table of instance together with every
// physical device the instance enumerates, so that physical device keys
// resolve to it. Nothing is stored when an error is returned.
func (d *LayerData) AddInstance(instance vk.Instance, table vk.InstanceDispatchTable) error {
	if table.EnumeratePhysicalDevices == nil {
		return errors.Registration("instance", uint64(instance),
			errors.New(errors.PhaseRegister, errors.KindNotFound).
				Object(vk.NameEnumeratePhysicalDevices).
				Detail("entry point not resolved").
				Build())
	}
	physical, res := table.EnumeratePhysicalDevices(instance)
	if res != vk.Success {
		return errors.Registration("instance", uint64(instance), res)
	}
	return d.instances.add(instance, table, physical)
}

// RemoveInstance drops the dispatch table of instance and every key that
// resolves to it. Unknown instances are ignored.
func (d *LayerData) RemoveInstance(instance vk.Instance) {
	d.instances.remove(instance)
}

// GetInstance resolves key to its owning instance. The key must belong to a
// registered instance; an unknown key panics.
func (d *LayerData) GetInstance(key InstanceKey) vk.Instance {
	i, ok := d.instances.lookup(key)
	if !ok {
		panic(errors.NotFound(errors.PhaseLookup, "instance key", key.Handle))
	}
	return i
}

// LookupInstance resolves key, reporting whether it is registered.
func (d *LayerData) LookupInstance(key InstanceKey) (vk.Instance, bool) {
	return d.instances.lookup(key)
}

// InstanceDispatch returns the dispatch table of instance.
func (d *LayerData) InstanceDispatch(instance vk.Instance) (vk.InstanceDispatchTable, bool) {
	return d.instances.table(instance)
}

// InstanceCount returns the number of registered instances.
func (d *LayerData) InstanceCount() int { return d.instances.len() }

func (d *LayerData) mustInstanceTable(instance vk.Instance) vk.InstanceDispatchTable {
	t, ok := d.instances.table(instance)
	if !ok {
		panic(errors.NotFound(errors.PhaseLookup, "instance", uint64(instance)))
	}
	return t
}

// NextInstanceProc returns the member of instance's dispatch table chosen
// by member. The instance must be registered; an unknown instance panics.
//
//	destroy := layer.NextInstanceProc(d, instance, func(t vk.InstanceDispatchTable) vk.DestroyInstanceFunc {
//		return t.DestroyInstance
//	})
func NextInstanceProc[F any](d *LayerData, instance vk.Instance, member func(vk.InstanceDispatchTable) F) F {
	return member(d.mustInstanceTable(instance))
}

// CreateInstance creates an instance through the next layer and registers
// its dispatch table.
//
// The loader link record is located in info.Next and advanced past this
// layer before calling down. Without one, ErrorInitializationFailed is
// returned and nothing is called. Driver failures are returned unchanged.
//
// If the instance is created but cannot be registered, the result is
// ErrorOutOfHostMemory and the driver instance is left alive and
// untracked. No cleanup call is made.
//
// A nil build uses vk.BuildInstanceDispatchTable.
func (d *LayerData) CreateInstance(info *vk.InstanceCreateInfo, alloc *vk.AllocationCallbacks,
	instance *vk.Instance, build vk.InstanceTableBuilder,
) vk.Result {
	link := findInstanceCreateInfo(info.Next)
	if link == nil || link.LayerInfo == nil || link.LayerInfo.NextGetInstanceProcAddr == nil {
		d.logger.Error("instance not created", zap.Error(errors.Initialization("instance")))
		return vk.ErrorInitializationFailed
	}

	gipa := link.LayerInfo.NextGetInstanceProcAddr
	link.LayerInfo = link.LayerInfo.Next

	create := vk.As[vk.CreateInstanceFunc](gipa(vk.NullHandle, vk.NameCreateInstance))
	if create == nil {
		d.logger.Error("next layer does not provide vkCreateInstance")
		return vk.ErrorInitializationFailed
	}
	if res := create(info, alloc, instance); res != vk.Success {
		d.logger.Debug("instance not created", zap.Error(errors.Upstream("instance", res)))
		return res
	}

	if build == nil {
		build = vk.BuildInstanceDispatchTable
	}
	table := build(*instance, gipa)
	if err := d.AddInstance(*instance, table); err != nil {
		d.logger.Error("instance created but not registered, driver instance is untracked",
			zap.Uint64("instance", uint64(*instance)),
			zap.Error(err))
		return vk.ErrorOutOfHostMemory
	}
	return vk.Success
}

// DestroyInstance unregisters instance, then destroys it through the next
// layer.
func (d *LayerData) DestroyInstance(instance vk.Instance, alloc *vk.AllocationCallbacks) {
	table := d.mustInstanceTable(instance)
	d.RemoveInstance(instance)
	if table.DestroyInstance != nil {
		table.DestroyInstance(instance, alloc)
	}
}
