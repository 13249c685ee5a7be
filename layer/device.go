package layer

import (
	"go.uber.org/zap"

	"github.com/wippyai/vk-perflayers/errors"
	"github.com/wippyai/vk-perflayers/vk"
)

// AddDevice registers the dispatch table of device. Devices are keyed
// independently of instances.
func (d *LayerData) AddDevice(device vk.Device, table vk.DeviceDispatchTable) error {
	return d.devices.add(device, vk.NullHandle, table)
}

// RemoveDevice drops the dispatch table of device. Unknown devices are
// ignored.
func (d *LayerData) RemoveDevice(device vk.Device) {
	d.devices.remove(device)
}

// DeviceDispatch returns the dispatch table of device.
func (d *LayerData) DeviceDispatch(device vk.Device) (vk.DeviceDispatchTable, bool) {
	return d.devices.table(device)
}

// DeviceInstance returns the instance device was created from. Devices
// added directly through AddDevice report vk.NullHandle.
func (d *LayerData) DeviceInstance(device vk.Device) (vk.Instance, bool) {
	return d.devices.owner(device)
}

// DeviceCount returns the number of registered devices.
func (d *LayerData) DeviceCount() int { return d.devices.len() }

func (d *LayerData) mustDeviceTable(device vk.Device) vk.DeviceDispatchTable {
	t, ok := d.devices.table(device)
	if !ok {
		panic(errors.NotFound(errors.PhaseLookup, "device", uint64(device)))
	}
	return t
}

// NextDeviceProc returns the member of device's dispatch table chosen by
// member. The device must be registered; an unknown device panics.
func NextDeviceProc[F any](d *LayerData, device vk.Device, member func(vk.DeviceDispatchTable) F) F {
	return member(d.mustDeviceTable(device))
}

// CreateDevice creates a device through the next layer and registers its
// dispatch table. It follows the CreateInstance pattern; vkCreateDevice is
// resolved through the instance that owns physicalDevice.
func (d *LayerData) CreateDevice(physicalDevice vk.PhysicalDevice, info *vk.DeviceCreateInfo,
	alloc *vk.AllocationCallbacks, device *vk.Device, build vk.DeviceTableBuilder,
) vk.Result {
	link := findDeviceCreateInfo(info.Next)
	if link == nil || link.LayerInfo == nil ||
		link.LayerInfo.NextGetInstanceProcAddr == nil || link.LayerInfo.NextGetDeviceProcAddr == nil {
		d.logger.Error("device not created", zap.Error(errors.Initialization("device")))
		return vk.ErrorInitializationFailed
	}

	gipa := link.LayerInfo.NextGetInstanceProcAddr
	gdpa := link.LayerInfo.NextGetDeviceProcAddr
	instance, ok := d.LookupInstance(KeyOf(physicalDevice))
	if !ok {
		d.logger.Error("physical device does not belong to a registered instance",
			zap.Uint64("physical_device", uint64(physicalDevice)))
		return vk.ErrorInitializationFailed
	}

	link.LayerInfo = link.LayerInfo.Next
	create := vk.As[vk.CreateDeviceFunc](gipa(instance, vk.NameCreateDevice))
	if create == nil {
		d.logger.Error("next layer does not provide vkCreateDevice")
		return vk.ErrorInitializationFailed
	}
	if res := create(physicalDevice, info, alloc, device); res != vk.Success {
		d.logger.Debug("device not created", zap.Error(errors.Upstream("device", res)))
		return res
	}

	if build == nil {
		build = vk.BuildDeviceDispatchTable
	}
	table := build(*device, gdpa)
	if err := d.devices.add(*device, instance, table); err != nil {
		d.logger.Error("device created but not registered, driver device is untracked",
			zap.Uint64("device", uint64(*device)),
			zap.Error(err))
		return vk.ErrorOutOfHostMemory
	}
	return vk.Success
}

// DestroyDevice unregisters device, then destroys it through the next layer.
func (d *LayerData) DestroyDevice(device vk.Device, alloc *vk.AllocationCallbacks) {
	table := d.mustDeviceTable(device)
	d.RemoveDevice(device)
	if table.DestroyDevice != nil {
		table.DestroyDevice(device, alloc)
	}
}
