package layer

import (
	"sync"

	"github.com/wippyai/vk-perflayers/vk"
)

// fakeDriver plays the next layer in the chain. Handles are handed out from
// a counter so tests can predict them.
type fakeDriver struct {
	mu   sync.Mutex
	next uint64

	physical []vk.PhysicalDevice

	createInstanceResult vk.Result
	createDeviceResult   vk.Result
	enumerateResult      vk.Result
	shaderResult         vk.Result
	pipelineResult       vk.Result

	createInstanceCalls int
	createDeviceCalls   int
	// links seen by the driver when vkCreateInstance / vkCreateDevice ran
	instanceLink *vk.LayerInstanceLink
	deviceLink   *vk.LayerDeviceLink
	// instance passed to the resolver when vkCreateDevice was looked up
	deviceResolvedVia vk.Instance

	onDestroyInstance func(vk.Instance)
	onDestroyDevice   func(vk.Device)
	onDestroyShader   func(vk.ShaderModule)
	onDestroyPipeline func(vk.Pipeline)

	destroyedInstances []vk.Instance
	destroyedDevices   []vk.Device
	destroyedShaders   []vk.ShaderModule
	destroyedPipelines []vk.Pipeline
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		next:     0x1000,
		physical: []vk.PhysicalDevice{0x10, 0x11},
	}
}

func (f *fakeDriver) handle() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

// peek returns the handle the driver will hand out next.
func (f *fakeDriver) peek() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.next + 1
}

func (f *fakeDriver) setNext(h uint64) {
	f.mu.Lock()
	f.next = h - 1
	f.mu.Unlock()
}

func (f *fakeDriver) gipa(instance vk.Instance, name string) vk.ProcAddr {
	switch name {
	case vk.NameCreateInstance:
		return func(info *vk.InstanceCreateInfo, _ *vk.AllocationCallbacks, out *vk.Instance) vk.Result {
			f.createInstanceCalls++
			if l := findInstanceCreateInfo(info.Next); l != nil {
				f.instanceLink = l.LayerInfo
			}
			if f.createInstanceResult != vk.Success {
				return f.createInstanceResult
			}
			*out = vk.Instance(f.handle())
			return vk.Success
		}
	case vk.NameDestroyInstance:
		return func(i vk.Instance, _ *vk.AllocationCallbacks) {
			if f.onDestroyInstance != nil {
				f.onDestroyInstance(i)
			}
			f.destroyedInstances = append(f.destroyedInstances, i)
		}
	case vk.NameEnumeratePhysicalDevices:
		return func(vk.Instance) ([]vk.PhysicalDevice, vk.Result) {
			if f.enumerateResult != vk.Success {
				return nil, f.enumerateResult
			}
			return f.physical, vk.Success
		}
	case vk.NameCreateDevice:
		f.deviceResolvedVia = instance
		return func(_ vk.PhysicalDevice, info *vk.DeviceCreateInfo, _ *vk.AllocationCallbacks, out *vk.Device) vk.Result {
			f.createDeviceCalls++
			if l := findDeviceCreateInfo(info.Next); l != nil {
				f.deviceLink = l.LayerInfo
			}
			if f.createDeviceResult != vk.Success {
				return f.createDeviceResult
			}
			*out = vk.Device(f.handle())
			return vk.Success
		}
	case vk.NameGetInstanceProcAddr:
		return vk.GetInstanceProcAddrFunc(f.gipa)
	}
	return nil
}

func (f *fakeDriver) gdpa(_ vk.Device, name string) vk.ProcAddr {
	switch name {
	case vk.NameDestroyDevice:
		return func(d vk.Device, _ *vk.AllocationCallbacks) {
			if f.onDestroyDevice != nil {
				f.onDestroyDevice(d)
			}
			f.destroyedDevices = append(f.destroyedDevices, d)
		}
	case vk.NameCreateShaderModule:
		return func(_ vk.Device, _ *vk.ShaderModuleCreateInfo, _ *vk.AllocationCallbacks, out *vk.ShaderModule) vk.Result {
			if f.shaderResult != vk.Success {
				return f.shaderResult
			}
			*out = vk.ShaderModule(f.handle())
			return vk.Success
		}
	case vk.NameDestroyShaderModule:
		return func(_ vk.Device, m vk.ShaderModule, _ *vk.AllocationCallbacks) {
			if f.onDestroyShader != nil {
				f.onDestroyShader(m)
			}
			f.destroyedShaders = append(f.destroyedShaders, m)
		}
	case vk.NameCreateGraphicsPipelines:
		return func(_ vk.Device, _ vk.PipelineCache, infos []vk.GraphicsPipelineCreateInfo, _ *vk.AllocationCallbacks, out []vk.Pipeline) vk.Result {
			return f.createPipelines(len(infos), out)
		}
	case vk.NameCreateComputePipelines:
		return func(_ vk.Device, _ vk.PipelineCache, infos []vk.ComputePipelineCreateInfo, _ *vk.AllocationCallbacks, out []vk.Pipeline) vk.Result {
			return f.createPipelines(len(infos), out)
		}
	case vk.NameDestroyPipeline:
		return func(_ vk.Device, p vk.Pipeline, _ *vk.AllocationCallbacks) {
			if f.onDestroyPipeline != nil {
				f.onDestroyPipeline(p)
			}
			f.destroyedPipelines = append(f.destroyedPipelines, p)
		}
	}
	return nil
}

func (f *fakeDriver) createPipelines(n int, out []vk.Pipeline) vk.Result {
	if f.pipelineResult.IsError() {
		for i := range out {
			out[i] = vk.NullHandle
		}
		return f.pipelineResult
	}
	for i := 0; i < n && i < len(out); i++ {
		out[i] = vk.Pipeline(f.handle())
	}
	return f.pipelineResult
}

// instanceTable builds a table directly from the driver.
func (f *fakeDriver) instanceTable(instance vk.Instance) vk.InstanceDispatchTable {
	return vk.BuildInstanceDispatchTable(instance, f.gipa)
}

func (f *fakeDriver) deviceTable(device vk.Device) vk.DeviceDispatchTable {
	return vk.BuildDeviceDispatchTable(device, f.gdpa)
}

// instanceCreateInfo returns create info whose chain holds a link list of
// this layer followed by the driver, behind an unrelated record.
func (f *fakeDriver) instanceCreateInfo() (*vk.InstanceCreateInfo, *vk.LayerInstanceLink) {
	driverLink := &vk.LayerInstanceLink{NextGetInstanceProcAddr: f.gipa}
	ourLink := &vk.LayerInstanceLink{Next: driverLink, NextGetInstanceProcAddr: f.gipa}
	return &vk.InstanceCreateInfo{
		ApplicationInfo: &vk.ApplicationInfo{ApplicationName: "test"},
		Next: vk.Chain{
			&vk.ValidationFeatures{},
			&vk.LayerInstanceCreateInfo{Function: vk.LoaderDataCallback},
			&vk.LayerInstanceCreateInfo{Function: vk.LayerLinkInfo, LayerInfo: ourLink},
		},
	}, driverLink
}

func (f *fakeDriver) deviceCreateInfo() (*vk.DeviceCreateInfo, *vk.LayerDeviceLink) {
	driverLink := &vk.LayerDeviceLink{NextGetInstanceProcAddr: f.gipa, NextGetDeviceProcAddr: f.gdpa}
	ourLink := &vk.LayerDeviceLink{Next: driverLink, NextGetInstanceProcAddr: f.gipa, NextGetDeviceProcAddr: f.gdpa}
	return &vk.DeviceCreateInfo{
		Next: vk.Chain{
			&vk.UnknownStructure{Type: 1000001000},
			&vk.LayerDeviceCreateInfo{Function: vk.LayerLinkInfo, LayerInfo: ourLink},
		},
	}, driverLink
}
