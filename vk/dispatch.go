package vk

// InstanceDispatchTable holds the next layer's instance-level entry points.
type InstanceDispatchTable struct {
	GetInstanceProcAddr                GetInstanceProcAddrFunc
	DestroyInstance                    DestroyInstanceFunc
	EnumeratePhysicalDevices           EnumeratePhysicalDevicesFunc
	EnumerateDeviceExtensionProperties EnumerateDeviceExtensionPropertiesFunc
	CreateDevice                       CreateDeviceFunc
}

// DeviceDispatchTable holds the next layer's device-level entry points.
type DeviceDispatchTable struct {
	GetDeviceProcAddr       GetDeviceProcAddrFunc
	DestroyDevice           DestroyDeviceFunc
	CreateShaderModule      CreateShaderModuleFunc
	DestroyShaderModule     DestroyShaderModuleFunc
	CreateGraphicsPipelines CreateGraphicsPipelinesFunc
	CreateComputePipelines  CreateComputePipelinesFunc
	DestroyPipeline         DestroyPipelineFunc
}

// InstanceTableBuilder builds the dispatch table for a freshly created
// instance from the next layer's resolver.
type InstanceTableBuilder func(instance Instance, gipa GetInstanceProcAddrFunc) InstanceDispatchTable

// DeviceTableBuilder builds the dispatch table for a freshly created device
// from the next layer's resolver.
type DeviceTableBuilder func(device Device, gdpa GetDeviceProcAddrFunc) DeviceDispatchTable

// BuildInstanceDispatchTable resolves every instance-level member by name.
// Members the next layer does not expose stay nil.
func BuildInstanceDispatchTable(instance Instance, gipa GetInstanceProcAddrFunc) InstanceDispatchTable {
	resolve := func(name string) ProcAddr { return gipa(instance, name) }
	t := InstanceDispatchTable{
		GetInstanceProcAddr:                As[GetInstanceProcAddrFunc](resolve(NameGetInstanceProcAddr)),
		DestroyInstance:                    As[DestroyInstanceFunc](resolve(NameDestroyInstance)),
		EnumeratePhysicalDevices:           As[EnumeratePhysicalDevicesFunc](resolve(NameEnumeratePhysicalDevices)),
		EnumerateDeviceExtensionProperties: As[EnumerateDeviceExtensionPropertiesFunc](resolve(NameEnumerateDeviceExtensionProperties)),
		CreateDevice:                       As[CreateDeviceFunc](resolve(NameCreateDevice)),
	}
	if t.GetInstanceProcAddr == nil {
		t.GetInstanceProcAddr = gipa
	}
	return t
}

// BuildDeviceDispatchTable resolves every device-level member by name.
func BuildDeviceDispatchTable(device Device, gdpa GetDeviceProcAddrFunc) DeviceDispatchTable {
	resolve := func(name string) ProcAddr { return gdpa(device, name) }
	t := DeviceDispatchTable{
		GetDeviceProcAddr:       As[GetDeviceProcAddrFunc](resolve(NameGetDeviceProcAddr)),
		DestroyDevice:           As[DestroyDeviceFunc](resolve(NameDestroyDevice)),
		CreateShaderModule:      As[CreateShaderModuleFunc](resolve(NameCreateShaderModule)),
		DestroyShaderModule:     As[DestroyShaderModuleFunc](resolve(NameDestroyShaderModule)),
		CreateGraphicsPipelines: As[CreateGraphicsPipelinesFunc](resolve(NameCreateGraphicsPipelines)),
		CreateComputePipelines:  As[CreateComputePipelinesFunc](resolve(NameCreateComputePipelines)),
		DestroyPipeline:         As[DestroyPipelineFunc](resolve(NameDestroyPipeline)),
	}
	if t.GetDeviceProcAddr == nil {
		t.GetDeviceProcAddr = gdpa
	}
	return t
}
