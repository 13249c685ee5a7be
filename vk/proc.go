package vk

// ProcAddr is an entry point returned by a proc-address resolver. Resolvers
// return one of the function types below, or nil when the name is unknown.
type ProcAddr = any

// Proc-address resolvers handed down by the loader.
type (
	GetInstanceProcAddrFunc = func(instance Instance, name string) ProcAddr
	GetDeviceProcAddrFunc   = func(device Device, name string) ProcAddr
)

// Entry point signatures. They are aliases so that plain function literals
// returned from a resolver assert cleanly.
type (
	CreateInstanceFunc  = func(info *InstanceCreateInfo, alloc *AllocationCallbacks, instance *Instance) Result
	DestroyInstanceFunc = func(instance Instance, alloc *AllocationCallbacks)

	EnumeratePhysicalDevicesFunc           = func(instance Instance) ([]PhysicalDevice, Result)
	EnumerateDeviceExtensionPropertiesFunc = func(physicalDevice PhysicalDevice, layerName string) ([]ExtensionProperties, Result)

	CreateDeviceFunc  = func(physicalDevice PhysicalDevice, info *DeviceCreateInfo, alloc *AllocationCallbacks, device *Device) Result
	DestroyDeviceFunc = func(device Device, alloc *AllocationCallbacks)

	CreateShaderModuleFunc  = func(device Device, info *ShaderModuleCreateInfo, alloc *AllocationCallbacks, module *ShaderModule) Result
	DestroyShaderModuleFunc = func(device Device, module ShaderModule, alloc *AllocationCallbacks)

	CreateGraphicsPipelinesFunc = func(device Device, cache PipelineCache, infos []GraphicsPipelineCreateInfo, alloc *AllocationCallbacks, pipelines []Pipeline) Result
	CreateComputePipelinesFunc  = func(device Device, cache PipelineCache, infos []ComputePipelineCreateInfo, alloc *AllocationCallbacks, pipelines []Pipeline) Result
	DestroyPipelineFunc         = func(device Device, pipeline Pipeline, alloc *AllocationCallbacks)
)

// Entry point names as the loader knows them.
const (
	NameGetInstanceProcAddr                = "vkGetInstanceProcAddr"
	NameGetDeviceProcAddr                  = "vkGetDeviceProcAddr"
	NameCreateInstance                     = "vkCreateInstance"
	NameDestroyInstance                    = "vkDestroyInstance"
	NameEnumeratePhysicalDevices           = "vkEnumeratePhysicalDevices"
	NameEnumerateDeviceExtensionProperties = "vkEnumerateDeviceExtensionProperties"
	NameCreateDevice                       = "vkCreateDevice"
	NameDestroyDevice                      = "vkDestroyDevice"
	NameCreateShaderModule                 = "vkCreateShaderModule"
	NameDestroyShaderModule                = "vkDestroyShaderModule"
	NameCreateGraphicsPipelines            = "vkCreateGraphicsPipelines"
	NameCreateComputePipelines             = "vkCreateComputePipelines"
	NameDestroyPipeline                    = "vkDestroyPipeline"
)

// As converts a resolved entry point to F. It returns the zero value when p
// is nil or has a different signature.
func As[F any](p ProcAddr) F {
	f, _ := p.(F)
	return f
}
