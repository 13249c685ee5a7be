package vk

// ApplicationInfo describes the application creating an instance.
type ApplicationInfo struct {
	ApplicationName    string
	EngineName         string
	ApplicationVersion uint32
	EngineVersion      uint32
	APIVersion         uint32
}

func (*ApplicationInfo) StructureType() StructureType {
	return StructureTypeApplicationInfo
}

// InstanceCreateInfo holds the instance creation parameters.
type InstanceCreateInfo struct {
	ApplicationInfo       *ApplicationInfo
	Next                  Chain
	EnabledLayerNames     []string
	EnabledExtensionNames []string
}

func (*InstanceCreateInfo) StructureType() StructureType {
	return StructureTypeInstanceCreateInfo
}

// DeviceCreateInfo holds the device creation parameters.
type DeviceCreateInfo struct {
	Next                  Chain
	EnabledExtensionNames []string
}

func (*DeviceCreateInfo) StructureType() StructureType {
	return StructureTypeDeviceCreateInfo
}

// ShaderModuleCreateInfo carries a SPIR-V binary.
type ShaderModuleCreateInfo struct {
	Next Chain
	Code []byte
}

func (*ShaderModuleCreateInfo) StructureType() StructureType {
	return StructureTypeShaderModuleCreateInfo
}

// ShaderStage is a pipeline stage bit.
type ShaderStage uint32

const (
	ShaderStageVertex   ShaderStage = 0x00000001
	ShaderStageGeometry ShaderStage = 0x00000008
	ShaderStageFragment ShaderStage = 0x00000010
	ShaderStageCompute  ShaderStage = 0x00000020
)

// PipelineShaderStageCreateInfo binds a shader module to a stage.
type PipelineShaderStageCreateInfo struct {
	Name   string
	Module ShaderModule
	Stage  ShaderStage
}

// GraphicsPipelineCreateInfo lists the stages of a graphics pipeline.
type GraphicsPipelineCreateInfo struct {
	Next   Chain
	Stages []PipelineShaderStageCreateInfo
}

func (*GraphicsPipelineCreateInfo) StructureType() StructureType {
	return StructureTypeGraphicsPipelineCreateInfo
}

// ComputePipelineCreateInfo holds the single stage of a compute pipeline.
type ComputePipelineCreateInfo struct {
	Next  Chain
	Stage PipelineShaderStageCreateInfo
}

func (*ComputePipelineCreateInfo) StructureType() StructureType {
	return StructureTypeComputePipelineCreateInfo
}
