package vk

// StructureType is the discriminant carried by every chained record.
type StructureType int32

const (
	StructureTypeApplicationInfo              StructureType = 0
	StructureTypeInstanceCreateInfo           StructureType = 1
	StructureTypeDeviceCreateInfo             StructureType = 3
	StructureTypeShaderModuleCreateInfo       StructureType = 16
	StructureTypeGraphicsPipelineCreateInfo   StructureType = 28
	StructureTypeComputePipelineCreateInfo    StructureType = 29
	StructureTypeLoaderInstanceCreateInfo     StructureType = 47
	StructureTypeLoaderDeviceCreateInfo       StructureType = 48
	StructureTypeValidationFeatures           StructureType = 1000247000
	StructureTypePipelineCreationFeedbackInfo StructureType = 1000192000
)

// LayerFunction is the sub-discriminant of loader create info records.
type LayerFunction int32

const (
	LayerLinkInfo LayerFunction = iota
	LoaderDataCallback
	LoaderLayerCreateDeviceCallback
	LoaderFeatures
)

// Structure is one record of a create info extension chain.
type Structure interface {
	StructureType() StructureType
}

// Chain is an extension chain in traversal order.
type Chain []Structure

// First returns the first record accepted by match, or nil.
func (c Chain) First(match func(Structure) bool) Structure {
	for _, s := range c {
		if s != nil && match(s) {
			return s
		}
	}
	return nil
}

// LayerInstanceLink is one element of the loader's per-layer link list for
// instance creation.
type LayerInstanceLink struct {
	Next                          *LayerInstanceLink
	NextGetInstanceProcAddr       GetInstanceProcAddrFunc
	NextGetPhysicalDeviceProcAddr GetInstanceProcAddrFunc
}

// LayerDeviceLink is one element of the loader's per-layer link list for
// device creation.
type LayerDeviceLink struct {
	Next                    *LayerDeviceLink
	NextGetInstanceProcAddr GetInstanceProcAddrFunc
	NextGetDeviceProcAddr   GetDeviceProcAddrFunc
}

// LayerInstanceCreateInfo is injected by the loader into instance create
// chains. LayerInfo is only meaningful when Function is LayerLinkInfo.
type LayerInstanceCreateInfo struct {
	LayerInfo      *LayerInstanceLink
	Function       LayerFunction
	LoaderFeatures uint32
}

func (*LayerInstanceCreateInfo) StructureType() StructureType {
	return StructureTypeLoaderInstanceCreateInfo
}

// LayerDeviceCreateInfo is injected by the loader into device create chains.
type LayerDeviceCreateInfo struct {
	LayerInfo *LayerDeviceLink
	Function  LayerFunction
}

func (*LayerDeviceCreateInfo) StructureType() StructureType {
	return StructureTypeLoaderDeviceCreateInfo
}

// ValidationFeatures is an application-provided record the layers ignore.
type ValidationFeatures struct {
	Enabled  []uint32
	Disabled []uint32
}

func (*ValidationFeatures) StructureType() StructureType {
	return StructureTypeValidationFeatures
}

// PipelineCreationFeedback reports driver-side pipeline creation timing.
type PipelineCreationFeedback struct {
	Flags    uint32
	Duration uint64
}

func (*PipelineCreationFeedback) StructureType() StructureType {
	return StructureTypePipelineCreationFeedbackInfo
}

// UnknownStructure stands in for records this module does not model.
type UnknownStructure struct {
	Type StructureType
}

func (s *UnknownStructure) StructureType() StructureType {
	return s.Type
}
