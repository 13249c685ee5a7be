package vk

// Dispatchable and non-dispatchable handles. The zero value is the null
// handle for every kind.
type (
	Instance       uint64
	PhysicalDevice uint64
	Device         uint64
	ShaderModule   uint64
	Pipeline       uint64
	PipelineCache  uint64
)

// NullHandle is the null value shared by every handle kind.
const NullHandle = 0

// AllocationCallbacks is passed through to the next layer untouched.
type AllocationCallbacks struct {
	UserData any
}

// ExtensionProperties describes one extension reported by the driver.
type ExtensionProperties struct {
	Name        string
	SpecVersion uint32
}
