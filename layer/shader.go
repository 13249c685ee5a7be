package layer

import (
	"time"

	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/vk"
)

// ShaderModuleCreateResult reports a forwarded vkCreateShaderModule call.
type ShaderModuleCreateResult struct {
	Result vk.Result
	// Hash is the content hash of the module code.
	Hash  uint64
	Start time.Time
	End   time.Time
}

// Duration returns the time spent in the next layer.
func (r ShaderModuleCreateResult) Duration() time.Duration { return r.End.Sub(r.Start) }

// CreateShaderModule creates a shader module through the next layer, timing
// the call. The content hash is remembered only when creation succeeds.
func (d *LayerData) CreateShaderModule(device vk.Device, info *vk.ShaderModuleCreateInfo,
	alloc *vk.AllocationCallbacks, module *vk.ShaderModule,
) ShaderModuleCreateResult {
	next := d.mustDeviceTable(device).CreateShaderModule

	start := d.clock.Now()
	res := next(device, info, alloc, module)
	end := d.clock.Now()

	hash := shaderhash.Hash(info.Code)
	if res == vk.Success {
		d.shaders.Insert(*module, hash)
	}
	return ShaderModuleCreateResult{Result: res, Hash: hash, Start: start, End: end}
}

// DestroyShaderModule forgets the hash of module, then destroys it through
// the next layer.
func (d *LayerData) DestroyShaderModule(device vk.Device, module vk.ShaderModule, alloc *vk.AllocationCallbacks) {
	next := d.mustDeviceTable(device).DestroyShaderModule
	d.shaders.Erase(module)
	next(device, module, alloc)
}

// ShaderHash returns the content hash of a live shader module.
func (d *LayerData) ShaderHash(module vk.ShaderModule) (uint64, bool) {
	return d.shaders.Lookup(module)
}

// ShaderCount returns the number of live shader modules.
func (d *LayerData) ShaderCount() int { return d.shaders.Len() }
