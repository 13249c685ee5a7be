package layer

import (
	"time"

	"github.com/wippyai/vk-perflayers/shaderhash"
	"github.com/wippyai/vk-perflayers/vk"
)

// PipelineCreateResult reports a forwarded pipeline creation call.
type PipelineCreateResult struct {
	Result vk.Result
	// Hashes holds the stage shader hashes of each create info, in order.
	Hashes []shaderhash.HashVector
	Start  time.Time
	End    time.Time
}

// Duration returns the time spent in the next layer.
func (r PipelineCreateResult) Duration() time.Duration { return r.End.Sub(r.Start) }

// CreateGraphicsPipelines creates graphics pipelines through the next layer
// and remembers the shader hashes of every pipeline created.
func (d *LayerData) CreateGraphicsPipelines(device vk.Device, cache vk.PipelineCache,
	infos []vk.GraphicsPipelineCreateInfo, alloc *vk.AllocationCallbacks, pipelines []vk.Pipeline,
) PipelineCreateResult {
	next := d.mustDeviceTable(device).CreateGraphicsPipelines

	hashes := make([]shaderhash.HashVector, len(infos))
	for i, info := range infos {
		modules := make([]vk.ShaderModule, len(info.Stages))
		for j, stage := range info.Stages {
			modules[j] = stage.Module
		}
		hashes[i] = d.shaders.Vector(modules...)
	}

	start := d.clock.Now()
	res := next(device, cache, infos, alloc, pipelines)
	end := d.clock.Now()

	d.recordPipelines(res, pipelines, hashes)
	return PipelineCreateResult{Result: res, Hashes: hashes, Start: start, End: end}
}

// CreateComputePipelines creates compute pipelines through the next layer
// and remembers the shader hash of every pipeline created.
func (d *LayerData) CreateComputePipelines(device vk.Device, cache vk.PipelineCache,
	infos []vk.ComputePipelineCreateInfo, alloc *vk.AllocationCallbacks, pipelines []vk.Pipeline,
) PipelineCreateResult {
	next := d.mustDeviceTable(device).CreateComputePipelines

	hashes := make([]shaderhash.HashVector, len(infos))
	for i, info := range infos {
		hashes[i] = d.shaders.Vector(info.Stage.Module)
	}

	start := d.clock.Now()
	res := next(device, cache, infos, alloc, pipelines)
	end := d.clock.Now()

	d.recordPipelines(res, pipelines, hashes)
	return PipelineCreateResult{Result: res, Hashes: hashes, Start: start, End: end}
}

// recordPipelines stores the hashes of pipelines the driver returned.
// Failed entries are null handles and are skipped.
func (d *LayerData) recordPipelines(res vk.Result, pipelines []vk.Pipeline, hashes []shaderhash.HashVector) {
	if res.IsError() {
		return
	}
	for i, p := range pipelines {
		if i >= len(hashes) || p == vk.NullHandle {
			continue
		}
		d.pipelines.insert(p, hashes[i])
	}
}

// PipelineHashes returns the stage shader hashes of a live pipeline.
func (d *LayerData) PipelineHashes(pipeline vk.Pipeline) (shaderhash.HashVector, bool) {
	return d.pipelines.lookup(pipeline)
}

// DestroyPipeline forgets pipeline, then destroys it through the next layer.
func (d *LayerData) DestroyPipeline(device vk.Device, pipeline vk.Pipeline, alloc *vk.AllocationCallbacks) {
	next := d.mustDeviceTable(device).DestroyPipeline
	d.pipelines.erase(pipeline)
	next(device, pipeline, alloc)
}
