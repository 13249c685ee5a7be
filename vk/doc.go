// Package vk models the slice of the graphics API that the performance
// layers intercept.
//
// Handles are opaque loader-issued identifiers. They are compared and hashed
// but never dereferenced:
//
//	Instance, PhysicalDevice, Device, ShaderModule, Pipeline, PipelineCache
//
// # Structure Chains
//
// Create infos carry an extension chain. Instead of reinterpreting an untyped
// next pointer, the chain is a sequence of tagged records:
//
//	info := &vk.InstanceCreateInfo{
//	    Next: vk.Chain{
//	        &vk.ValidationFeatures{},
//	        &vk.LayerInstanceCreateInfo{Function: vk.LayerLinkInfo, LayerInfo: link},
//	    },
//	}
//
// Consumers check StructureType first and only then assert the concrete
// record type.
//
// # Dispatch Tables
//
// A dispatch table holds the next layer's entry points for one instance or
// device. Tables are built once from a proc-address resolver and never
// mutated afterwards:
//
//	table := vk.BuildInstanceDispatchTable(instance, link.NextGetInstanceProcAddr)
//	table.DestroyInstance(instance, nil)
package vk
