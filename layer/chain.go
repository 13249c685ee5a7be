package layer

import "github.com/wippyai/vk-perflayers/vk"

// findInstanceCreateInfo returns the first loader instance record in chain
// that carries link info, or nil.
func findInstanceCreateInfo(chain vk.Chain) *vk.LayerInstanceCreateInfo {
	s := chain.First(func(s vk.Structure) bool {
		if s.StructureType() != vk.StructureTypeLoaderInstanceCreateInfo {
			return false
		}
		info, ok := s.(*vk.LayerInstanceCreateInfo)
		return ok && info.Function == vk.LayerLinkInfo
	})
	if s == nil {
		return nil
	}
	return s.(*vk.LayerInstanceCreateInfo)
}

// findDeviceCreateInfo returns the first loader device record in chain that
// carries link info, or nil.
func findDeviceCreateInfo(chain vk.Chain) *vk.LayerDeviceCreateInfo {
	s := chain.First(func(s vk.Structure) bool {
		if s.StructureType() != vk.StructureTypeLoaderDeviceCreateInfo {
			return false
		}
		info, ok := s.(*vk.LayerDeviceCreateInfo)
		return ok && info.Function == vk.LayerLinkInfo
	})
	if s == nil {
		return nil
	}
	return s.(*vk.LayerDeviceCreateInfo)
}
