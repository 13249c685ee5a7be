package vk

import "testing"

func TestResult_String(t *testing.T) {
	tests := []struct {
		r    Result
		want string
	}{
		{Success, "VK_SUCCESS"},
		{ErrorOutOfHostMemory, "VK_ERROR_OUT_OF_HOST_MEMORY"},
		{ErrorInitializationFailed, "VK_ERROR_INITIALIZATION_FAILED"},
		{Result(-1000), "VkResult(-1000)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Result(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
		if tt.r.Error() != tt.want {
			t.Errorf("Error() should match String() for %d", tt.r)
		}
	}
	if Success.IsError() || Incomplete.IsError() {
		t.Error("non-negative results must not be errors")
	}
	if !ErrorDeviceLost.IsError() {
		t.Error("ErrorDeviceLost must be an error")
	}
}

func TestChain_First(t *testing.T) {
	link := &LayerInstanceCreateInfo{Function: LayerLinkInfo}
	chain := Chain{
		&ValidationFeatures{},
		nil,
		&LayerInstanceCreateInfo{Function: LoaderDataCallback},
		link,
		&LayerInstanceCreateInfo{Function: LayerLinkInfo},
	}

	got := chain.First(func(s Structure) bool {
		info, ok := s.(*LayerInstanceCreateInfo)
		return ok && info.Function == LayerLinkInfo
	})
	if got != link {
		t.Fatalf("First returned %v, want the first link record", got)
	}

	none := chain.First(func(s Structure) bool {
		return s.StructureType() == StructureTypeLoaderDeviceCreateInfo
	})
	if none != nil {
		t.Fatalf("expected nil, got %v", none)
	}
}

func TestStructureTypes(t *testing.T) {
	tests := []struct {
		s    Structure
		want StructureType
	}{
		{&LayerInstanceCreateInfo{}, StructureTypeLoaderInstanceCreateInfo},
		{&LayerDeviceCreateInfo{}, StructureTypeLoaderDeviceCreateInfo},
		{&ValidationFeatures{}, StructureTypeValidationFeatures},
		{&PipelineCreationFeedback{}, StructureTypePipelineCreationFeedbackInfo},
		{&UnknownStructure{Type: 77}, 77},
		{&InstanceCreateInfo{}, StructureTypeInstanceCreateInfo},
		{&DeviceCreateInfo{}, StructureTypeDeviceCreateInfo},
		{&ShaderModuleCreateInfo{}, StructureTypeShaderModuleCreateInfo},
		{&GraphicsPipelineCreateInfo{}, StructureTypeGraphicsPipelineCreateInfo},
		{&ComputePipelineCreateInfo{}, StructureTypeComputePipelineCreateInfo},
		{&ApplicationInfo{}, StructureTypeApplicationInfo},
	}
	for _, tt := range tests {
		if got := tt.s.StructureType(); got != tt.want {
			t.Errorf("%T.StructureType() = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestAs(t *testing.T) {
	var p ProcAddr = func(device Device, alloc *AllocationCallbacks) {}
	if f := As[DestroyDeviceFunc](p); f == nil {
		t.Fatal("As should accept a matching function literal")
	}
	if f := As[DestroyInstanceFunc](p); f != nil {
		t.Fatal("As should reject a mismatched signature")
	}
	if f := As[DestroyInstanceFunc](nil); f != nil {
		t.Fatal("As(nil) should return nil")
	}
}

func TestBuildInstanceDispatchTable(t *testing.T) {
	var asked []string
	var destroyed Instance
	gipa := func(instance Instance, name string) ProcAddr {
		asked = append(asked, name)
		if instance != 42 {
			t.Errorf("resolver called with instance %d", instance)
		}
		switch name {
		case NameDestroyInstance:
			return func(instance Instance, alloc *AllocationCallbacks) { destroyed = instance }
		case NameEnumeratePhysicalDevices:
			return func(instance Instance) ([]PhysicalDevice, Result) {
				return []PhysicalDevice{1, 2}, Success
			}
		}
		return nil
	}

	table := BuildInstanceDispatchTable(42, gipa)
	if table.GetInstanceProcAddr == nil {
		t.Fatal("GetInstanceProcAddr should fall back to the resolver")
	}
	if table.CreateDevice != nil {
		t.Error("unresolved member should stay nil")
	}
	table.DestroyInstance(42, nil)
	if destroyed != 42 {
		t.Errorf("DestroyInstance not bound, destroyed = %d", destroyed)
	}
	pds, res := table.EnumeratePhysicalDevices(42)
	if res != Success || len(pds) != 2 {
		t.Errorf("EnumeratePhysicalDevices = %v, %v", pds, res)
	}
	if len(asked) != 5 {
		t.Errorf("resolver asked %d names, want 5: %v", len(asked), asked)
	}
}

func TestBuildDeviceDispatchTable(t *testing.T) {
	var created ShaderModule
	gdpa := func(device Device, name string) ProcAddr {
		if name == NameCreateShaderModule {
			return func(device Device, info *ShaderModuleCreateInfo, alloc *AllocationCallbacks, module *ShaderModule) Result {
				*module = 9
				created = *module
				return Success
			}
		}
		return nil
	}

	table := BuildDeviceDispatchTable(3, gdpa)
	var m ShaderModule
	if res := table.CreateShaderModule(3, &ShaderModuleCreateInfo{}, nil, &m); res != Success {
		t.Fatalf("CreateShaderModule = %v", res)
	}
	if m != 9 || created != 9 {
		t.Errorf("module = %d, created = %d", m, created)
	}
	if table.DestroyShaderModule != nil || table.CreateGraphicsPipelines != nil {
		t.Error("unresolved members should stay nil")
	}
	if table.GetDeviceProcAddr == nil {
		t.Error("GetDeviceProcAddr should fall back to the resolver")
	}
}
