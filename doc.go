// Package perflayers is the core of a set of graphics API performance
// layers.
//
// A layer sits between an application and the driver, forwards every call
// it intercepts to the next layer in the chain, and records what it saw:
// call timings, shader content hashes and pipeline composition.
//
// # Architecture Overview
//
//	perflayers/
//	├── vk/              Handles, result codes, create info chains, dispatch tables
//	├── layer/           LayerData: dispatch registries, create/destroy, log lines
//	├── eventlog/        Events, sinks, event loggers, event log reader
//	│   └── otellog/     OpenTelemetry event logger
//	├── shaderhash/      Shader content hashes and their text form
//	├── timing/          Clock and time conversions
//	├── config/          Environment and YAML settings
//	├── errors/          Structured error types
//	└── cmd/splview/     Event log viewer
//
// # Quick Start
//
// Create the layer state once, when the layer is loaded:
//
//	data := layer.New(layer.DefaultOptions())
//	defer data.Close()
//
// Intercepted entry points then forward through it:
//
//	res := data.CreateShaderModule(device, info, alloc, &module)
//	data.Log("create_shader_module", shaderhash.HashVector{res.Hash}, strconv.FormatInt(int64(res.Duration()), 10))
package perflayers
