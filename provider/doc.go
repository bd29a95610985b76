// Package provider implements a generic provider framework using Go generics
// for swappable model backends.
//
// It provides a registry for managing multiple backend implementations with
// factory-based instantiation and availability checking. The speech model
// backend is registered as a factory so alternative runtimes can be selected
// by name from configuration; instances are memoized, one backend per name
// per process.
//
// # Usage
//
//	reg := provider.NewRegistry[asr.Model]()
//	reg.RegisterFactory("sensevoice", sensevoice.Factory)
//	model, err := reg.Create("sensevoice", cfg)
package provider
