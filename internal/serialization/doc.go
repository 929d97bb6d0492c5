// Package serialization saves and loads named tensors in the SafeTensors format.
//
// File layout:
//
//	[8 bytes: header size N (uint64 LE)]
//	[N bytes: JSON header, space padded to a multiple of 8]
//	[tensor data: row-major little-endian bytes]
//
// The header maps every tensor name to its dtype, shape and byte range
// (data_offsets, relative to the start of the data section). The optional
// "__metadata__" entry holds free-form string pairs.
//
// Supported dtypes are F32, F64, I32 and I64, plus F16, which is written on
// request for floating point tensors and widened on load.
//
// Example usage:
//
//	// Save a layer
//	err := serialization.WriteFile("layer.safetensors", layer.StateDict(), nil, serialization.Options{})
//
//	// Load it back
//	stateDict, _, err := serialization.ReadFile[float32]("layer.safetensors")
//	err = layer.LoadStateDict(stateDict)
package serialization
