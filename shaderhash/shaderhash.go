// Package shaderhash computes the content hashes that identify shader
// modules in the layer logs.
//
// A hash depends only on the SPIR-V bytes, so identical shaders loaded by
// different modules (or different runs) share the same identifier. Two
// modules created from identical code therefore log the same hash. The
// module handle is the key under which the hash is remembered:
//
//	h := shaderhash.Hash(info.Code)
//	table.Insert(module, h)
//	fmt.Println(shaderhash.ToString(h)) // 0x9c3f...
package shaderhash

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// HashVector lists the shader hashes of a pipeline's stages in stage order.
type HashVector []uint64

// Hash returns the 64-bit content hash of a shader binary.
func Hash(code []byte) uint64 {
	return xxhash.Sum64(code)
}

// ToString formats a hash as 0x-prefixed lowercase hex.
func ToString(h uint64) string {
	return "0x" + strconv.FormatUint(h, 16)
}

// VectorToString formats a pipeline's hashes as "[0x1,0x2]".
func VectorToString(v HashVector) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, h := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(ToString(h))
	}
	b.WriteByte(']')
	return b.String()
}

// Parse reads a hash formatted by ToString.
func Parse(s string) (uint64, bool) {
	rest, ok := strings.CutPrefix(s, "0x")
	if !ok || rest == "" {
		return 0, false
	}
	h, err := strconv.ParseUint(rest, 16, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
