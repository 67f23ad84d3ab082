package morton

import "sync/atomic"

// accelerated reports whether the BMI2 pdep/pext path is active. It starts
// false: activating a genuine pdep/pext fast path requires per-arch
// assembly (see DESIGN.md), so today encodeMorton3/decodeMorton3 always run
// the reference implementation. The indirection is kept so a future
// assembly implementation can flip this flag at init time on qualifying
// x86_64 CPUs without changing any caller.
var accelerated atomic.Bool

// Accelerated reports whether the BMI2 fast path is currently selected.
func Accelerated() bool {
	return accelerated.Load()
}

func encodeMorton3(x, y, z uint16) uint64 {
	return referenceEncodeMorton3(x, y, z)
}

func decodeMorton3(code uint64) (x, y, z uint16) {
	return referenceDecodeMorton3(code)
}
