package util

import "runtime"

const (
	minPoolSize = 2
	maxPoolSize = 16
)

// PoolSize returns override when positive, otherwise twice the CPU count
// clamped to [2, 16]. Parsing spends most of its time in cgo, so more
// workers than cores still helps.
func PoolSize(override int) int {
	if override > 0 {
		return override
	}
	n := runtime.NumCPU() * 2
	if n < minPoolSize {
		n = minPoolSize
	}
	if n > maxPoolSize {
		n = maxPoolSize
	}
	return n
}
