//go:build !ddo_debug

package ddo

// assertContract is a no-op in production builds; the caller is expected
// to also return the corresponding error so Maximize can surface it.
func assertContract(cond bool, base error, context string) {}
