//go:build !linux && !darwin

package cli

func isTerminal(uintptr) bool {
	return false
}
