package util

import "fmt"

// HumanBytes renders a byte count the way the logs expect it: whole bytes
// below one KB, otherwise two decimals in the largest unit that fits.
func HumanBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
		tb = 1 << 40
	)
	v := float64(n)
	switch {
	case n < kb:
		return fmt.Sprintf("%d Bytes", n)
	case n < mb:
		return fmt.Sprintf("%.2f KB", v/kb)
	case n < gb:
		return fmt.Sprintf("%.2f MB", v/mb)
	case n < tb:
		return fmt.Sprintf("%.2f GB", v/gb)
	default:
		return fmt.Sprintf("%.2f TB", v/tb)
	}
}
