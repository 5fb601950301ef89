package internal

import "slices"

// ReconstructPath follows predecessor links from goal until it reaches a
// negative entry and appends the visited indexes to dst in start-to-goal order.
func ReconstructPath(cameFrom []int, goal int, dst []int) []int {
	base := len(dst)
	for current := goal; current >= 0; current = cameFrom[current] {
		dst = append(dst, current)
	}
	slices.Reverse(dst[base:])
	return dst
}
