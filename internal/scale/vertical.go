package scale

import "math/bits"

// Combine applies one row of a vertical FilterBank to a window of
// resident Q15 rows, producing one combined Q15 row, per spec.md §4.4
// steps 1-2. one is the bank's fixed-point "one" (spec.md §3: "e.g.
// ... 1<<12 for vertical", 1<<14 for horizontal), and the normalizing
// shift is derived from it; Build only ever hands out a power-of-two
// one, same as Horizontal.
func Combine(dst []int16, window [][]int16, coeffRow []int16, one int) {
	shift := bits.TrailingZeros(uint(one))
	half := int64(1) << uint(shift-1)
	for col := range dst {
		var acc int64
		for j, row := range window {
			acc += int64(row[col]) * int64(coeffRow[j])
		}
		dst[col] = clipQ15((acc + half) >> uint(shift))
	}
}
