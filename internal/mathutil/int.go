package mathutil

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntAbs returns the absolute value of an int (search: int-math).
func IntAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// IntSign returns -1, 0, or 1 based on sign (search: int-math).
func IntSign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// IntClamp limits x to [lo, hi].
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// FloorDiv divides rounding toward negative infinity. b must be positive.
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ISqrt returns floor(sqrt(n)) for n >= 0 using integer Newton steps, so
// results are identical on every platform.
func ISqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
