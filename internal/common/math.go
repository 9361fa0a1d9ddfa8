package common

// Abs returns the absolute value of an integer
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Mod returns x modulo n in the range [0, n). n must be positive.
func Mod(x, n int) int {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}

// WrapDistance is the shortest distance between a and b along one axis of a
// ring of the given size.
func WrapDistance(a, b, size int) int {
	d := Mod(a-b, size)
	return Min(d, size-d)
}

// ToroidalManhattan is the Manhattan distance between two points on a
// wrap-around grid.
func ToroidalManhattan(x1, y1, x2, y2, width, height int) int {
	return WrapDistance(x1, x2, width) + WrapDistance(y1, y2, height)
}
