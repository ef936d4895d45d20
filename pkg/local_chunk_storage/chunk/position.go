package chunk

import (
	"fmt"
)

// GridSize is the number of chunks along one side of a region.
const GridSize = 32

// Pos is a world-absolute chunk position.
type Pos struct {
	X, Z int32
}

// String implements fmt.Stringer.
func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Z)
}

// Index returns the chunk's slot in its region's header tables.
// The result is always in [0, 1024).
func (p Pos) Index() int {
	return int(modEuclid(p.X, GridSize) + modEuclid(p.Z, GridSize)*GridSize)
}

// Region returns the coordinates of the region holding the chunk.
func (p Pos) Region() (x, z int32) {
	return divEuclid(p.X, GridSize), divEuclid(p.Z, GridSize)
}

// modEuclid is the always-non-negative remainder of x/y.
func modEuclid(x, y int32) int32 {
	m := x % y
	if m < 0 {
		if y < 0 {
			m -= y
		} else {
			m += y
		}
	}
	return m
}

// divEuclid floors the quotient of x/y towards negative infinity.
func divEuclid(x, y int32) int32 {
	q := x / y
	if x%y < 0 {
		if y > 0 {
			q--
		} else {
			q++
		}
	}
	return q
}
