// Package lightgrid assigns spot lights to the cells of a uniform lightmap grid.
package lightgrid

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/Faultbox/sectorcull/pkg/geom"
)

// ErrInvalidGrid is returned for grids with no cells or a non-positive cell size.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is an axis-aligned grid of cubic cells starting at Origin.
type Grid struct {
	Origin   r3.Vector // Minimum corner
	CellSize float64
	Dims     [3]int
}

// NewGrid creates a grid and validates its dimensions.
func NewGrid(origin r3.Vector, cellSize float64, dims [3]int) (*Grid, error) {
	g := &Grid{Origin: origin, CellSize: cellSize, Dims: dims}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate reports whether the grid has at least one cell of positive size.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidGrid)
	}
	if !(g.CellSize > 0) || math.IsInf(g.CellSize, 0) {
		return fmt.Errorf("%w: cell size %g", ErrInvalidGrid, g.CellSize)
	}
	for axis, n := range g.Dims {
		if n <= 0 {
			return fmt.Errorf("%w: dimension %d is %d", ErrInvalidGrid, axis, n)
		}
	}
	return nil
}

// CellCount returns the total number of cells.
func (g *Grid) CellCount() int {
	return g.Dims[0] * g.Dims[1] * g.Dims[2]
}

// CellIndex returns the linear index of cell (x, y, z), X varying fastest.
func (g *Grid) CellIndex(x, y, z int) int {
	return x + g.Dims[0]*(y+g.Dims[1]*z)
}

// CellCoords is the inverse of CellIndex.
func (g *Grid) CellCoords(i int) (x, y, z int) {
	x = i % g.Dims[0]
	i /= g.Dims[0]
	y = i % g.Dims[1]
	z = i / g.Dims[1]
	return x, y, z
}

// CellSphere returns the bounding sphere of cell i.
func (g *Grid) CellSphere(i int) geom.Sphere {
	x, y, z := g.CellCoords(i)
	half := g.CellSize / 2
	return geom.Sphere{
		Origin: g.Origin.Add(r3.Vector{
			X: float64(x)*g.CellSize + half,
			Y: float64(y)*g.CellSize + half,
			Z: float64(z)*g.CellSize + half,
		}),
		Radius: half * math.Sqrt(3),
	}
}

// Bounds returns the minimum and maximum corners of the grid.
func (g *Grid) Bounds() (min, max r3.Vector) {
	size := r3.Vector{
		X: float64(g.Dims[0]) * g.CellSize,
		Y: float64(g.Dims[1]) * g.CellSize,
		Z: float64(g.Dims[2]) * g.CellSize,
	}
	return g.Origin, g.Origin.Add(size)
}
