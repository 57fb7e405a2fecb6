package lightgrid

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sectorcull/pkg/geom"
)

// cancelCheckInterval is how many cells a worker processes between context checks.
const cancelCheckInterval = 256

// Result holds the light lists produced by a culling pass.
type Result struct {
	LightsPerCell [][]int // Light indices reaching each cell, ascending
	CellsPerLight []int   // Number of cells each light reaches
	Tested        int     // Cell/light pairs evaluated
	Culled        int     // Pairs rejected
}

// Culler runs light culling passes over a grid.
type Culler struct {
	Grid    *Grid
	Workers int
	Log     *zap.Logger
}

// NewCuller creates a culler. Workers <= 0 uses one worker per CPU.
// A nil logger disables logging.
func NewCuller(grid *Grid, workers int, log *zap.Logger) *Culler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Culler{Grid: grid, Workers: workers, Log: log}
}

// Cull decides for every cell which cones can reach it.
// Cells are split across workers; each cone's invariants are computed once
// and shared read-only.
func (c *Culler) Cull(ctx context.Context, cones []geom.SphericalCone) (*Result, error) {
	if err := c.Grid.Validate(); err != nil {
		return nil, err
	}
	invs := make([]geom.ConeInvariants, len(cones))
	for i, cone := range cones {
		if err := cone.Validate(); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		invs[i] = geom.PrecomputeConeInvariants(cone)
	}

	start := time.Now()
	cells := c.Grid.CellCount()
	res := &Result{
		LightsPerCell: make([][]int, cells),
		CellsPerLight: make([]int, len(cones)),
		Tested:        cells * len(cones),
	}

	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cells {
		workers = cells
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		first error
	)
	per, rem := cells/workers, cells%workers
	lo := 0
	for w := 0; w < workers; w++ {
		hi := lo + per
		if w < rem {
			hi++
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			counts := make([]int, len(cones))
			err := c.cullRange(ctx, cones, invs, lo, hi, res.LightsPerCell, counts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil && first == nil {
				first = err
			}
			for i, n := range counts {
				res.CellsPerLight[i] += n
			}
		}(lo, hi)
		lo = hi
	}
	wg.Wait()

	if first != nil {
		return nil, first
	}

	hits := 0
	for i, n := range res.CellsPerLight {
		hits += n
		c.Log.Debug("light culled", zap.Int("light", i), zap.Int("cells", n))
	}
	res.Culled = res.Tested - hits

	c.Log.Info("culling pass complete",
		zap.Int("cells", cells),
		zap.Int("lights", len(cones)),
		zap.Int("workers", workers),
		zap.Int("culled", res.Culled),
		zap.Int("tested", res.Tested),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// cullRange fills out[lo:hi]. Workers own disjoint cell ranges.
func (c *Culler) cullRange(ctx context.Context, cones []geom.SphericalCone, invs []geom.ConeInvariants,
	lo, hi int, out [][]int, counts []int) error {
	for cell := lo; cell < hi; cell++ {
		if (cell-lo)%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		sphere := c.Grid.CellSphere(cell)
		var lights []int
		for i, cone := range cones {
			if geom.IntersectsBatch(invs[i], cone.Origin, cone.Forward, cone.Range, sphere) {
				lights = append(lights, i)
				counts[i]++
			}
		}
		out[cell] = lights
	}
	return nil
}

// CellsForCone returns the indices of the cells a single cone reaches.
func (c *Culler) CellsForCone(cone geom.SphericalCone) ([]int, error) {
	if err := c.Grid.Validate(); err != nil {
		return nil, err
	}
	if err := cone.Validate(); err != nil {
		return nil, err
	}
	inv := geom.PrecomputeConeInvariants(cone)

	var cells []int
	for i := 0; i < c.Grid.CellCount(); i++ {
		if geom.IntersectsBatch(inv, cone.Origin, cone.Forward, cone.Range, c.Grid.CellSphere(i)) {
			cells = append(cells, i)
		}
	}
	return cells, nil
}
