package ecs

import (
	"math"

	"github.com/jakecoffman/cp"
)

type cellKey struct {
	x int
	y int
}

// SpatialGrid buckets colliders by the cells their bounding boxes overlap.
// It is rebuilt every frame; results are candidates for exact testing only.
type SpatialGrid struct {
	size    float64
	cells   map[cellKey][]Collider
	entries int
	seen    map[Entity]struct{}
}

// GridStats summarizes bucket occupancy.
type GridStats struct {
	Cells          int
	Entries        int
	AveragePerCell float64
}

func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &SpatialGrid{
		size:  cellSize,
		cells: make(map[cellKey][]Collider),
		seen:  make(map[Entity]struct{}),
	}
}

// CellSize returns the grid cell edge length.
func (g *SpatialGrid) CellSize() float64 {
	if g == nil {
		return 0
	}
	return g.size
}

// Clear empties every bucket.
func (g *SpatialGrid) Clear() {
	if g == nil {
		return
	}
	clear(g.cells)
	g.entries = 0
}

func (g *SpatialGrid) cellOf(v float64) int {
	return int(math.Floor(v / g.size))
}

func (g *SpatialGrid) cellRange(bb cp.BB) (minX, minY, maxX, maxY int) {
	return g.cellOf(bb.L), g.cellOf(bb.B), g.cellOf(bb.R), g.cellOf(bb.T)
}

// Insert adds an active collider to every cell its box overlaps.
func (g *SpatialGrid) Insert(c Collider) {
	if g == nil || c == nil {
		return
	}
	b := c.AsBody()
	if b == nil || !b.Active {
		return
	}
	minX, minY, maxX, maxY := g.cellRange(b.AABB())
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			k := cellKey{cx, cy}
			g.cells[k] = append(g.cells[k], c)
			g.entries++
		}
	}
}

// collect walks the cells covering bb in a fixed order and returns the
// deduplicated colliders that pass keep.
func (g *SpatialGrid) collect(bb cp.BB, keep func(Collider) bool) []Collider {
	clear(g.seen)
	var out []Collider
	minX, minY, maxX, maxY := g.cellRange(bb)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, c := range g.cells[cellKey{cx, cy}] {
				id := c.AsBody().ID
				if _, dup := g.seen[id]; dup {
					continue
				}
				g.seen[id] = struct{}{}
				if keep == nil || keep(c) {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// QueryNear returns every collider sharing a bucket with c, excluding c.
func (g *SpatialGrid) QueryNear(c Collider) []Collider {
	if g == nil || c == nil {
		return nil
	}
	self := c.AsBody()
	return g.collect(self.AABB(), func(o Collider) bool {
		return o.AsBody().ID != self.ID
	})
}

// QueryArea returns colliders whose boxes intersect the rectangle with
// top-left corner (x, y).
func (g *SpatialGrid) QueryArea(x, y, w, h float64) []Collider {
	if g == nil {
		return nil
	}
	area := cp.BB{L: x, B: y, R: x + w, T: y + h}
	return g.collect(area, func(o Collider) bool {
		return o.AsBody().AABB().Intersects(area)
	})
}

// QueryPoint returns the colliders bucketed in the cell containing (x, y).
func (g *SpatialGrid) QueryPoint(x, y float64) []Collider {
	if g == nil {
		return nil
	}
	return g.cells[cellKey{g.cellOf(x), g.cellOf(y)}]
}

// Stats reports bucket occupancy.
func (g *SpatialGrid) Stats() GridStats {
	if g == nil {
		return GridStats{}
	}
	s := GridStats{Cells: len(g.cells), Entries: g.entries}
	if s.Cells > 0 {
		s.AveragePerCell = float64(s.Entries) / float64(s.Cells)
	}
	return s
}
