package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func circleBody(id Entity, x, y, r float64, layer component.Layer) *component.Body {
	return &component.Body{
		ID:     id,
		Pos:    cp.Vector{X: x, Y: y},
		Shape:  component.Circle(r),
		Layer:  layer,
		Active: true,
	}
}

func rectBody(id Entity, x, y, w, h float64, layer component.Layer) *component.Body {
	return &component.Body{
		ID:     id,
		Pos:    cp.Vector{X: x, Y: y},
		Shape:  component.Rect(w, h),
		Layer:  layer,
		Active: true,
	}
}

func ids(cs []Collider) []Entity {
	out := make([]Entity, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.AsBody().ID)
	}
	return out
}

func TestSpatialGridInsertSpansCells(t *testing.T) {
	g := NewSpatialGrid(64)
	// Straddles the corner shared by four cells.
	g.Insert(circleBody(1, 64, 64, 10, component.LayerEnemy))

	stats := g.Stats()
	assert.Equal(t, 4, stats.Cells)
	assert.Equal(t, 4, stats.Entries)
	assert.InDelta(t, 1.0, stats.AveragePerCell, 1e-9)
}

func TestSpatialGridSkipsInactive(t *testing.T) {
	g := NewSpatialGrid(64)
	b := circleBody(1, 10, 10, 5, component.LayerEnemy)
	b.Active = false
	g.Insert(b)
	assert.Equal(t, 0, g.Stats().Entries)
}

func TestSpatialGridQueryNear(t *testing.T) {
	g := NewSpatialGrid(64)
	a := circleBody(1, 64, 64, 10, component.LayerEnemy)
	b := circleBody(2, 70, 70, 10, component.LayerPlayer)
	far := circleBody(3, 600, 600, 10, component.LayerEnemy)
	for _, c := range []Collider{a, b, far} {
		g.Insert(c)
	}

	near := g.QueryNear(a)
	require.Len(t, near, 1, "b shares four cells with a but must appear once")
	assert.Equal(t, Entity(2), near[0].AsBody().ID)
	assert.Empty(t, g.QueryNear(far))
}

func TestSpatialGridQueryArea(t *testing.T) {
	g := NewSpatialGrid(64)
	g.Insert(circleBody(1, 50, 50, 10, component.LayerEnemy))
	g.Insert(circleBody(2, 120, 50, 10, component.LayerEnemy))
	g.Insert(rectBody(3, 300, 300, 40, 40, component.LayerEnemy))

	cases := []struct {
		name       string
		x, y, w, h float64
		want       []Entity
	}{
		{"covers first only", 0, 0, 80, 80, []Entity{1}},
		// Same bucket as 2, but the exact box check rejects it.
		{"bucket superset filtered", 70, 0, 30, 30, nil},
		{"covers both circles", 0, 0, 200, 100, []Entity{1, 2}},
		{"rect edge", 319, 319, 10, 10, []Entity{3}},
		{"empty space", 600, 600, 10, 10, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(g.QueryArea(tc.x, tc.y, tc.w, tc.h))
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, tc.want, got)
		})
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(32)
	g.Insert(circleBody(1, 10, 10, 5, component.LayerEnemy))
	g.Clear()
	assert.Equal(t, GridStats{}, g.Stats())
	assert.Empty(t, g.QueryPoint(10, 10))
}

func TestSpatialGridNegativeCoordinates(t *testing.T) {
	g := NewSpatialGrid(64)
	g.Insert(circleBody(1, -10, -10, 5, component.LayerEnemy))
	got := g.QueryPoint(-1, -1)
	require.Len(t, got, 1)
	assert.Empty(t, g.QueryPoint(1, 1))
}
