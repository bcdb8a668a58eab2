package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// CushionHeightRatio is the standard height of the cushion nose above the
// cloth, as a fraction of the ball diameter.
const CushionHeightRatio = 0.64

// Cushion is one rail segment in general line form lx·x + ly·y + l0 = 0,
// with (lx, ly) normalized. Normal points into the playing surface.
type Cushion struct {
	ID string

	Lx, Ly, L0 float64

	// Normal is the unit normal pointing away from the rail, toward the table
	Normal mgl64.Vec3

	// Height of the contact point above the cloth, used by the impact model
	Height float64
}

// NewCushion builds a cushion through the two endpoints, with the normal
// oriented toward interior (any point on the playing side of the line).
func NewCushion(id string, p1, p2, interior mgl64.Vec3, height float64) (Cushion, error) {
	dx, dy := p2.X()-p1.X(), p2.Y()-p1.Y()
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Cushion{}, fmt.Errorf("cushion %q: endpoints coincide", id)
	}

	lx, ly := -dy/length, dx/length
	l0 := -(lx*p1.X() + ly*p1.Y())

	if lx*interior.X()+ly*interior.Y()+l0 < 0 {
		lx, ly, l0 = -lx, -ly, -l0
	}

	return Cushion{
		ID:     id,
		Lx:     lx,
		Ly:     ly,
		L0:     l0,
		Normal: mgl64.Vec3{lx, ly, 0},
		Height: height,
	}, nil
}

// Distance returns the signed distance from a point to the cushion line,
// positive on the playing side.
func (c Cushion) Distance(p mgl64.Vec3) float64 {
	return c.Lx*p.X() + c.Ly*p.Y() + c.L0
}

// Table is the static playing geometry: a W×H surface bounded by named
// cushions. Immutable after construction.
type Table struct {
	W, H     float64
	Cushions []Cushion
}

// NewTable builds a rectangular table spanning [0,w]×[0,h] with four rails at
// the given cushion height. The rails are named by compass edge.
func NewTable(w, h, cushionHeight float64) (*Table, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("table: dimensions %gx%g must be positive", w, h)
	}

	center := mgl64.Vec3{w / 2, h / 2, 0}
	edges := []struct {
		id     string
		p1, p2 mgl64.Vec3
	}{
		{"south", mgl64.Vec3{0, 0, 0}, mgl64.Vec3{w, 0, 0}},
		{"east", mgl64.Vec3{w, 0, 0}, mgl64.Vec3{w, h, 0}},
		{"north", mgl64.Vec3{w, h, 0}, mgl64.Vec3{0, h, 0}},
		{"west", mgl64.Vec3{0, h, 0}, mgl64.Vec3{0, 0, 0}},
	}

	t := &Table{W: w, H: h}
	for _, e := range edges {
		c, err := NewCushion(e.id, e.p1, e.p2, center, cushionHeight)
		if err != nil {
			return nil, err
		}
		t.Cushions = append(t.Cushions, c)
	}
	return t, nil
}

// DefaultTable returns a 9-foot table sized for balls of radius r.
func DefaultTable(r float64) *Table {
	t, err := NewTable(0.9906, 1.9812, CushionHeightRatio*2*r)
	if err != nil {
		panic(err) // unreachable with fixed positive dimensions
	}
	return t
}

// Cushion looks a rail up by id.
func (t *Table) Cushion(id string) (Cushion, bool) {
	for _, c := range t.Cushions {
		if c.ID == id {
			return c, true
		}
	}
	return Cushion{}, false
}

// Contains reports whether a point lies on the playing surface.
func (t *Table) Contains(p mgl64.Vec3) bool {
	return p.X() >= 0 && p.X() <= t.W && p.Y() >= 0 && p.Y() <= t.H
}
