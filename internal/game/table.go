package game

// Rect is an axis-aligned rectangle given by its corner and size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the playable cloth. X2/Y2 are the far rails.
type Bounds struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (b Bounds) Width() float64  { return b.X2 - b.X }
func (b Bounds) Height() float64 { return b.Y2 - b.Y }

// Table holds the static geometry every contact test runs against.
// It is never mutated after InitTable.
type Table struct {
	Outer Rect   `json:"outer"`
	Inner Bounds `json:"inner"`
}

// InitTable creates the standard table: a decorative outer frame and the
// playable rectangle inset by RailInset on every side.
func InitTable() *Table {
	outer := Rect{X: OuterX, Y: OuterY, Width: OuterWidth, Height: OuterHeight}
	inner := Bounds{
		X:  outer.X + RailInset,
		Y:  outer.Y + RailInset,
		X2: outer.X + outer.Width - RailInset,
		Y2: outer.Y + outer.Height - RailInset,
	}
	return &Table{Outer: outer, Inner: inner}
}

// Middle returns the centre of the playable rectangle.
func (t *Table) Middle() Vec2 {
	return NewVec2(t.Inner.X+t.Inner.Width()/2, t.Inner.Y+t.Inner.Height()/2)
}

// Contains reports whether a ball of radius r centred at p lies fully on the
// cloth, allowing eps of floating-point slack.
func (t *Table) Contains(p Vec2, r, eps float64) bool {
	return p.X-r >= t.Inner.X-eps && p.X+r <= t.Inner.X2+eps &&
		p.Y-r >= t.Inner.Y-eps && p.Y+r <= t.Inner.Y2+eps
}

// RailDistance returns the distance from p to the nearest rail.
func (t *Table) RailDistance(p Vec2) float64 {
	d := p.X - t.Inner.X
	if v := t.Inner.X2 - p.X; v < d {
		d = v
	}
	if v := p.Y - t.Inner.Y; v < d {
		d = v
	}
	if v := t.Inner.Y2 - p.Y; v < d {
		d = v
	}
	return d
}
