package reveal

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is an axis-aligned box in document coordinates.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) right() float64  { return r.X + r.Width }
func (r Rect) bottom() float64 { return r.Y + r.Height }
func (r Rect) area() float64   { return r.Width * r.Height }

// Viewport is the visible window onto the document.
type Viewport struct {
	ScrollX float64
	ScrollY float64
	Width   float64
	Height  float64
}

// Root returns the viewport as a rect in document coordinates.
func (v Viewport) Root() Rect {
	return Rect{X: v.ScrollX, Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// Length is a single root margin value, either pixels or a percentage of
// the root's size along the relevant axis.
type Length struct {
	Value   float64
	Percent bool
}

func (l Length) resolve(size float64) float64 {
	if l.Percent {
		return size * l.Value / 100
	}
	return l.Value
}

// Margin grows (positive) or shrinks (negative) the root before
// intersections are computed.
type Margin struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// ParseMargin parses a CSS-style margin shorthand with one to four values,
// e.g. "0px 0px -100px 0px" or "10%".
func ParseMargin(s string) (Margin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Margin{}, nil
	}
	if len(fields) > 4 {
		return Margin{}, fmt.Errorf("root margin %q: too many values", s)
	}

	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return Margin{}, fmt.Errorf("root margin %q: %w", s, err)
		}
		vals[i] = l
	}

	switch len(vals) {
	case 1:
		return Margin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return Margin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return Margin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return Margin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

func parseLength(s string) (Length, error) {
	var l Length
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "%"):
		num = strings.TrimSuffix(s, "%")
		l.Percent = true
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	l.Value = v
	return l, nil
}

// Apply returns root adjusted by the margin.
func (m Margin) Apply(root Rect) Rect {
	top := m.Top.resolve(root.Height)
	bottom := m.Bottom.resolve(root.Height)
	left := m.Left.resolve(root.Width)
	right := m.Right.resolve(root.Width)

	out := Rect{
		X:      root.X - left,
		Y:      root.Y - top,
		Width:  root.Width + left + right,
		Height: root.Height + top + bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// IntersectionRatio reports the fraction of target's area that lies inside
// root. A zero-area target counts as fully visible when it sits inside the
// root, matching how browsers treat empty elements.
func IntersectionRatio(target, root Rect) float64 {
	if target.area() == 0 {
		if target.X >= root.X && target.right() <= root.right() &&
			target.Y >= root.Y && target.bottom() <= root.bottom() &&
			root.area() > 0 {
			return 1
		}
		return 0
	}

	w := math.Min(target.right(), root.right()) - math.Max(target.X, root.X)
	h := math.Min(target.bottom(), root.bottom()) - math.Max(target.Y, root.Y)
	if w <= 0 || h <= 0 {
		return 0
	}
	ratio := (w * h) / target.area()
	if ratio > 1 {
		return 1
	}
	return ratio
}
