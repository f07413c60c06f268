package curve

import (
	"math"
	"testing"
)

func TestLineReverse(t *testing.T) {
	l := NewLine([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1})
	l.Reverse()
	want := []Point{{X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}
	for i, p := range l.Points {
		if p != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], p)
		}
	}
}

func TestCompoundReverse(t *testing.T) {
	c := &Compound{}
	c.Add(NewLine([2]float64{0, 0}, [2]float64{1, 0}))
	c.Add(NewLine([2]float64{1, 0}, [2]float64{1, 1}))
	c.Reverse()

	if got := c.StartPoint(); got != (Point{X: 1, Y: 1}) {
		t.Errorf("expected reversed start (1 1), got %v", got)
	}
	if got := c.EndPoint(); got != (Point{X: 0, Y: 0}) {
		t.Errorf("expected reversed end (0 0), got %v", got)
	}
	// Member order must flip along with each member's vertex order.
	if c.Members[0].StartPoint() != (Point{X: 1, Y: 1}) {
		t.Errorf("member order not reversed: %v", c.Members[0].StartPoint())
	}
}

func TestCompoundIsClosed(t *testing.T) {
	tests := []struct {
		name     string
		members  []*Line
		expected bool
	}{
		{"Empty", nil, false},
		{"Open", []*Line{NewLine([2]float64{0, 0}, [2]float64{1, 0})}, false},
		{"Closed", []*Line{NewLine([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 0})}, true},
		{"Closed Within Tolerance", []*Line{NewLine([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{1e-15, -1e-15})}, true},
		{"Gap Above Tolerance", []*Line{NewLine([2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{1e-13, 0})}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Compound{Members: tt.members}
			if got := c.IsClosed(); got != tt.expected {
				t.Errorf("IsClosed(): expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCompoundArea(t *testing.T) {
	c := &Compound{}
	c.Add(NewLine([2]float64{0, 0}, [2]float64{1, 0}))
	c.Add(NewLine([2]float64{1, 0}, [2]float64{1, 1}))
	c.Add(NewLine([2]float64{1, 1}, [2]float64{0, 1}))
	c.Add(NewLine([2]float64{0, 1}, [2]float64{0, 0}))

	if got := c.Area(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected unit area, got %f", got)
	}

	// Orientation must not matter.
	c.Reverse()
	if got := c.Area(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected unit area after reversal, got %f", got)
	}
}

func TestLinearized(t *testing.T) {
	c := &Compound{}
	c.Add(NewLine([2]float64{0, 0}, [2]float64{1, 0}))
	c.Add(NewLine([2]float64{1, 0}, [2]float64{1, 1}))

	flat := c.Linearized()
	if len(flat.Members) != 1 {
		t.Fatalf("expected single member, got %d", len(flat.Members))
	}
	if len(flat.Members[0].Points) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(flat.Members[0].Points))
	}
}

func TestPolygonAddRing(t *testing.T) {
	closed := &Compound{Members: []*Line{NewLine(
		[2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 0},
	)}}
	open := &Compound{Members: []*Line{NewLine([2]float64{0, 0}, [2]float64{5, 5})}}

	p := &Polygon{}
	if err := p.AddRing(closed); err != nil {
		t.Errorf("expected closed ring accepted, got %v", err)
	}
	if err := p.AddRing(open); err == nil {
		t.Error("expected open ring rejected")
	}
	if err := p.AddRing(&Compound{}); err == nil {
		t.Error("expected empty ring rejected")
	}
	if len(p.Rings) != 1 {
		t.Errorf("expected 1 ring, got %d", len(p.Rings))
	}
}

func TestWKT(t *testing.T) {
	tests := []struct {
		name     string
		input    Curve
		expected string
	}{
		{"Nil", nil, "LINESTRING EMPTY"},
		{"Empty", &Line{}, "LINESTRING EMPTY"},
		{"Simple", NewLine([2]float64{0, 0}, [2]float64{1, 2}), "LINESTRING (0.0000000000 0.0000000000, 1.0000000000 2.0000000000)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WKT(tt.input); got != tt.expected {
				t.Errorf("WKT(): expected %q, got %q", tt.expected, got)
			}
		})
	}
}
