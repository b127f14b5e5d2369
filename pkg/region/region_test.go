package region

import "testing"

// unitSquare is the 10x10 test region used across the suite.
func unitSquare(t *testing.T) *Region {
	t.Helper()
	r, err := NewRegion([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}
	return r
}

func TestNewRegion_Validation(t *testing.T) {
	tests := []struct {
		name    string
		points  []Point
		wantErr bool
	}{
		{
			name:    "square",
			points:  []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
			wantErr: false,
		},
		{
			name:    "triangle",
			points:  []Point{{0, 0}, {10, 0}, {5, 10}},
			wantErr: false,
		},
		{
			name:    "too few points",
			points:  []Point{{0, 0}, {10, 10}},
			wantErr: true,
		},
		{
			name:    "empty",
			points:  nil,
			wantErr: true,
		},
		{
			name:    "collinear",
			points:  []Point{{0, 0}, {5, 5}, {10, 10}},
			wantErr: true,
		},
		{
			name:    "repeated point",
			points:  []Point{{1, 1}, {1, 1}, {1, 1}},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegion(tc.points)
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegion_Contains(t *testing.T) {
	r := unitSquare(t)

	tests := []struct {
		name   string
		p      Point
		inside bool
	}{
		{name: "center", p: Point{5, 5}, inside: true},
		{name: "outside right", p: Point{15, 5}, inside: false},
		{name: "outside above", p: Point{5, -1}, inside: false},
		{name: "on edge", p: Point{10, 5}, inside: true},
		{name: "on vertex", p: Point{0, 0}, inside: true},
		{name: "just inside", p: Point{9.999, 9.999}, inside: true},
		{name: "just outside", p: Point{10.001, 5}, inside: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.inside {
				t.Errorf("Contains(%v): got %v, want %v", tc.p, got, tc.inside)
			}
		})
	}
}

func TestRegion_ContainsDeterministic(t *testing.T) {
	r := unitSquare(t)
	p := Point{10, 5} // boundary point
	first := r.Contains(p)
	for i := 0; i < 100; i++ {
		if r.Contains(p) != first {
			t.Fatalf("Contains(%v) changed answer on call %d", p, i)
		}
	}
}

func TestRegion_ContainsConcavePolygon(t *testing.T) {
	// L-shape: the notch at the top right is outside.
	r, err := NewRegion([]Point{{0, 0}, {10, 0}, {10, 5}, {5, 5}, {5, 10}, {0, 10}})
	if err != nil {
		t.Fatalf("NewRegion: %v", err)
	}

	if !r.Contains(Point{2, 8}) {
		t.Errorf("point in the vertical arm should be inside")
	}
	if r.Contains(Point{8, 8}) {
		t.Errorf("point in the notch should be outside")
	}
}

func TestRegion_PointsIsCopy(t *testing.T) {
	r := unitSquare(t)
	pts := r.Points()
	pts[0] = Point{999, 999}
	if !r.Contains(Point{5, 5}) {
		t.Errorf("mutating Points() result changed the region")
	}
}
