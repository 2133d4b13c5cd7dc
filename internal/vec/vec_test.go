package vec

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := New(1, 2)
	b := New(4, 6)

	if got := a.Add(b); got != New(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != New(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(3); got != New(3, 6) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist = %v, want 5", got)
	}
	if got := a.Mid(b); got != New(2.5, 4) {
		t.Errorf("Mid = %v", got)
	}
}

func TestVec2_Unit(t *testing.T) {
	u, ok := New(3, 4).Unit()
	if !ok {
		t.Fatal("expected direction for non-zero vector")
	}
	if math.Abs(u.Len()-1) > 1e-12 {
		t.Errorf("unit length = %v", u.Len())
	}

	u, ok = Vec2{}.Unit()
	if ok {
		t.Error("zero vector should have no direction")
	}
	if !u.IsFinite() {
		t.Errorf("zero vector unit should stay finite, got %v", u)
	}
}

func TestVec2_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want bool
	}{
		{"zero", Vec2{}, true},
		{"normal", New(1, -2), true},
		{"NaN", New(math.NaN(), 0), false},
		{"+Inf", New(0, math.Inf(1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVec2_Polar(t *testing.T) {
	p := New(10, 10).Polar(5, math.Pi/2)
	if math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-15) > 1e-9 {
		t.Errorf("Polar = %v, want (10, 15)", p)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		v, want float64
	}{
		{0, 1},
		{100, 3},
		{200, 5},
		{400, 9},
		{-100, -1},
	}
	for _, tt := range tests {
		if got := MapRange(tt.v, 0, 200, 1, 5); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MapRange(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}

	if got := MapRange(5, 3, 3, 7, 9); got != 7 {
		t.Errorf("degenerate range = %v, want 7", got)
	}
	if got := MapRange(255, 0, 255, 1, 12); got != 12 {
		t.Errorf("red channel max = %v, want 12", got)
	}
}

func TestQuadOut(t *testing.T) {
	if QuadOut(0) != 0 || QuadOut(1) != 1 {
		t.Errorf("QuadOut endpoints wrong: %v %v", QuadOut(0), QuadOut(1))
	}
	if got := QuadOut(0.5); got != 0.75 {
		t.Errorf("QuadOut(0.5) = %v, want 0.75", got)
	}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		v := QuadOut(float64(i) / 10)
		if v < prev {
			t.Fatalf("QuadOut not monotonic at %d", i)
		}
		prev = v
	}
}
