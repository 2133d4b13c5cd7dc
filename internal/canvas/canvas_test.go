package canvas

import (
	"image"
	"testing"
)

func TestViewport_ToCanvas(t *testing.T) {
	tests := []struct {
		name   string
		vp     Viewport
		x, y   float64
		wx, wy float64
	}{
		{"native", Identity(1080, 1080), 540, 100, 540, 100},
		{"half size display", Viewport{540, 540, 1080, 1080}, 100, 200, 200, 400},
		{"non square", Viewport{400, 300, 800, 900}, 200, 150, 400, 450},
		{"unknown display", Viewport{0, 0, 1080, 1080}, 12, 34, 12, 34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.vp.ToCanvas(tt.x, tt.y)
			if p.X != tt.wx || p.Y != tt.wy {
				t.Errorf("ToCanvas(%v, %v) = %v, want (%v, %v)", tt.x, tt.y, p, tt.wx, tt.wy)
			}
		})
	}
}

func TestViewport_Resize(t *testing.T) {
	vp := Identity(1080, 1080)
	vp.Resize(720, 720)
	p := vp.ToCanvas(360, 720)
	if p.X != 540 || p.Y != 1080 {
		t.Errorf("after resize got %v", p)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff8000")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if c != (RGB{255, 128, 0}) {
		t.Errorf("got %v", c)
	}
	if c.Hex() != "#ff8000" {
		t.Errorf("round trip hex = %s", c.Hex())
	}

	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Error("expected error for bad colour")
	}
}

func TestRGB_RGBA(t *testing.T) {
	r, g, b, a := RGB{255, 0, 128}.RGBA()
	if r != 0xffff || g != 0 || b != 0x8080 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}

func TestRecorder_TranslateScope(t *testing.T) {
	r := NewRecorder()

	r.Save()
	r.Translate(10, 20)
	r.FillCircle(0, 0, 5, Red)
	r.Save()
	r.Translate(1, 1)
	r.FillCircle(0, 0, 1, Blue)
	r.Restore()
	r.Restore()
	r.FillCircle(3, 3, 2, Black)

	if !r.Balanced() {
		t.Fatal("save/restore not balanced")
	}
	if len(r.Circles) != 3 {
		t.Fatalf("expected 3 circles, got %d", len(r.Circles))
	}
	want := [][2]float64{{10, 20}, {11, 21}, {3, 3}}
	for i, w := range want {
		c := r.Circles[i].Center
		if c.X != w[0] || c.Y != w[1] {
			t.Errorf("circle %d at %v, want %v", i, c, w)
		}
	}
}

func TestRecorder_Paths(t *testing.T) {
	r := NewRecorder()
	r.BeginPath()
	r.MoveTo(0, 0)
	r.QuadTo(5, 5, 10, 0)
	r.LineTo(20, 0)
	r.Stroke(Blue, 4)

	if len(r.Paths) != 1 {
		t.Fatalf("expected 1 path, got %d", len(r.Paths))
	}
	p := r.Paths[0]
	if p.Quads != 1 || len(p.Ends) != 3 || len(p.Points) != 4 {
		t.Errorf("unexpected path shape: %+v", p)
	}
	if p.Width != 4 || p.Color != Blue {
		t.Errorf("stroke style lost: %+v", p)
	}
}

func TestDrawImage(t *testing.T) {
	r := NewRecorder()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if !DrawImage(r, img, 10, 10) {
		t.Error("recorder should accept images")
	}
	if DrawImage(r, nil, 10, 10) {
		t.Error("nil image should be skipped")
	}
	if r.Images != 1 {
		t.Errorf("expected 1 image, got %d", r.Images)
	}
}

func TestEventKind_String(t *testing.T) {
	if Press.String() != "press" || Move.String() != "move" || Release.String() != "release" {
		t.Error("unexpected event names")
	}
}
