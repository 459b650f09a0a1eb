package tile

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"kachel/internal/apperr"
)

func composeOrFail(t *testing.T, spec Spec) *Result {
	t.Helper()
	res, err := NewCompositor(nil).Compose(spec)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	return res
}

// textBounds returns the bounding box of bright pixels inside region.
func textBounds(img *image.RGBA, region image.Rectangle) image.Rectangle {
	var b image.Rectangle
	first := true
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for x := region.Min.X; x < region.Max.X; x++ {
			if img.RGBAAt(x, y).R < 128 {
				continue
			}
			p := image.Rect(x, y, x+1, y+1)
			if first {
				b, first = p, false
			} else {
				b = b.Union(p)
			}
		}
	}
	return b
}

func TestComposeBackground(t *testing.T) {
	for _, radius := range []int{0, 30, 225} {
		layout := DefaultLayout()
		layout.CornerRadius = radius
		res := composeOrFail(t, Spec{Color: "#4ccd4f", Layout: layout})

		if b := res.Image.Bounds(); b.Dx() != Size || b.Dy() != Size {
			t.Fatalf("size: got %dx%d, want %dx%d", b.Dx(), b.Dy(), Size, Size)
		}
		want := color.RGBA{R: 0x4c, G: 0xcd, B: 0x4f, A: 255}
		if got := res.Image.RGBAAt(Size/2, Size/2); got != want {
			t.Errorf("radius %d: center %v, want %v", radius, got, want)
		}
		corner := res.Image.RGBAAt(0, 0)
		if radius > 0 && corner.A != 0 {
			t.Errorf("radius %d: corner alpha %d, want 0", radius, corner.A)
		}
		if radius == 0 && corner != want {
			t.Errorf("radius 0: corner %v, want %v", corner, want)
		}
		if res.Icon != nil || res.Caption != "" || res.Font != "" {
			t.Errorf("bare tile reported icon=%v caption=%q font=%q", res.Icon, res.Caption, res.Font)
		}
	}
}

func TestComposeInvalidColor(t *testing.T) {
	_, err := NewCompositor(nil).Compose(Spec{Color: "4ccd4f", Layout: DefaultLayout()})
	if !apperr.Is(err, apperr.InvalidColor) {
		t.Fatalf("got %v, want InvalidColor", err)
	}
}

func TestComposeIconPlacement(t *testing.T) {
	layout := DefaultLayout()
	layout.Icon = IconPlacement{X: 200.5, Y: 150, Scale: 0.2}
	spec := Spec{
		Color:  "#000000",
		Layout: layout,
		Icon: &IconSpec{
			Source:    IconSource{Data: solidPNG(t, 64, 64, color.NRGBA{R: 255, A: 255}), Format: FormatPNG},
			Placement: layout.Icon,
		},
	}
	res := composeOrFail(t, spec)
	if res.Icon == nil {
		t.Fatal("expected icon result")
	}

	size := IconPixelSize(0.2)
	if size != 90 {
		t.Fatalf("IconPixelSize(0.2) = %d, want 90", size)
	}
	origin := IconOrigin(200.5, 150, size)
	if origin != image.Pt(155, 105) {
		t.Fatalf("IconOrigin = %v, want (155,105)", origin)
	}

	isRed := func(x, y int) bool { return res.Image.RGBAAt(x, y).R > 200 }
	if !isRed(origin.X, origin.Y) || !isRed(origin.X+size-1, origin.Y+size-1) {
		t.Error("icon corners should be red")
	}
	if isRed(origin.X-1, 150) || isRed(origin.X+size, 150) {
		t.Error("icon bleeds horizontally")
	}
	if isRed(200, origin.Y-1) || isRed(200, origin.Y+size) {
		t.Error("icon bleeds vertically")
	}

	// The painted center is within one pixel of the requested point.
	center := float64(origin.X) + float64(size)/2
	if d := center - 200.5; d < -1 || d > 1 {
		t.Errorf("icon center x %.1f, want 200.5±1", center)
	}
}

func TestComposeIconRecolor(t *testing.T) {
	layout := DefaultLayout()
	layout.Icon.Color = "#e94a54"
	spec := Spec{
		Color:  "#000000",
		Layout: layout,
		Icon: &IconSpec{
			Source:    IconSource{Data: solidPNG(t, 32, 32, color.NRGBA{B: 255, A: 255}), Format: FormatPNG},
			Placement: layout.Icon,
		},
	}
	res := composeOrFail(t, spec)
	if !res.Icon.Recolored {
		t.Error("expected recolored icon")
	}
	got := res.Image.RGBAAt(300, 170)
	if got.R != 0xe9 || got.G != 0x4a || got.B != 0x54 {
		t.Errorf("icon center %v, want #e94a54", got)
	}
}

func TestComposeIconFailure(t *testing.T) {
	spec := Spec{
		Color:  "#000000",
		Layout: DefaultLayout(),
		Icon: &IconSpec{
			Source:    IconSource{Data: []byte("<svg"), Format: FormatSVG},
			Placement: DefaultLayout().Icon,
		},
	}
	_, err := NewCompositor(nil).Compose(spec)
	if !apperr.Is(err, apperr.RasterizationFailed) {
		t.Fatalf("got %v, want RasterizationFailed", err)
	}
}

func TestComposeCaption(t *testing.T) {
	res := composeOrFail(t, Spec{Color: "#000000", Text: "Hi", Layout: DefaultLayout()})
	if res.Caption != "Hi" {
		t.Errorf("caption %q, want Hi", res.Caption)
	}
	if res.Font != SourceBuiltin {
		t.Errorf("font source %q, want builtin", res.Font)
	}

	b := textBounds(res.Image, image.Rect(0, 340, Size, Size))
	if b.Empty() {
		t.Fatal("no caption pixels drawn")
	}
	if b.Min.X < 55 || b.Min.X > 70 {
		t.Errorf("caption starts at x=%d, want near 60", b.Min.X)
	}
	if b.Min.Y < 360 {
		t.Errorf("caption starts at y=%d, want at or below 360", b.Min.Y)
	}
}

func TestComposeCaptionTruncated(t *testing.T) {
	text := strings.Repeat("Wide ", 20)
	res := composeOrFail(t, Spec{Color: "#000000", Text: text, Layout: DefaultLayout()})
	if !strings.HasSuffix(res.Caption, Ellipsis) {
		t.Fatalf("caption %q should be truncated", res.Caption)
	}
	b := textBounds(res.Image, image.Rect(0, 340, Size, Size))
	if b.Max.X > Size-TextMarginRight+2 {
		t.Errorf("caption reaches x=%d, past the right margin", b.Max.X)
	}
}

func TestComposeCaptionAlignment(t *testing.T) {
	right := Size - TextMarginRight
	tests := []struct {
		align string
		check func(b image.Rectangle) bool
	}{
		{AlignLeft, func(b image.Rectangle) bool { return b.Min.X >= 55 && b.Min.X <= 70 }},
		{AlignRight, func(b image.Rectangle) bool { return b.Max.X <= right+2 && b.Max.X >= right-10 }},
		{AlignCenter, func(b image.Rectangle) bool {
			mid := (b.Min.X + b.Max.X) / 2
			want := (60 + right) / 2
			return mid >= want-8 && mid <= want+8
		}},
	}
	for _, tt := range tests {
		t.Run(tt.align, func(t *testing.T) {
			layout := DefaultLayout()
			layout.Text.Align = tt.align
			res := composeOrFail(t, Spec{Color: "#000000", Text: "HH", Layout: layout})
			b := textBounds(res.Image, image.Rect(0, 340, Size, Size))
			if b.Empty() || !tt.check(b) {
				t.Errorf("caption bounds %v not %s aligned", b, tt.align)
			}
		})
	}
}

func TestComposeDeterministic(t *testing.T) {
	spec := Spec{Color: "#9051e4", Text: "Kachel", Layout: DefaultLayout()}
	a := composeOrFail(t, spec)
	b := composeOrFail(t, spec)
	if string(a.Image.Pix) != string(b.Image.Pix) {
		t.Error("identical specs produced different pixels")
	}
}
