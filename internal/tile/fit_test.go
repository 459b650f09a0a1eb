package tile

import (
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

func testFace(t *testing.T, size float64) font.Face {
	t.Helper()
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		t.Fatalf("parse gofont: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		t.Fatalf("new face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func TestFitTextUnchangedWhenFitting(t *testing.T) {
	face := testFace(t, 48)
	for _, text := range []string{"Hello", "A", "Kachel"} {
		width := TextWidth(face, text)
		if got := FitText(face, text, width); got != text {
			t.Errorf("FitText(%q, %d) = %q, want unchanged", text, width, got)
		}
		if got := FitText(face, text, 1000); got != text {
			t.Errorf("FitText(%q, 1000) = %q, want unchanged", text, got)
		}
	}
}

func TestFitTextTruncates(t *testing.T) {
	face := testFace(t, 48)
	text := "Enterprise Resource Planning"
	maxWidth := Size - 60 - TextMarginRight

	got := FitText(face, text, maxWidth)
	if got == text {
		t.Fatalf("expected %q to be truncated at %dpx", text, maxWidth)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("truncated text %q should end with an ellipsis", got)
	}
	prefix := strings.TrimSuffix(got, Ellipsis)
	if prefix == "" || !strings.HasPrefix(text, prefix) {
		t.Errorf("truncated text %q should keep a prefix of %q", got, text)
	}
	if w := TextWidth(face, got); w > maxWidth {
		t.Errorf("truncated width %d exceeds %d", w, maxWidth)
	}

	// One more rune would not have fitted.
	longer := []rune(text)[:len([]rune(prefix))+1]
	if TextWidth(face, string(longer)+Ellipsis) <= maxWidth {
		t.Errorf("prefix %q is not the longest that fits", prefix)
	}
}

func TestFitTextIdempotent(t *testing.T) {
	face := testFace(t, 48)
	tests := []struct {
		text     string
		maxWidth int
	}{
		{"Enterprise Resource Planning", 350},
		{"Überweisungen und Daueraufträge", 200},
		{"Hello", 5},
		{"Hello", 350},
	}
	for _, tt := range tests {
		once := FitText(face, tt.text, tt.maxWidth)
		twice := FitText(face, once, tt.maxWidth)
		if once != twice {
			t.Errorf("FitText not idempotent for %q at %d: %q then %q", tt.text, tt.maxWidth, once, twice)
		}
	}
}

func TestFitTextEllipsisOnly(t *testing.T) {
	face := testFace(t, 48)
	if got := FitText(face, "Hello", 1); got != Ellipsis {
		t.Errorf("got %q, want ellipsis alone", got)
	}
	if got := FitText(face, "Hello", -20); got != Ellipsis {
		t.Errorf("negative width: got %q, want ellipsis alone", got)
	}
}

func TestFitTextEmpty(t *testing.T) {
	face := testFace(t, 48)
	if got := FitText(face, "", 10); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestFitTextBasicFace(t *testing.T) {
	// The fixed-width fallback face is 7px per glyph.
	got := FitText(basicfont.Face7x13, "abcdefghij", 35)
	if TextWidth(basicfont.Face7x13, got) > 35 {
		t.Errorf("%q does not fit in 35px", got)
	}
	if !strings.HasSuffix(got, Ellipsis) {
		t.Errorf("%q should end with an ellipsis", got)
	}
}

func TestFitTextLongCaption(t *testing.T) {
	face := testFace(t, 48)
	maxWidth := Size - 60 - TextMarginRight
	text := strings.Repeat("Kachel ", 1000)

	got := FitText(face, text, maxWidth)
	if !strings.HasSuffix(got, Ellipsis) {
		t.Fatalf("result %q should end with an ellipsis", got)
	}
	prefix := strings.TrimSuffix(got, Ellipsis)
	if !strings.HasPrefix(text, prefix) {
		t.Errorf("result %q is not a prefix of the input", got)
	}
	if w := TextWidth(face, got); w > maxWidth {
		t.Errorf("width %d exceeds %d", w, maxWidth)
	}
	longer := []rune(text)[:len([]rune(prefix))+1]
	if TextWidth(face, string(longer)+Ellipsis) <= maxWidth {
		t.Errorf("prefix %q is not the longest that fits", prefix)
	}
}

func TestFitTextNothingFits(t *testing.T) {
	face := testFace(t, 48)
	if got := FitText(face, "Wide", 1); got != Ellipsis {
		t.Errorf("FitText at 1px = %q, want %q", got, Ellipsis)
	}
}
