package models

import (
	"encoding/json"
	"testing"

	"kachel/internal/apperr"
	"kachel/internal/tile"
)

// TestResolveDefaults verifies that an empty document resolves to the
// built-in layout.
func TestResolveDefaults(t *testing.T) {
	var p LayoutParams
	if got, want := p.Resolve(), tile.DefaultLayout(); got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

// TestResolvePartial verifies that only the supplied fields override the
// defaults, including nested ones.
func TestResolvePartial(t *testing.T) {
	p, err := ParseLayoutParams([]byte(`{"corner_radius_px": 10, "icon": {"scale": 0.3}, "text": {"align": "center"}}`))
	if err != nil {
		t.Fatalf("ParseLayoutParams: %v", err)
	}
	got := p.Resolve()

	want := tile.DefaultLayout()
	want.CornerRadius = 10
	want.Icon.Scale = 0.3
	want.Text.Align = tile.AlignCenter
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

// TestDefaultLayoutParamsRoundTrip verifies that the seeded document
// describes exactly the built-in layout after a trip through JSON.
func TestDefaultLayoutParamsRoundTrip(t *testing.T) {
	data, err := json.Marshal(DefaultLayoutParams())
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParseLayoutParams(data)
	if err != nil {
		t.Fatalf("ParseLayoutParams(%s): %v", data, err)
	}
	if got, want := p.Resolve(), tile.DefaultLayout(); got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
	if p.Name == nil || *p.Name != DefaultPresetName {
		t.Errorf("name = %v, want %q", p.Name, DefaultPresetName)
	}
}

// TestValidate covers the accepted and rejected ranges of every checked
// field.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		wantErr bool
	}{
		{name: "empty", json: `{}`},
		{name: "zero radius", json: `{"corner_radius_px": 0}`},
		{name: "negative radius", json: `{"corner_radius_px": -1}`, wantErr: true},
		{name: "scale max", json: `{"icon": {"scale": 4}}`},
		{name: "scale zero", json: `{"icon": {"scale": 0}}`, wantErr: true},
		{name: "scale too large", json: `{"icon": {"scale": 4.5}}`, wantErr: true},
		{name: "icon without scale", json: `{"icon": {"x": 10}}`},
		{name: "font size 1", json: `{"text": {"font_size": 1}}`},
		{name: "font size zero", json: `{"text": {"font_size": 0}}`, wantErr: true},
		{name: "font size too large", json: `{"text": {"font_size": 401}}`, wantErr: true},
		{name: "bold", json: `{"text": {"font_weight": "bold"}}`},
		{name: "unknown weight", json: `{"text": {"font_weight": "heavy"}}`, wantErr: true},
		{name: "right", json: `{"text": {"align": "right"}}`},
		{name: "unknown align", json: `{"text": {"align": "justify"}}`, wantErr: true},
		{name: "malformed", json: `{"corner_radius_px": "ten"}`, wantErr: true},
		{name: "not an object", json: `[1,2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayoutParams([]byte(tt.json))
			if tt.wantErr {
				if !apperr.Is(err, apperr.InvalidLayout) {
					t.Errorf("ParseLayoutParams(%s) = %v, want InvalidLayout", tt.json, err)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseLayoutParams(%s): unexpected error %v", tt.json, err)
			}
		})
	}
}

// TestMarshalOmitsAbsentFields verifies that unset fields stay unset when
// a document is stored and read back.
func TestMarshalOmitsAbsentFields(t *testing.T) {
	radius := 12
	data, err := json.Marshal(LayoutParams{CornerRadiusPx: &radius})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"corner_radius_px":12}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestIsEmpty(t *testing.T) {
	if !(LayoutParams{}).IsEmpty() {
		t.Error("zero value should be empty")
	}
	if DefaultLayoutParams().IsEmpty() {
		t.Error("default params should not be empty")
	}
	p, err := ParseLayoutParams([]byte(`{"text": {}}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.IsEmpty() {
		t.Error("a present but empty text object is not empty")
	}
}
