package qrlabel

import (
	"encoding/json"
	"testing"
)

func TestLengthUnmarshalJSON(t *testing.T) {
	var l Length
	if err := json.Unmarshal([]byte(`120`), &l); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if l != "120" {
		t.Fatalf("expected 120, got %q", l)
	}

	if err := json.Unmarshal([]byte(`"30vw"`), &l); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if l != "30vw" {
		t.Fatalf("expected 30vw, got %q", l)
	}
}

func TestPointUnmarshalJSON(t *testing.T) {
	var p Point
	if err := json.Unmarshal([]byte(`[150, "5vh"]`), &p); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if p.X != "150" || p.Y != "5vh" {
		t.Fatalf("unexpected point %+v", p)
	}

	if err := json.Unmarshal([]byte(`{"x": "10vw", "y": 40}`), &p); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if p.X != "10vw" || p.Y != "40" {
		t.Fatalf("unexpected point %+v", p)
	}

	if err := json.Unmarshal([]byte(`[1, 2, 3]`), &p); err == nil {
		t.Fatalf("expected error for 3-element position")
	}
}

func TestMarginUnmarshalJSON(t *testing.T) {
	var m Margin
	if err := json.Unmarshal([]byte(`[2, 4]`), &m); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if len(m) != 2 || m[0] != "2" || m[1] != "4" {
		t.Fatalf("unexpected margin %v", m)
	}

	if err := json.Unmarshal([]byte(`"0.5rem"`), &m); err != nil {
		t.Fatalf("unmarshal scalar: %v", err)
	}
	if len(m) != 1 || m[0] != "0.5rem" {
		t.Fatalf("unexpected margin %v", m)
	}
}

func TestBorderSpecUnmarshalJSON(t *testing.T) {
	var b BorderSpec
	if err := json.Unmarshal([]byte(`true`), &b); err != nil {
		t.Fatalf("unmarshal bool: %v", err)
	}
	if b.Color != "black" || b.Width != "0.2rem" {
		t.Fatalf("expected default border, got %+v", b)
	}

	if err := json.Unmarshal([]byte(`["red", "2"]`), &b); err != nil {
		t.Fatalf("unmarshal tuple: %v", err)
	}
	if b.Color != "red" || b.Width != "2" {
		t.Fatalf("unexpected border %+v", b)
	}

	if err := json.Unmarshal([]byte(`{"color": "blue", "width": "0.1rem"}`), &b); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if b.Color != "blue" || b.Width != "0.1rem" {
		t.Fatalf("unexpected border %+v", b)
	}
}
