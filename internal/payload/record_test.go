package payload

import (
	"errors"
	"testing"
)

func TestDecode_KeepsNumbersAndRejectsNonObjects(t *testing.T) {
	rec, err := Decode([]byte(`{"id":"42","channel_id":0,"big":9007199254740993}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	id, err := rec.ID("id")
	if err != nil || id != 42 {
		t.Fatalf("expected id 42, got %d (%v)", id, err)
	}
	big, err := rec.Int("big")
	if err != nil || big != 9007199254740993 {
		t.Fatalf("expected exact big int, got %d (%v)", big, err)
	}

	if _, err := Decode([]byte(`null`)); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for null document, got %v", err)
	}
	if _, err := Decode([]byte(`[1,2]`)); err == nil {
		t.Fatalf("expected error for array document")
	}
}

func TestRecordAccessors_MissingVersusShape(t *testing.T) {
	rec := Record{
		"name":       "general",
		"nullable":   nil,
		"dimensions": nil,
		"owner":      float64(12),
		"flag":       "1",
		"list":       []any{"a"},
	}

	if _, err := rec.String("absent"); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if s, err := rec.String("nullable"); err != nil || s != "" {
		t.Fatalf("expected null string to be empty, got %q (%v)", s, err)
	}
	if _, err := rec.Object("dimensions"); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for null object, got %v", err)
	}
	if _, err := rec.Object("owner"); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for scalar reference, got %v", err)
	}
	if _, err := rec.Int("name"); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for non numeric int, got %v", err)
	}
	if b, err := rec.Bool("flag"); err != nil || !b {
		t.Fatalf("expected \"1\" to be true, got %v (%v)", b, err)
	}
	if a, err := rec.Array("list"); err != nil || len(a) != 1 {
		t.Fatalf("expected list of 1, got %v (%v)", a, err)
	}
	if _, err := rec.ID("nullable"); !errors.Is(err, ErrShape) {
		t.Fatalf("expected null id to be ErrShape, got %v", err)
	}

	var fe *FieldError
	_, err := rec.String("absent")
	if !errors.As(err, &fe) || fe.Field != "absent" {
		t.Fatalf("expected FieldError naming field, got %v", err)
	}
	if !IsIncomplete(err) {
		t.Fatalf("expected IsIncomplete for missing field")
	}
	if IsIncomplete(errors.New("boom")) {
		t.Fatalf("unexpected IsIncomplete for generic error")
	}
}

func TestRefID(t *testing.T) {
	cases := []struct {
		in   any
		want int64
		ok   bool
	}{
		{in: Record{"id": "7"}, want: 7, ok: true},
		{in: map[string]any{"id": float64(8)}, want: 8, ok: true},
		{in: "9", want: 9, ok: true},
		{in: nil, ok: false},
		{in: Record{"name": "x"}, ok: false},
	}
	for i, c := range cases {
		got, ok := RefID(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("case %d: expected %d,%v got %d,%v", i, c.want, c.ok, got, ok)
		}
	}
}
