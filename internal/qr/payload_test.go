package qr

import (
	"errors"
	"testing"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
)

func TestPayloadRoundTrip(t *testing.T) {
	in := Payload{ID: "X1", LastName: "Cruz", BrgyName: "san-isidro"}

	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestPayloadOptionalCalamity(t *testing.T) {
	in := Payload{ID: "X2", LastName: "Reyes", BrgyName: "poblacion", CalamityName: "typhoon odette"}
	raw, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.CalamityName != "typhoon odette" {
		t.Fatalf("calamityName dropped in round trip: %+v", out)
	}
}

func TestPayloadRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{name: "missing_id", raw: `{"lastName":"Cruz","brgyName":"san-isidro"}`, field: "id"},
		{name: "missing_brgy", raw: `{"id":"X1","lastName":"Cruz"}`, field: "brgyName"},
		{name: "garbage", raw: `not json at all`, field: "payload"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.raw))
			if err == nil {
				t.Fatalf("Decode(%q): expected rejection", tc.raw)
			}
			ve, ok := types.AsValidationError(err)
			if !ok {
				t.Fatalf("Decode(%q): expected ValidationError, got %v", tc.raw, err)
			}
			if _, present := ve.Fields[tc.field]; !present {
				t.Fatalf("Decode(%q): expected error keyed by %q, got %v", tc.raw, tc.field, ve.Fields)
			}
		})
	}
}

func TestEncodeRejectsEmptyID(t *testing.T) {
	_, err := Encode(Payload{LastName: "Cruz", BrgyName: "san-isidro"})
	if err == nil {
		t.Fatalf("Encode: expected rejection for empty id")
	}
	var ve *types.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Encode: expected ValidationError, got %v", err)
	}
}

func TestRenderCardWithoutFont(t *testing.T) {
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	png, err := r.RenderCard(Payload{ID: "X1", LastName: "Cruz", BrgyName: "san-isidro"}, "Cruz")
	if err != nil {
		t.Fatalf("RenderCard: %v", err)
	}
	if len(png) == 0 {
		t.Fatalf("RenderCard: empty image")
	}
	// PNG magic header.
	if string(png[1:4]) != "PNG" {
		t.Fatalf("RenderCard: output is not a PNG")
	}
}
