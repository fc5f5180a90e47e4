package dbf

import (
	"strings"
	"testing"
)

func parseTestSchema(t *testing.T, image []byte) (*Schema, Header) {
	t.Helper()
	h, err := DecodeHeader(image)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	s, err := ParseSchema(image, h)
	if err != nil {
		t.Fatalf("ParseSchema failed: %v", err)
	}
	return s, h
}

func TestParseSchema(t *testing.T) {
	image := buildDBF(t, trendFields)
	s, h := parseTestSchema(t, image)

	if len(s.Fields) != 2 {
		t.Fatalf("got %d fields, want 2", len(s.Fields))
	}
	if len(s.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", s.Warnings)
	}

	name := s.Fields[0]
	if name.Name != "NAME" || name.Type != 'C' || name.Length != 10 || name.Offset != 1 {
		t.Errorf("field 0 = %+v, want NAME/C/10 at offset 1", name)
	}
	if name.Kind() != KindText {
		t.Errorf("field 0 kind = %v, want text", name.Kind())
	}

	val := s.Fields[1]
	if val.Name != "VAL" || val.Type != 'N' || val.Length != 8 || val.DecimalCount != 2 || val.Offset != 11 {
		t.Errorf("field 1 = %+v, want VAL/N/8.2 at offset 11", val)
	}
	if val.Kind() != KindDecimal {
		t.Errorf("field 1 kind = %v, want decimal", val.Kind())
	}

	if got := s.RecordLen(); got != int(h.RecordLen) {
		t.Errorf("RecordLen() = %d, header declares %d", got, h.RecordLen)
	}
	if s.Index("VAL") != 1 || s.Index("MISSING") != -1 {
		t.Errorf("Index lookups wrong: VAL=%d MISSING=%d", s.Index("VAL"), s.Index("MISSING"))
	}
}

func TestParseSchemaNumericKinds(t *testing.T) {
	image := buildDBF(t, []fieldSpec{
		{name: "WHOLE", typeCode: 'N', length: 6},
		{name: "FRAC", typeCode: 'N', length: 8, decimals: 3},
		{name: "FLT", typeCode: 'F', length: 10, decimals: 4},
	})
	s, _ := parseTestSchema(t, image)

	wants := []Kind{KindInteger, KindDecimal, KindDecimal}
	for i, want := range wants {
		if got := s.Fields[i].Kind(); got != want {
			t.Errorf("field %d kind = %v, want %v", i, got, want)
		}
	}
}

func TestParseSchemaHeaderLengthMismatch(t *testing.T) {
	image := buildDBF(t, trendFields)
	// Declare one byte more than the terminator position implies.
	image[8]++

	s, _ := parseTestSchema(t, image)
	if len(s.Fields) != 2 {
		t.Fatalf("got %d fields, want 2 (terminator is authoritative)", len(s.Fields))
	}
	if len(s.Warnings) != 1 || !strings.Contains(s.Warnings[0].Message, "header length mismatch") {
		t.Errorf("warnings = %v, want one header length mismatch", s.Warnings)
	}
}

func TestParseSchemaMissingTerminator(t *testing.T) {
	image := buildDBF(t, trendFields)
	// Overwrite the terminator; the declared header length then bounds the scan.
	image[HeaderSize+2*DescriptorSize] = 0x00

	h, err := DecodeHeader(image)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	s, err := ParseSchema(image, h)
	if err != nil {
		t.Fatalf("ParseSchema failed: %v", err)
	}
	if len(s.Warnings) == 0 {
		t.Error("expected a header length mismatch warning without terminator")
	}
}

func TestParseSchemaUnsupportedType(t *testing.T) {
	image := buildDBF(t, []fieldSpec{
		{name: "NOTES", typeCode: 'M', length: 10},
		{name: "VAL", typeCode: 'N', length: 8},
	})
	s, _ := parseTestSchema(t, image)

	if got := s.Fields[0].Kind(); got != KindUnsupported {
		t.Errorf("memo field kind = %v, want unsupported", got)
	}
	found := false
	for _, w := range s.Warnings {
		if strings.Contains(w.Message, "unsupported type code") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want unsupported type code note", s.Warnings)
	}
}

func TestParseSchemaRecordLenDisagreement(t *testing.T) {
	image := buildDBF(t, trendFields)
	image[10]++ // bump declared record length

	s, _ := parseTestSchema(t, image)
	found := false
	for _, w := range s.Warnings {
		if strings.Contains(w.Message, "field lengths sum") {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want record length disagreement", s.Warnings)
	}
}
