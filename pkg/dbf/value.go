package dbf

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the decoded type of a field value.
type Kind uint8

const (
	// KindText is a character field decoded through the configured encoding.
	KindText Kind = iota + 1
	// KindInteger is a numeric field with no decimal places.
	KindInteger
	// KindDecimal is a numeric or float field with decimal places.
	KindDecimal
	// KindDate is an 8-digit YYYYMMDD date field.
	KindDate
	// KindBoolean is a logical field.
	KindBoolean
	// KindUnsupported is any type code this package does not decode; the
	// raw bytes are preserved.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindDecimal:
		return "decimal"
	case KindDate:
		return "date"
	case KindBoolean:
		return "boolean"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Value is one decoded field value. Kind selects which member is meaningful.
// Null values keep their Kind so callers can still tell what the column holds.
type Value struct {
	Kind Kind
	Null bool

	Text  string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
	// Raw holds the undecoded bytes of a KindUnsupported value.
	Raw []byte
}

// IsNull reports whether the value is null (blank or unparseable source bytes).
func (v Value) IsNull() bool {
	return v.Null
}

// String renders the value in the form used for tabular output. Null values
// render as the empty string.
func (v Value) String() string {
	if v.Null {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindDecimal:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindDate:
		return v.Time.Format("2006-01-02")
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindUnsupported:
		return string(v.Raw)
	default:
		return ""
	}
}

func nullValue(k Kind) Value {
	return Value{Kind: k, Null: true}
}

// decodeValue applies the type-code decode rule to one raw field slice.
// Parse failures yield a null value plus a warning, never an error: a single
// bad cell must not lose the rest of the file.
func decodeValue(fd FieldDescriptor, raw []byte, cm *Charmap) (Value, *Warning) {
	kind := fd.Kind()

	switch kind {
	case KindText:
		return Value{Kind: KindText, Text: strings.TrimRight(cm.Decode(raw), " ")}, nil

	case KindInteger:
		s := strings.TrimSpace(string(raw))
		if s == "" {
			return nullValue(kind), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nullValue(kind), &Warning{Field: fd.Name, Message: "unparseable integer " + strconv.Quote(s)}
		}
		return Value{Kind: kind, Int: n}, nil

	case KindDecimal:
		s := strings.TrimSpace(string(raw))
		if s == "" {
			return nullValue(kind), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nullValue(kind), &Warning{Field: fd.Name, Message: "unparseable number " + strconv.Quote(s)}
		}
		return Value{Kind: kind, Float: f}, nil

	case KindDate:
		s := strings.TrimSpace(string(raw))
		if s == "" {
			return nullValue(kind), nil
		}
		t, err := time.Parse("20060102", s)
		if err != nil {
			return nullValue(kind), &Warning{Field: fd.Name, Message: "unparseable date " + strconv.Quote(s)}
		}
		return Value{Kind: kind, Time: t}, nil

	case KindBoolean:
		var b byte = ' '
		if len(raw) > 0 {
			b = raw[0]
		}
		switch b {
		case 'T', 't', 'Y', 'y':
			return Value{Kind: kind, Bool: true}, nil
		case 'F', 'f', 'N', 'n':
			return Value{Kind: kind, Bool: false}, nil
		default: // '?' or blank means unknown
			return nullValue(kind), nil
		}

	default:
		// Unknown type codes were already flagged at schema parse time.
		return Value{Kind: KindUnsupported, Raw: append([]byte(nil), raw...)}, nil
	}
}
