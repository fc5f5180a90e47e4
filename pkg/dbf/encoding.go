package dbf

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Charmap decodes the single-byte code page used for character fields.
// RSTrendX snapshots use code page 850. The zero value maps each byte
// straight to the same rune, which is correct for plain ASCII content.
type Charmap struct {
	cm *charmap.Charmap
}

// LookupCharmap resolves a code page name to a decoder. The empty string and
// "ascii" decode bytes unchanged.
func LookupCharmap(name string) (*Charmap, error) {
	switch strings.ToLower(name) {
	case "", "ascii", "raw":
		return &Charmap{}, nil
	case "cp850", "ibm850", "850":
		return &Charmap{cm: charmap.CodePage850}, nil
	case "cp437", "ibm437", "437":
		return &Charmap{cm: charmap.CodePage437}, nil
	case "cp1252", "windows-1252", "windows1252":
		return &Charmap{cm: charmap.Windows1252}, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return &Charmap{cm: charmap.ISO8859_1}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Decode converts raw file bytes to a string through the code page.
func (c *Charmap) Decode(b []byte) string {
	if c == nil || c.cm == nil {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for _, by := range b {
		sb.WriteRune(c.cm.DecodeByte(by))
	}
	return sb.String()
}
