// Package idx reads the sidecar .IDX file RSTrendX writes next to each
// trend snapshot .DBF.
//
// The index carries the human-readable pen names (the trended tags, e.g.
// "N100:0" or "F150:1") that the length-limited DBF field names do not.
// The structure is a tool-specific layer over the generic dBASE index
// concept: pen entries are embedded in a sea of reserved header bytes, so
// the reader tokenizes the decoded byte stream instead of walking a fixed
// layout, and ignores everything it does not recognize.
package idx

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/jminnion/trendsnap/pkg/dbf"
)

var (
	// ErrEmptyIndex indicates the index file had no content to decode.
	ErrEmptyIndex = errors.New("empty index file")
	// ErrNoPens indicates the decoded index contained no pen entries.
	ErrNoPens = errors.New("no pen entries in index")
)

// Each pen entry is an ordinal key followed by the pen name, delimited by
// the surrounding reserved bytes (which decode to whitespace/controls).
var penPattern = regexp.MustCompile(`\s\b(\d+)(\S*)\s?`)

// Pen is one entry of the index: the key the trend tool wrote (in practice
// the decimal ordinal matching a DBF field name) and the display name.
type Pen struct {
	Key  string
	Name string
}

// PenIndex is the ordered set of pen entries decoded from an .IDX file.
type PenIndex struct {
	pens   []Pen
	byKey  map[string]string
	source string
}

// Parse decodes raw .IDX bytes through the given code page and extracts the
// pen entries. Unknown or reserved bytes are ignored rather than failing;
// only a fully empty or pen-free index is an error, so the caller can fall
// back to placeholder names.
func Parse(data []byte, cm *dbf.Charmap) (*PenIndex, error) {
	if len(data) == 0 {
		return nil, ErrEmptyIndex
	}

	decoded := cm.Decode(data)
	matches := penPattern.FindAllStringSubmatch(decoded, -1)
	if len(matches) == 0 {
		return nil, ErrNoPens
	}

	idx := &PenIndex{byKey: make(map[string]string, len(matches))}
	for _, m := range matches {
		pen := Pen{Key: m[1], Name: m[2]}
		idx.pens = append(idx.pens, pen)
		idx.byKey[pen.Key] = pen.Name
	}

	return idx, nil
}

// ParseFile reads and parses an .IDX file with the named code page
// (empty selects cp850, the code page the trend tool writes).
func ParseFile(path, encoding string) (*PenIndex, error) {
	if encoding == "" {
		encoding = "cp850"
	}
	cm, err := dbf.LookupCharmap(encoding)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}

	idx, err := Parse(data, cm)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	idx.source = path

	return idx, nil
}

// Placeholders builds a synthetic index with names prefix00..prefixNN, used
// when the real index is missing, empty, or undecodable.
func Placeholders(n int, prefix string) *PenIndex {
	if prefix == "" {
		prefix = "Pen_"
	}
	idx := &PenIndex{byKey: make(map[string]string, n)}
	for i := 0; i < n; i++ {
		pen := Pen{Key: fmt.Sprintf("%d", i), Name: fmt.Sprintf("%s%02d", prefix, i)}
		idx.pens = append(idx.pens, pen)
		idx.byKey[pen.Key] = pen.Name
	}
	return idx
}

// Name returns the pen name for a key.
func (p *PenIndex) Name(key string) (string, bool) {
	name, ok := p.byKey[key]
	return name, ok
}

// At returns the i-th pen in index order.
func (p *PenIndex) At(i int) (Pen, bool) {
	if i < 0 || i >= len(p.pens) {
		return Pen{}, false
	}
	return p.pens[i], true
}

// Len returns the number of pen entries.
func (p *PenIndex) Len() int {
	return len(p.pens)
}

// Pens returns the entries in index order.
func (p *PenIndex) Pens() []Pen {
	out := make([]Pen, len(p.pens))
	copy(out, p.pens)
	return out
}

// Source returns the path the index was read from, if any.
func (p *PenIndex) Source() string {
	return p.source
}
