package structure

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// document is the on-disk shape of a record file.
type document struct {
	Structures []Record `toml:"structures"`
}

// DecodeRecords reads a TOML document of [[structures]] tables from r.
// Unknown keys are ignored so that documents exported by richer query
// layers still load.
//
// Records are returned as written, including ones that fail Validate; the
// consumer decides whether to skip them (hull.Build) or abort (Strict).
func DecodeRecords(r io.Reader) ([]Record, error) {
	var doc document
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("structure: decode records: %w", err)
	}

	return doc.Structures, nil
}

// LoadRecords opens path and decodes it with DecodeRecords.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return DecodeRecords(f)
}

// EncodeRecords writes records as a TOML document readable by DecodeRecords.
func EncodeRecords(w io.Writer, records []Record) error {
	return toml.NewEncoder(w).Encode(document{Structures: records})
}
