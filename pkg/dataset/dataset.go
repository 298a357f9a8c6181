package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/mekko/pkg/cache"
	"github.com/matzehuels/mekko/pkg/core/chart"
	"github.com/matzehuels/mekko/pkg/errors"
)

// Output formats.
const (
	FormatSVG     = "svg"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	FormatPNG     = "png"
	FormatPDF     = "pdf"
)

// Styles.
const (
	StyleSimple  = "simple"
	StyleOutline = "outline"
)

var (
	// Formats lists every render format.
	Formats = []string{FormatSVG, FormatJSON, FormatMsgpack, FormatPNG, FormatPDF}
	// Styles lists every bar style.
	Styles = []string{StyleSimple, StyleOutline}
)

// Dataset is one chart's input and its layout options.
type Dataset struct {
	Name    string        `json:"name,omitempty" toml:"name"`
	Title   string        `json:"title,omitempty" toml:"title"`
	Input   chart.Input   `json:"input"`
	Options chart.Options `json:"options"`
}

// Validate checks the parts of d the engine does not repair on its own:
// the name, and the column colors.
func (d Dataset) Validate() error {
	if d.Name != "" {
		if err := errors.ValidateDatasetName(d.Name); err != nil {
			return err
		}
	}
	for _, col := range d.Input.Columns {
		if col.Color == "" {
			continue
		}
		if err := errors.ValidateColor(col.Color); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "column %q", col.Name)
		}
	}
	for _, c := range d.Options.Palette {
		if err := errors.ValidateColor(c); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "palette")
		}
	}
	return nil
}

// Hash returns a content hash of d's input and options, used as the
// dataset part of layout cache keys.
func (d Dataset) Hash() (string, error) {
	return cache.HashJSON(struct {
		Input   chart.Input   `json:"input"`
		Options chart.Options `json:"options"`
	}{d.Input, d.Options})
}

// Marshal encodes d as indented JSON.
func Marshal(d Dataset) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON dataset.
func Unmarshal(data []byte) (Dataset, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes d as indented JSON to w.
func Write(d Dataset, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON dataset from r.
func Read(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode dataset")
	}
	return d, nil
}

// ReadFile reads a JSON dataset file.
func ReadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes d to path as JSON.
func WriteFile(d Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}
