// Package reqfile decodes batch request files.
//
// A batch file holds a single list field, requests, whose entries carry a url,
// a method and an optional body. JSON is the default format; files ending in
// .yaml or .yml are read as YAML. Any structural problem fails the whole file.
package reqfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Brendon-Hablutzel/api-client/internal/domain"
	"github.com/Brendon-Hablutzel/api-client/internal/ports"
	"gopkg.in/yaml.v3"
)

// Format selects the document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from a file name. Anything that is not .yaml or
// .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and decodes the batch file at path.
func Load(path string) (domain.RequestFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.RequestFile{}, fileError(path, err)
	}
	rf, err := decode(path, b, FormatFor(path))
	if err != nil {
		return domain.RequestFile{}, err
	}
	return rf, nil
}

// Decode parses raw bytes in the given format.
func Decode(b []byte, format Format) (domain.RequestFile, error) {
	return decode("", b, format)
}

func decode(path string, b []byte, format Format) (domain.RequestFile, error) {
	var dto fileDTO
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(b, &dto); err != nil {
			return domain.RequestFile{}, fileError(path, err)
		}
	case FormatJSON, "":
		if err := decodeJSON(b, &dto); err != nil {
			return domain.RequestFile{}, fileError(path, err)
		}
	default:
		return domain.RequestFile{}, fileError(path, fmt.Errorf("unsupported format %q", format))
	}
	return mapFile(path, dto)
}

// decodeJSON rejects trailing data after the top-level document.
func decodeJSON(b []byte, dto *fileDTO) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(dto); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after document")
	}
	return nil
}

// Loader adapts Load to ports.RequestSource.
type Loader struct{}

var _ ports.RequestSource = Loader{}

func (Loader) Load(path string) (domain.RequestFile, error) {
	return Load(path)
}
