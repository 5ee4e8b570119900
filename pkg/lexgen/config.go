package lexgen

import (
	"bytes"
	"io"
	"os"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

// LoadOptions reads options from a YAML file. Fields missing from the
// file keep their zero value.
func LoadOptions(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, xerrors.Errorf("unable to read yaml config file: %w", err)
	}
	return ParseOptions(raw)
}

// ParseOptions decodes options from YAML. Unknown fields are an error.
func ParseOptions(raw []byte) (Options, error) {
	var opts Options
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !xerrors.Is(err, io.EOF) {
		return Options{}, xerrors.Errorf("unable to parse yaml config: %w", err)
	}
	return opts, nil
}
