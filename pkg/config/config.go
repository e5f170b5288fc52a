package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Columns maps the source file's header names onto the unified schema.
// Empty Score / Evidence means the source does not carry that column.
type Columns struct {
	GeneA    string `yaml:"gene_a"`
	GeneB    string `yaml:"gene_b"`
	Score    string `yaml:"score"`
	Evidence string `yaml:"evidence"`
}

// Source describes one interaction dataset in the manifest.
type Source struct {
	Name       string  `yaml:"name"`
	Path       string  `yaml:"path"`
	Format     string  `yaml:"format"` // tsv | xlsx, guessed from the extension when empty
	Sheet      string  `yaml:"sheet"`  // xlsx only, first sheet when empty
	Confidence float64 `yaml:"confidence"`
	Evidence   string  `yaml:"evidence"` // label used when the table has no evidence column
	Columns    Columns `yaml:"columns"`
}

// GeneList describes the driver list (gene + p/q columns) or the
// core-essential list (gene column only).
type GeneList struct {
	Path   string `yaml:"path"`
	Gene   string `yaml:"gene"`
	PValue string `yaml:"p_value"`
	QValue string `yaml:"q_value"`
}

type Manifest struct {
	SyntheticLethality []Source `yaml:"synthetic_lethality"`
	Comutation         []Source `yaml:"comutation"`
	Drivers            GeneList `yaml:"drivers"`
	Essentials         GeneList `yaml:"essentials"`
}

const (
	FormatTSV  = "tsv"
	FormatXLSX = "xlsx"
)

// Load reads a sources manifest and resolves every dataset path against the
// manifest's directory.
func Load(path string) (*Manifest, error) {

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	base := filepath.Dir(path)

	for i := range m.SyntheticLethality {
		if err := fixupSource(&m.SyntheticLethality[i], base); err != nil {
			return nil, err
		}
	}
	for i := range m.Comutation {
		if err := fixupSource(&m.Comutation[i], base); err != nil {
			return nil, err
		}
	}

	if m.Drivers.Path == "" {
		return nil, fmt.Errorf("manifest %s: drivers.path is required", path)
	}
	if m.Essentials.Path == "" {
		return nil, fmt.Errorf("manifest %s: essentials.path is required", path)
	}
	m.Drivers.Path = resolve(base, m.Drivers.Path)
	m.Essentials.Path = resolve(base, m.Essentials.Path)

	if len(m.SyntheticLethality) == 0 {
		return nil, fmt.Errorf("manifest %s: no synthetic_lethality sources", path)
	}

	return &m, nil
}

func fixupSource(s *Source, base string) error {

	if s.Name == "" || s.Path == "" {
		return fmt.Errorf("source needs both name and path (got name=%q path=%q)", s.Name, s.Path)
	}

	s.Path = resolve(base, s.Path)

	if s.Format == "" {
		switch strings.ToLower(filepath.Ext(s.Path)) {
		case ".xlsx", ".xls":
			s.Format = FormatXLSX
		default:
			s.Format = FormatTSV
		}
	}
	if s.Format != FormatTSV && s.Format != FormatXLSX {
		return fmt.Errorf("source %s: unknown format %q", s.Name, s.Format)
	}

	// No tier given -> middle of the road.
	if s.Confidence == 0 {
		s.Confidence = 0.5
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("source %s: confidence %v out of [0,1]", s.Name, s.Confidence)
	}

	if s.Columns.GeneA == "" || s.Columns.GeneB == "" {
		return fmt.Errorf("source %s: columns.gene_a and columns.gene_b are required", s.Name)
	}

	return nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
