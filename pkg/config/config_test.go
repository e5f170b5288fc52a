package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
synthetic_lethality:
  - name: synlethdb
    path: SynLethDB_human.tsv
    confidence: 0.9
    columns:
      gene_a: gene_a.name
      gene_b: gene_b.name
      score: r.statistic_score
      evidence: r.source
  - name: screen_xlsx
    path: screen.xlsx
    sheet: hits
    evidence: CRISPR screen
    columns:
      gene_a: GeneA
      gene_b: GeneB
comutation:
  - name: paad_comut
    path: paad_comutation.tsv
    confidence: 0.6
    columns:
      gene_a: Gene1
      gene_b: Gene2
drivers:
  path: paad_drivers.tsv
  gene: gene
  p_value: p
  q_value: q
essentials:
  path: CEGv2.txt
  gene: GENE
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "sources.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoadManifest(t *testing.T) {

	p := writeManifest(t, manifestYAML)
	m, err := Load(p)
	require.NoError(t, err)

	require.Len(t, m.SyntheticLethality, 2)
	require.Len(t, m.Comutation, 1)

	base := filepath.Dir(p)

	sl := m.SyntheticLethality[0]
	assert.Equal(t, "synlethdb", sl.Name)
	assert.Equal(t, filepath.Join(base, "SynLethDB_human.tsv"), sl.Path)
	assert.Equal(t, FormatTSV, sl.Format)
	assert.Equal(t, 0.9, sl.Confidence)

	xl := m.SyntheticLethality[1]
	assert.Equal(t, FormatXLSX, xl.Format, "format should be guessed from the extension")
	assert.Equal(t, 0.5, xl.Confidence, "missing confidence should default")
	assert.Equal(t, "CRISPR screen", xl.Evidence)

	assert.Equal(t, filepath.Join(base, "paad_drivers.tsv"), m.Drivers.Path)
	assert.Equal(t, "p", m.Drivers.PValue)
	assert.Equal(t, filepath.Join(base, "CEGv2.txt"), m.Essentials.Path)
}

func TestLoadManifestRejectsBadSources(t *testing.T) {

	cases := map[string]string{
		"missing gene columns": `
synthetic_lethality:
  - name: bad
    path: bad.tsv
    columns:
      gene_a: GeneA
drivers: {path: d.tsv}
essentials: {path: e.txt}
`,
		"confidence out of range": `
synthetic_lethality:
  - name: bad
    path: bad.tsv
    confidence: 1.5
    columns: {gene_a: GeneA, gene_b: GeneB}
drivers: {path: d.tsv}
essentials: {path: e.txt}
`,
		"no sources": `
synthetic_lethality: []
drivers: {path: d.tsv}
essentials: {path: e.txt}
`,
		"no drivers": `
synthetic_lethality:
  - name: ok
    path: ok.tsv
    columns: {gene_a: GeneA, gene_b: GeneB}
essentials: {path: e.txt}
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeManifest(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
