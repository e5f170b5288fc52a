package network

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/slnet/pkg/dataset"
	"github.com/yumyai/slnet/pkg/dgidb"
	"github.com/yumyai/slnet/pkg/pipeline"
)

func samplePairs() []pipeline.Pair {
	return []pipeline.Pair{
		{GeneA: "KRAS", GeneB: "STK33", Score: 0.64, Support: 2},
		{GeneA: "KRAS", GeneB: "SLC7A11", Score: 0.8, Support: 1},
		{GeneA: "MYC", GeneB: "WRN", Score: 0.2, Support: 1},
	}
}

func TestFromPairs(t *testing.T) {

	drivers := dataset.NewGeneSet("KRAS", "MYC")
	n := FromPairs(samplePairs(), drivers)

	require.Len(t, n.Nodes, 5)
	require.Len(t, n.Edges, 3)

	assert.Equal(t, RoleDriver, n.Nodes["KRAS"].Role)
	assert.Equal(t, RolePartner, n.Nodes["STK33"].Role)
	assert.Equal(t, roleColors[RoleDriver], n.Nodes["KRAS"].Color)

	// Score-derived edge categories.
	assert.Equal(t, CategoryRecurrent, n.Edges[0].Category)
	assert.Equal(t, CategoryHigh, n.Edges[1].Category)
	assert.Equal(t, CategoryLow, n.Edges[2].Category)
}

func TestDriverRoleWins(t *testing.T) {

	drivers := dataset.NewGeneSet("KRAS")
	pairs := []pipeline.Pair{
		{GeneA: "STK33", GeneB: "KRAS"}, // KRAS seen as GeneB first
		{GeneA: "KRAS", GeneB: "STK33"},
	}

	n := FromPairs(pairs, drivers)
	assert.Equal(t, RoleDriver, n.Nodes["KRAS"].Role)
	assert.Equal(t, RolePartner, n.Nodes["STK33"].Role)
}

func TestFromCombinedAndDrugs(t *testing.T) {

	drivers := dataset.NewGeneSet("KRAS")
	rows := []pipeline.CombinedRow{
		{GeneA: "KRAS", GeneB: "STK33", Evidence: pipeline.EvidenceBoth},
		{GeneA: "KRAS", GeneB: "WRN", Evidence: pipeline.EvidenceComutation},
	}

	n := FromCombined(rows, drivers)
	assert.Equal(t, pipeline.EvidenceBoth, n.Edges[0].Category)

	n.AddDrugTargets([]dgidb.DrugTarget{
		{Gene: "WRN", Drug: "HRO761", Support: 1},
	})

	require.Contains(t, n.Nodes, "HRO761")
	assert.Equal(t, RoleDrug, n.Nodes["HRO761"].Role)

	last := n.Edges[len(n.Edges)-1]
	assert.Equal(t, "WRN", last.Source)
	assert.Equal(t, "HRO761", last.Target)
	assert.Equal(t, CategoryDrug, last.Category)
}

func TestWriteDOT(t *testing.T) {

	drivers := dataset.NewGeneSet("KRAS", "MYC")
	n := FromPairs(samplePairs(), drivers)

	var b strings.Builder
	require.NoError(t, n.WriteDOT(&b))
	out := b.String()

	assert.True(t, strings.HasPrefix(out, "graph slnet {"))
	assert.Contains(t, out, "layout=fdp;")
	assert.Contains(t, out, `"KRAS" [fillcolor="#e15759", tooltip="driver"];`)
	assert.Contains(t, out, `"KRAS" -- "STK33"`)
	assert.Contains(t, out, `tooltip="recurrent"`)
}

func TestWriteDOTQuotesAwkwardNames(t *testing.T) {

	n := New()
	n.AddNode("HLA-A", RolePartner)
	n.AddNode(`DRUG "X"`, RoleDrug)
	n.AddEdge("HLA-A", `DRUG "X"`, CategoryDrug)

	var b strings.Builder
	require.NoError(t, n.WriteDOT(&b))

	assert.Contains(t, b.String(), `"HLA-A" -- "DRUG \"X\""`)
}

func TestRenderHTML(t *testing.T) {

	drivers := dataset.NewGeneSet("KRAS")
	n := FromPairs(samplePairs(), drivers)

	p := filepath.Join(t.TempDir(), "net.html")
	require.NoError(t, n.RenderHTML(p, "test network"))

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	html := string(raw)

	assert.Contains(t, html, "KRAS")
	assert.Contains(t, html, "force")
}
