package pipeline

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/dataset"
)

func TestMain(m *testing.M) {
	if err := logger.InitLogger(zapcore.ErrorLevel); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func sampleTables() []*dataset.Table {
	return []*dataset.Table{
		{
			Source:     "synlethdb",
			Confidence: 0.9,
			Rows: []dataset.Record{
				{GeneA: "KRAS", GeneB: "STK33", Score: 0.8, Evidence: "RNAi screen"},
				{GeneA: "KRAS", GeneB: "POLR2A", Score: 0.9, Evidence: "RNAi screen"},
				{GeneA: "MYC", GeneB: "WRN", Score: 0.7, Evidence: "RNAi screen"},
			},
		},
		{
			Source:     "crispr_screen",
			Confidence: 0.6,
			Evidence:   "CRISPR screen",
			Rows: []dataset.Record{
				{GeneA: "KRAS", GeneB: "STK33", Score: 0.4},
				{GeneA: "BRCA2", GeneB: "PARP1", Score: 0.5},
			},
		},
	}
}

func TestUnify(t *testing.T) {

	rows := Unify(sampleTables())
	require.Len(t, rows, 5)

	assert.Equal(t, "synlethdb", rows[0].Source)
	assert.Equal(t, 0.9, rows[0].Confidence)
	assert.Equal(t, "RNAi screen", rows[0].Evidence)

	// Default evidence label fills rows without one.
	assert.Equal(t, "CRISPR screen", rows[3].Evidence)
	assert.Equal(t, 0.6, rows[3].Confidence)
}

func TestFiltersReduceMonotonically(t *testing.T) {

	rows := Unify(sampleTables())
	drivers := dataset.NewGeneSet("KRAS", "MYC")
	essentials := dataset.NewGeneSet("POLR2A")

	afterDriver := KeepDriverTouching(rows, drivers)
	assert.LessOrEqual(t, len(afterDriver), len(rows))
	require.Len(t, afterDriver, 4, "BRCA2-PARP1 touches no driver")

	afterEssential := DropEssential(afterDriver, essentials)
	assert.LessOrEqual(t, len(afterEssential), len(afterDriver))
	require.Len(t, afterEssential, 3, "KRAS-POLR2A hits the essential blacklist")

	for _, r := range afterEssential {
		assert.True(t, drivers.Has(r.GeneA) || drivers.Has(r.GeneB))
		assert.False(t, essentials.Has(r.GeneA))
		assert.False(t, essentials.Has(r.GeneB))
	}
}

func TestAggregate(t *testing.T) {

	rows := []Interaction{
		{GeneA: "KRAS", GeneB: "STK33", Score: 0.8, Confidence: 0.9, Source: "synlethdb", Evidence: "RNAi screen"},
		{GeneA: "KRAS", GeneB: "STK33", Score: 0.4, Confidence: 0.6, Source: "crispr_screen", Evidence: "CRISPR screen"},
		{GeneA: "MYC", GeneB: "WRN", Score: 0.7, Confidence: 0.9, Source: "synlethdb", Evidence: "RNAi screen"},
	}

	pairs := Aggregate(rows)
	require.Len(t, pairs, 2)
	assert.LessOrEqual(t, len(pairs), len(rows))

	kras := pairs[0]
	assert.Equal(t, "KRAS", kras.GeneA)
	assert.Equal(t, "STK33", kras.GeneB)
	assert.Equal(t, 2, kras.Support)
	assert.Equal(t, []string{"crispr_screen", "synlethdb"}, kras.Sources)

	// Confidence-weighted mean: (0.8*0.9 + 0.4*0.6) / (0.9 + 0.6)
	assert.InDelta(t, 0.64, kras.Score, 1e-9)

	myc := pairs[1]
	assert.Equal(t, 1, myc.Support)
	assert.InDelta(t, 0.7, myc.Score, 1e-9)
}

func TestAggregateKeepsPairOrientation(t *testing.T) {

	rows := []Interaction{
		{GeneA: "KRAS", GeneB: "STK33", Confidence: 0.5, Source: "a"},
		{GeneA: "STK33", GeneB: "KRAS", Confidence: 0.5, Source: "b"},
	}

	pairs := Aggregate(rows)
	assert.Len(t, pairs, 2, "reversed orientation is not folded")
}

func TestMerge(t *testing.T) {

	sl := []Pair{
		{GeneA: "KRAS", GeneB: "STK33", Score: 0.64, Support: 2},
		{GeneA: "MYC", GeneB: "WRN", Score: 0.7, Support: 1},
	}
	comut := []Pair{
		{GeneA: "KRAS", GeneB: "STK33", Support: 1},
		{GeneA: "SMAD4", GeneB: "TGFBR1", Support: 3},
	}

	combined := Merge(sl, comut)
	require.Len(t, combined, 3)

	byKey := map[string]CombinedRow{}
	for _, r := range combined {
		byKey[r.GeneA+"/"+r.GeneB] = r
	}

	both := byKey["KRAS/STK33"]
	assert.Equal(t, EvidenceBoth, both.Evidence)
	assert.Equal(t, 3, both.Support)
	assert.InDelta(t, 0.64, both.Score, 1e-9)

	assert.Equal(t, EvidenceSyntheticLethal, byKey["MYC/WRN"].Evidence)
	assert.Equal(t, EvidenceComutation, byKey["SMAD4/TGFBR1"].Evidence)

	for _, r := range combined {
		assert.NotEmpty(t, r.GeneA)
		assert.NotEmpty(t, r.GeneB)
	}
}

func TestMergeWithoutComutation(t *testing.T) {

	sl := []Pair{{GeneA: "KRAS", GeneB: "STK33", Score: 0.5, Support: 1}}

	combined := Merge(sl, nil)
	require.Len(t, combined, 1)
	assert.Equal(t, EvidenceSyntheticLethal, combined[0].Evidence)
}

func TestPartners(t *testing.T) {

	combined := []CombinedRow{
		{GeneA: "KRAS", GeneB: "STK33"},
		{GeneA: "KRAS", GeneB: "WRN"},
		{GeneA: "STK33", GeneB: "WRN"},
	}
	drivers := dataset.NewGeneSet("KRAS")

	partners := Partners(combined, drivers)
	assert.Equal(t, []string{"STK33", "WRN"}, partners)
}
