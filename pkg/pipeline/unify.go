package pipeline

import (
	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/dataset"
)

// Interaction is one row of the unified evidence table.
type Interaction struct {
	GeneA      string
	GeneB      string
	Score      float64
	Evidence   string
	Confidence float64
	Source     string
}

// Unify concatenates the loaded source tables into the single
// (GeneA, GeneB, Score, Evidence, source) schema, stamping each row with its
// source's experimental-confidence weight.
func Unify(tables []*dataset.Table) []Interaction {

	var out []Interaction
	for _, t := range tables {
		for _, r := range t.Rows {
			evidence := r.Evidence
			if evidence == "" {
				evidence = t.Evidence
			}
			out = append(out, Interaction{
				GeneA:      r.GeneA,
				GeneB:      r.GeneB,
				Score:      r.Score,
				Evidence:   evidence,
				Confidence: t.Confidence,
				Source:     t.Source,
			})
		}
	}

	logger.Info("Unified evidence table",
		zap.Int("sources", len(tables)), zap.Int("rows", len(out)))
	return out
}
