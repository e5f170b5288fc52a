package pipeline

import (
	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/dataset"
)

// KeepDriverTouching keeps only interactions where at least one side is a
// driver gene.
func KeepDriverTouching(in []Interaction, drivers dataset.GeneSet) []Interaction {

	out := make([]Interaction, 0, len(in))
	for _, r := range in {
		if drivers.Has(r.GeneA) || drivers.Has(r.GeneB) {
			out = append(out, r)
		}
	}

	logger.Info("Driver filter",
		zap.Int("before", len(in)), zap.Int("after", len(out)))
	return out
}

// DropEssential removes interactions touching a core-essential gene. These
// pairs score in every screen and drown out the real candidates.
func DropEssential(in []Interaction, essentials dataset.GeneSet) []Interaction {

	out := make([]Interaction, 0, len(in))
	for _, r := range in {
		if essentials.Has(r.GeneA) || essentials.Has(r.GeneB) {
			continue
		}
		out = append(out, r)
	}

	logger.Info("Essential filter",
		zap.Int("before", len(in)), zap.Int("after", len(out)))
	return out
}
