package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/dataset"
)

// Evidence labels of the combined table. The merged table is descriptive:
// a pair either came from the lethality screens, from tumor sequencing
// co-mutation, or from both.
const (
	EvidenceSyntheticLethal = "synthetic lethality"
	EvidenceComutation      = "co-mutation"
	EvidenceBoth            = "synthetic lethality + co-mutation"
)

// CombinedRow is one row of the merged SL + co-mutation interaction table.
type CombinedRow struct {
	GeneA    string
	GeneB    string
	Evidence string
	Score    float64 // composite SL score, 0 for co-mutation-only pairs
	Support  int     // total supporting rows across both networks
}

// Merge unions the synthetic-lethality pairs with the co-mutation pairs.
// Pairs present in both networks get the combined evidence label.
func Merge(sl, comut []Pair) []CombinedRow {

	rows := make(map[string]*CombinedRow, len(sl)+len(comut))

	for _, p := range sl {
		rows[p.GeneA+"\t"+p.GeneB] = &CombinedRow{
			GeneA:    p.GeneA,
			GeneB:    p.GeneB,
			Evidence: EvidenceSyntheticLethal,
			Score:    p.Score,
			Support:  p.Support,
		}
	}

	for _, p := range comut {
		key := p.GeneA + "\t" + p.GeneB
		if r, ok := rows[key]; ok {
			r.Evidence = EvidenceBoth
			r.Support += p.Support
			continue
		}
		rows[key] = &CombinedRow{
			GeneA:    p.GeneA,
			GeneB:    p.GeneB,
			Evidence: EvidenceComutation,
			Support:  p.Support,
		}
	}

	out := make([]CombinedRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GeneA != out[j].GeneA {
			return out[i].GeneA < out[j].GeneA
		}
		return out[i].GeneB < out[j].GeneB
	})

	logger.Info("Merged interaction tables",
		zap.Int("synthetic_lethality", len(sl)),
		zap.Int("comutation", len(comut)),
		zap.Int("combined", len(out)))
	return out
}

// Partners lists the non-driver genes of the combined table, sorted and
// deduplicated. These are the candidates sent for drug annotation.
func Partners(rows []CombinedRow, drivers dataset.GeneSet) []string {

	seen := make(map[string]struct{})
	for _, r := range rows {
		for _, g := range []string{r.GeneA, r.GeneB} {
			if g == "" || drivers.Has(g) {
				continue
			}
			seen[g] = struct{}{}
		}
	}

	return sortedKeys(seen)
}
