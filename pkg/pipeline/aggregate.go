package pipeline

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
)

// Pair is an aggregated gene pair: one edge candidate with its support
// across sources and a confidence-weighted composite score.
//
// Grouping keys on the ordered (GeneA, GeneB) pair. The upstream databases
// already report pairs driver-first, so (A,B) and (B,A) are the same edge
// conceptually but are not folded together here.
type Pair struct {
	GeneA     string
	GeneB     string
	Score     float64 // confidence-weighted mean of source scores
	Support   int     // how many rows reported this pair
	Sources   []string
	Evidences []string
}

// Aggregate groups duplicate pairs, counts occurrences and computes the
// composite score. Output is sorted by (GeneA, GeneB) so runs are
// reproducible.
func Aggregate(in []Interaction) []Pair {

	type acc struct {
		weighted  float64
		weight    float64
		support   int
		sources   map[string]struct{}
		evidences map[string]struct{}
	}

	accs := make(map[string]*acc)
	for _, r := range in {
		key := r.GeneA + "\t" + r.GeneB
		a, ok := accs[key]
		if !ok {
			a = &acc{
				sources:   map[string]struct{}{},
				evidences: map[string]struct{}{},
			}
			accs[key] = a
		}
		a.weighted += r.Score * r.Confidence
		a.weight += r.Confidence
		a.support++
		a.sources[r.Source] = struct{}{}
		if r.Evidence != "" {
			a.evidences[r.Evidence] = struct{}{}
		}
	}

	pairs := make([]Pair, 0, len(accs))
	for key, a := range accs {
		genes := strings.SplitN(key, "\t", 2)
		p := Pair{
			GeneA:     genes[0],
			GeneB:     genes[1],
			Support:   a.support,
			Sources:   sortedKeys(a.sources),
			Evidences: sortedKeys(a.evidences),
		}
		if a.weight > 0 {
			p.Score = a.weighted / a.weight
		}
		pairs = append(pairs, p)
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].GeneA != pairs[j].GeneA {
			return pairs[i].GeneA < pairs[j].GeneA
		}
		return pairs[i].GeneB < pairs[j].GeneB
	})

	logger.Info("Aggregated pairs",
		zap.Int("rows", len(in)), zap.Int("pairs", len(pairs)))
	return pairs
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
