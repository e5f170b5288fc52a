// Package export writes the pipeline's CSV artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yumyai/slnet/pkg/dataset"
	"github.com/yumyai/slnet/pkg/dgidb"
	"github.com/yumyai/slnet/pkg/pipeline"
)

func writeCSV(path string, header []string, rows [][]string) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header of %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row of %s: %w", path, err)
		}
	}
	w.Flush()
	return w.Error()
}

// WritePairs exports an aggregated edge list.
func WritePairs(path string, pairs []pipeline.Pair) error {

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{
			p.GeneA,
			p.GeneB,
			strconv.FormatFloat(p.Score, 'f', 4, 64),
			strconv.Itoa(p.Support),
			strings.Join(p.Sources, ";"),
			strings.Join(p.Evidences, ";"),
		})
	}
	return writeCSV(path, []string{"GeneA", "GeneB", "Score", "Support", "Sources", "Evidence"}, rows)
}

// WriteCombined exports the merged SL + co-mutation interaction table.
func WriteCombined(path string, combined []pipeline.CombinedRow) error {

	rows := make([][]string, 0, len(combined))
	for _, r := range combined {
		rows = append(rows, []string{
			r.GeneA,
			r.GeneB,
			r.Evidence,
			strconv.FormatFloat(r.Score, 'f', 4, 64),
			strconv.Itoa(r.Support),
		})
	}
	return writeCSV(path, []string{"GeneA", "GeneB", "Evidence", "Score", "Support"}, rows)
}

// WriteDrivers exports the driver list with its significance fields.
func WriteDrivers(path string, drivers []dataset.DriverGene) error {

	rows := make([][]string, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, []string{
			d.Symbol,
			strconv.FormatFloat(d.PValue, 'e', 3, 64),
			strconv.FormatFloat(d.QValue, 'e', 3, 64),
		})
	}
	return writeCSV(path, []string{"Gene", "PValue", "QValue"}, rows)
}

// WritePartners exports the partner gene list sent for drug annotation.
func WritePartners(path string, partners []string) error {

	rows := make([][]string, 0, len(partners))
	for _, g := range partners {
		rows = append(rows, []string{g})
	}
	return writeCSV(path, []string{"Gene"}, rows)
}

// WriteDrugTargets exports the best drug per annotated gene.
func WriteDrugTargets(path string, targets []dgidb.DrugTarget) error {

	rows := make([][]string, 0, len(targets))
	for _, t := range targets {
		rows = append(rows, []string{
			t.Gene,
			t.Drug,
			strconv.Itoa(t.Support),
		})
	}
	return writeCSV(path, []string{"Gene", "Drug", "Publications"}, rows)
}
