package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
	"github.com/yumyai/slnet/pkg/config"
)

// LoadSource reads one manifest source into a Table, mapping its headers
// onto the unified schema. Rows with a missing gene symbol are dropped.
func LoadSource(src config.Source) (*Table, error) {

	rows, err := readRows(src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src.Name, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("load %s: %s is empty", src.Name, src.Path)
	}

	header := indexHeader(rows[0])

	colA, ok := header[normKey(src.Columns.GeneA)]
	if !ok {
		return nil, fmt.Errorf("load %s: column %q not in header", src.Name, src.Columns.GeneA)
	}
	colB, ok := header[normKey(src.Columns.GeneB)]
	if !ok {
		return nil, fmt.Errorf("load %s: column %q not in header", src.Name, src.Columns.GeneB)
	}

	colScore := -1
	if src.Columns.Score != "" {
		if colScore, ok = header[normKey(src.Columns.Score)]; !ok {
			return nil, fmt.Errorf("load %s: column %q not in header", src.Name, src.Columns.Score)
		}
	}
	colEvidence := -1
	if src.Columns.Evidence != "" {
		if colEvidence, ok = header[normKey(src.Columns.Evidence)]; !ok {
			return nil, fmt.Errorf("load %s: column %q not in header", src.Name, src.Columns.Evidence)
		}
	}

	t := &Table{
		Source:     src.Name,
		Confidence: src.Confidence,
		Evidence:   src.Evidence,
	}

	dropped := 0
	for _, row := range rows[1:] {
		rec := Record{
			GeneA: cell(row, colA),
			GeneB: cell(row, colB),
		}
		if rec.GeneA == "" || rec.GeneB == "" {
			dropped++
			continue
		}
		if src.Columns.Score != "" {
			if v, err := strconv.ParseFloat(cell(row, colScore), 64); err == nil {
				rec.Score = v
			}
		}
		if src.Columns.Evidence != "" {
			rec.Evidence = cell(row, colEvidence)
		}
		t.Rows = append(t.Rows, rec)
	}

	if dropped > 0 {
		logger.Warn("Dropped rows with empty gene symbols",
			zap.String("source", src.Name), zap.Int("rows", dropped))
	}
	logger.Info("Loaded source",
		zap.String("source", src.Name), zap.Int("rows", len(t.Rows)))

	return t, nil
}

// LoadSources loads every source in order.
func LoadSources(srcs []config.Source) ([]*Table, error) {
	tables := make([]*Table, 0, len(srcs))
	for _, src := range srcs {
		t, err := LoadSource(src)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// LoadDrivers reads the driver-gene list. The gene column defaults to
// "gene"; p/q columns are optional.
func LoadDrivers(list config.GeneList) ([]DriverGene, error) {

	rows, err := readDelimited(list.Path)
	if err != nil {
		return nil, fmt.Errorf("load drivers: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("load drivers: %s has no data rows", list.Path)
	}

	header := indexHeader(rows[0])

	geneCol := list.Gene
	if geneCol == "" {
		geneCol = "gene"
	}
	col, ok := header[normKey(geneCol)]
	if !ok {
		return nil, fmt.Errorf("load drivers: column %q not in header", geneCol)
	}

	pCol, qCol := -1, -1
	if list.PValue != "" {
		if c, ok := header[normKey(list.PValue)]; ok {
			pCol = c
		}
	}
	if list.QValue != "" {
		if c, ok := header[normKey(list.QValue)]; ok {
			qCol = c
		}
	}

	var drivers []DriverGene
	for _, row := range rows[1:] {
		d := DriverGene{Symbol: cell(row, col)}
		if d.Symbol == "" {
			continue
		}
		if pCol >= 0 {
			d.PValue, _ = strconv.ParseFloat(cell(row, pCol), 64)
		}
		if qCol >= 0 {
			d.QValue, _ = strconv.ParseFloat(cell(row, qCol), 64)
		}
		drivers = append(drivers, d)
	}

	logger.Info("Loaded driver genes", zap.Int("genes", len(drivers)))
	return drivers, nil
}

// LoadEssentials reads the core-essential blacklist. Only the first column
// is used; a header row is skipped when the gene column name is given and
// matches.
func LoadEssentials(list config.GeneList) (GeneSet, error) {

	rows, err := readDelimited(list.Path)
	if err != nil {
		return nil, fmt.Errorf("load essentials: %w", err)
	}

	set := make(GeneSet)
	for i, row := range rows {
		sym := cell(row, 0)
		if sym == "" {
			continue
		}
		if i == 0 && list.Gene != "" && normKey(sym) == normKey(list.Gene) {
			continue
		}
		set.Add(sym)
	}

	logger.Info("Loaded core-essential genes", zap.Int("genes", len(set)))
	return set, nil
}

func readRows(src config.Source) ([][]string, error) {
	if src.Format == config.FormatXLSX {
		return readSheet(src.Path, src.Sheet)
	}
	return readDelimited(src.Path)
}

// readDelimited reads a tab-separated file. Rows may have ragged widths.
func readDelimited(path string) ([][]string, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func readSheet(path, sheet string) ([][]string, error) {

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %s of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// indexHeader maps normalized column names to their positions.
func indexHeader(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normKey(h)] = i
	}
	return idx
}

func normKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
