package dataset

// Record is one interaction row after column normalization.
type Record struct {
	GeneA    string
	GeneB    string
	Score    float64
	Evidence string
}

// Table is a loaded source with its manifest metadata still attached.
type Table struct {
	Source     string
	Confidence float64
	Evidence   string // default label for rows without one
	Rows       []Record
}

// DriverGene carries the significance fields from the driver list. Only the
// symbol is used for filtering; p/q ride along into the exports.
type DriverGene struct {
	Symbol string
	PValue float64
	QValue float64
}

// GeneSet is a membership set of gene symbols.
type GeneSet map[string]struct{}

func NewGeneSet(symbols ...string) GeneSet {
	s := make(GeneSet, len(symbols))
	for _, sym := range symbols {
		s.Add(sym)
	}
	return s
}

func (s GeneSet) Add(symbol string) {
	s[symbol] = struct{}{}
}

func (s GeneSet) Has(symbol string) bool {
	_, ok := s[symbol]
	return ok
}

// DriverSet collects the symbols out of a driver list.
func DriverSet(drivers []DriverGene) GeneSet {
	s := make(GeneSet, len(drivers))
	for _, d := range drivers {
		s.Add(d.Symbol)
	}
	return s
}
