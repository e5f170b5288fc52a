// Package network holds the interaction graph shared by the renderers: gene
// and drug nodes with a role and display color, edges with a score-derived
// category.
package network

import (
	"sort"

	"github.com/yumyai/slnet/pkg/dataset"
	"github.com/yumyai/slnet/pkg/dgidb"
	"github.com/yumyai/slnet/pkg/pipeline"
)

type Role string

const (
	RoleDriver  Role = "driver"
	RolePartner Role = "partner"
	RoleDrug    Role = "drug"
)

var roleColors = map[Role]string{
	RoleDriver:  "#e15759",
	RolePartner: "#4e79a7",
	RoleDrug:    "#59a14f",
}

// Edge categories drive edge coloring.
const (
	CategoryRecurrent = "recurrent" // reported by more than one row
	CategoryHigh      = "high"
	CategoryLow       = "low"
	CategoryDrug      = "drug target"
)

var categoryColors = map[string]string{
	CategoryRecurrent:                "#b07aa1",
	CategoryHigh:                     "#f28e2b",
	CategoryLow:                      "#bab0ac",
	CategoryDrug:                     "#59a14f",
	pipeline.EvidenceSyntheticLethal: "#f28e2b",
	pipeline.EvidenceComutation:      "#76b7b2",
	pipeline.EvidenceBoth:            "#b07aa1",
}

const highScoreCutoff = 0.5

type Node struct {
	ID    string
	Role  Role
	Color string
}

type Edge struct {
	Source   string
	Target   string
	Category string
}

type Network struct {
	Nodes map[string]*Node
	Edges []*Edge
}

func New() *Network {
	return &Network{
		Nodes: make(map[string]*Node),
		Edges: make([]*Edge, 0),
	}
}

// AddNode registers a node. Driver role wins over partner when the same
// symbol shows up on both sides of different pairs.
func (n *Network) AddNode(id string, role Role) {
	if existing, ok := n.Nodes[id]; ok {
		if existing.Role == RolePartner && role == RoleDriver {
			existing.Role = RoleDriver
			existing.Color = roleColors[RoleDriver]
		}
		return
	}
	n.Nodes[id] = &Node{ID: id, Role: role, Color: roleColors[role]}
}

func (n *Network) AddEdge(source, target, category string) {
	n.Edges = append(n.Edges, &Edge{Source: source, Target: target, Category: category})
}

// SortedNodes returns nodes ordered by ID, for reproducible output files.
func (n *Network) SortedNodes() []*Node {
	ids := make([]string, 0, len(n.Nodes))
	for id := range n.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, n.Nodes[id])
	}
	return nodes
}

func roleFor(symbol string, drivers dataset.GeneSet) Role {
	if drivers.Has(symbol) {
		return RoleDriver
	}
	return RolePartner
}

// scoreCategory buckets an aggregated pair for edge coloring.
func scoreCategory(score float64, support int) string {
	switch {
	case support > 1:
		return CategoryRecurrent
	case score >= highScoreCutoff:
		return CategoryHigh
	default:
		return CategoryLow
	}
}

// FromPairs builds the undirected network of one aggregated edge list.
func FromPairs(pairs []pipeline.Pair, drivers dataset.GeneSet) *Network {
	n := New()
	for _, p := range pairs {
		n.AddNode(p.GeneA, roleFor(p.GeneA, drivers))
		n.AddNode(p.GeneB, roleFor(p.GeneB, drivers))
		n.AddEdge(p.GeneA, p.GeneB, scoreCategory(p.Score, p.Support))
	}
	return n
}

// FromCombined builds the network of the merged interaction table. Edges are
// categorized by their evidence label.
func FromCombined(rows []pipeline.CombinedRow, drivers dataset.GeneSet) *Network {
	n := New()
	for _, r := range rows {
		n.AddNode(r.GeneA, roleFor(r.GeneA, drivers))
		n.AddNode(r.GeneB, roleFor(r.GeneB, drivers))
		n.AddEdge(r.GeneA, r.GeneB, r.Evidence)
	}
	return n
}

// AddDrugTargets merges the annotation picks into the graph as drug nodes
// hanging off their gene.
func (n *Network) AddDrugTargets(targets []dgidb.DrugTarget) {
	for _, t := range targets {
		n.AddNode(t.Drug, RoleDrug)
		n.AddEdge(t.Gene, t.Drug, CategoryDrug)
	}
}

func categoryColor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return "#bab0ac"
}
