package network

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes a self-contained force-directed rendering of the
// network. This replaces the in-session plot of an interactive run: open
// the file in a browser and drag the layout around.
func (n *Network) RenderHTML(path, title string) error {

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1400px",
			Height: "900px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	nodes := make([]opts.GraphNode, 0, len(n.Nodes))
	for _, node := range n.SortedNodes() {
		size := 14
		if node.Role == RoleDriver {
			size = 24
		}
		nodes = append(nodes, opts.GraphNode{
			Name:       node.ID,
			SymbolSize: size,
			ItemStyle:  &opts.ItemStyle{Color: node.Color},
		})
	}

	links := make([]opts.GraphLink, 0, len(n.Edges))
	for _, e := range n.Edges {
		links = append(links, opts.GraphLink{
			Source: e.Source,
			Target: e.Target,
		})
	}

	graph.AddSeries("interactions", nodes, links,
		charts.WithGraphChartOpts(opts.GraphChart{
			Layout: "force",
			Force: &opts.GraphForce{
				Repulsion:  400,
				EdgeLength: 60,
			},
			Roam: opts.Bool(true),
		}),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Position: "right",
		}),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create render %s: %w", path, err)
	}
	defer f.Close()

	if err := graph.Render(f); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
