// Package dgidb is a small client for the public DGIdb interactions API
// (https://dgidb.org/api/v2/interactions.json).
package dgidb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/yumyai/slnet/logger"
)

const DefaultBaseURL = "https://dgidb.org/api/v2"

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GeneInteraction is one drug claim inside a matched term.
type GeneInteraction struct {
	DrugName         string   `json:"drugName"`
	ChemblID         string   `json:"drugChemblId"`
	InteractionTypes []string `json:"interactionTypes"`
	Sources          []string `json:"sources"`
	PMIDs            []int64  `json:"pmids"`
	Score            float64  `json:"score"`
}

// MatchedTerm is DGIdb's answer for one recognized gene symbol.
type MatchedTerm struct {
	SearchTerm   string            `json:"searchTerm"`
	GeneName     string            `json:"geneName"`
	EntrezID     int64             `json:"entrezId"`
	Interactions []GeneInteraction `json:"interactions"`
}

// UnmatchedTerm carries DGIdb's alternate-spelling suggestions for a symbol
// it did not recognize.
type UnmatchedTerm struct {
	SearchTerm  string   `json:"searchTerm"`
	Suggestions []string `json:"suggestions"`
}

type interactionsResponse struct {
	MatchedTerms   []MatchedTerm   `json:"matchedTerms"`
	UnmatchedTerms []UnmatchedTerm `json:"unmatchedTerms"`
}

// DrugTarget is the per-gene pick: the drug with the most literature
// support.
type DrugTarget struct {
	Gene    string
	Drug    string
	Support int // number of supporting publications
}

// Interactions queries one gene symbol. On a miss it returns the
// suggestions from the unmatched term, if any.
func (c *Client) Interactions(ctx context.Context, gene string) (*MatchedTerm, []string, error) {

	u := fmt.Sprintf("%s/interactions.json?genes=%s", c.BaseURL, url.QueryEscape(gene))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("dgidb request for %s: %w", gene, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("dgidb response for %s: %w", gene, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("dgidb status %d for %s: %s", resp.StatusCode, gene, body)
	}

	var parsed interactionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("dgidb parse for %s: %w", gene, err)
	}

	if len(parsed.MatchedTerms) > 0 {
		return &parsed.MatchedTerms[0], nil, nil
	}
	if len(parsed.UnmatchedTerms) > 0 {
		return nil, parsed.UnmatchedTerms[0].Suggestions, nil
	}
	return nil, nil, nil
}

// BestDrug picks the interaction with the most supporting publications.
// Ties resolve to the lexicographically smaller drug name so the output is
// stable between runs.
func BestDrug(term *MatchedTerm) (DrugTarget, bool) {

	if term == nil || len(term.Interactions) == 0 {
		return DrugTarget{}, false
	}

	best := DrugTarget{Gene: term.GeneName, Support: -1}
	for _, it := range term.Interactions {
		if it.DrugName == "" {
			continue
		}
		support := len(it.PMIDs)
		if support > best.Support ||
			(support == best.Support && it.DrugName < best.Drug) {
			best.Drug = it.DrugName
			best.Support = support
		}
	}

	if best.Drug == "" {
		return DrugTarget{}, false
	}
	return best, true
}

// AnnotateGenes looks up every gene one at a time and keeps the best drug
// per gene. A symbol DGIdb does not know is retried once with the first
// suggested spelling, then skipped.
func (c *Client) AnnotateGenes(ctx context.Context, genes []string) ([]DrugTarget, error) {

	var targets []DrugTarget

	for _, gene := range genes {
		term, suggestions, err := c.Interactions(ctx, gene)
		if err != nil {
			return targets, err
		}

		if term == nil && len(suggestions) > 0 {
			logger.Info("Retrying with suggested symbol",
				zap.String("gene", gene), zap.String("suggestion", suggestions[0]))
			term, _, err = c.Interactions(ctx, suggestions[0])
			if err != nil {
				return targets, err
			}
		}

		if term == nil {
			logger.Warn("Could not find gene in DGIdb", zap.String("gene", gene))
			continue
		}

		target, ok := BestDrug(term)
		if !ok {
			logger.Debug("No drug interactions", zap.String("gene", term.GeneName))
			continue
		}
		// Keep the query symbol so the row joins back onto the network.
		target.Gene = gene
		targets = append(targets, target)
	}

	logger.Info("Annotated partner genes",
		zap.Int("queried", len(genes)), zap.Int("with_drugs", len(targets)))
	return targets, nil
}
