package ledger

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// suggestDoc is the indexed shape of one chart account. Terms carries the
// account path with separators broken into words so "Expenses:Food:Dining"
// is findable from a description mentioning "dining".
type suggestDoc struct {
	Account string `json:"account"`
	Terms   string `json:"terms"`
}

// Suggestion is one ranked account candidate for a Manual Review row.
type Suggestion struct {
	Account string
	Score   float64
}

// SuggestIndex is an in-memory full-text index over the chart of accounts.
// It backs the review workflow: when classification falls through to the
// Manual Review sentinel, the index proposes plausible accounts instead of
// leaving the reviewer with a blank.
type SuggestIndex struct {
	index bleve.Index
}

var accountSeparators = strings.NewReplacer(":", " ", "&", " ", "/", " ")

// NewSuggestIndex indexes the given account names in memory.
func NewSuggestIndex(accountNames []string) (*SuggestIndex, error) {
	index, err := bleve.NewMemOnly(buildSuggestMapping())
	if err != nil {
		return nil, fmt.Errorf("create suggestion index: %w", err)
	}

	batch := index.NewBatch()
	for _, name := range accountNames {
		doc := suggestDoc{
			Account: name,
			Terms:   accountSeparators.Replace(name),
		}
		if err := batch.Index(name, doc); err != nil {
			return nil, fmt.Errorf("index account %q: %w", name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("commit suggestion batch: %w", err)
	}

	return &SuggestIndex{index: index}, nil
}

func buildSuggestMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = simple.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("account", textField)
	docMapping.AddFieldMappingsAt("terms", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name
	return indexMapping
}

// Suggest returns up to limit account candidates ranked by relevance to the
// description. An empty result is normal for descriptions that share no
// vocabulary with the chart.
func (si *SuggestIndex) Suggest(description string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 3
	}

	query := bleve.NewMatchQuery(description)
	query.SetFuzziness(1)

	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	res, err := si.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search suggestion index: %w", err)
	}

	suggestions := make([]Suggestion, 0, len(res.Hits))
	for _, hit := range res.Hits {
		suggestions = append(suggestions, Suggestion{Account: hit.ID, Score: hit.Score})
	}
	return suggestions, nil
}

// Close releases the index.
func (si *SuggestIndex) Close() error {
	return si.index.Close()
}
