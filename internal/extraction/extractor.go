package extraction

import (
	"context"

	"tradelens/pkg/contracts/domain"
)

// Tally counts classified rows by role.
type Tally map[Role]int

// Extractor runs the section machine over a tokenized document.
// It holds no parse state and is safe for concurrent use.
type Extractor struct {
	classifier Classifier
}

// New returns an extractor using the given classifier.
func New(classifier Classifier) *Extractor {
	return &Extractor{classifier: classifier}
}

// Extract consumes every row and returns the trade history.
func (e *Extractor) Extract(rows []domain.Row) *domain.TradeHistory {
	history, _, _ := e.ExtractContext(context.Background(), rows)
	return history
}

// ExtractContext is Extract with early stop: the context is checked between
// rows and its error returned together with the partial result.
func (e *Extractor) ExtractContext(ctx context.Context, rows []domain.Row) (*domain.TradeHistory, Tally, error) {
	m := NewMachine()
	tally := make(Tally)
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return m.Result(), tally, err
		}
		classified := e.classifier.Classify(row, m.State().View())
		tally[classified.Role]++
		m.Step(classified)
	}
	return m.Result(), tally, nil
}
