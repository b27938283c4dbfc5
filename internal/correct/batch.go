package correct

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CorrectBatch corrects each sentence independently and returns one Result
// per input, in input order. A failed item never aborts the rest: its slot
// holds a placeholder with empty corrections and a diagnostic message in
// CorrectSentence. Items run concurrently up to the configured limit; results
// land at their input index regardless of completion order.
func (s *Service) CorrectBatch(ctx context.Context, sentences []string) []*Result {
	results := make([]*Result, len(sentences))

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)

	for i, sentence := range sentences {
		g.Go(func() error {
			result, err := s.Correct(ctx, sentence)
			if err != nil {
				s.logger.Warn("batch item failed", "index", i, "error", err)
				result = errorResult(sentence, err)
			}
			results[i] = result
			return nil
		})
	}

	// Workers never return errors; failures become placeholder results.
	_ = g.Wait()
	return results
}

// errorResult builds the in-line placeholder for a failed batch item.
func errorResult(sentence string, err error) *Result {
	return &Result{
		Corrections:      []Correction{},
		CorrectSentence:  "Error: " + err.Error(),
		OriginalSentence: sentence,
	}
}
