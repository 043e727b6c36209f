// Package oracle defines the optional ML classifier collaborator spec.md 1
// lists alongside the compiler front-end and declaration extractor as
// deliberately out of core scope. There is no reference implementation for
// it anywhere in the corpus; it exists purely as a narrow interface the
// orchestrator may consult before committing to synthesize a target.
package oracle

import "context"

// Oracle classifies a label (for example, a candidate function name) and
// reports whether the orchestrator should proceed with it.
type Oracle interface {
	Classify(ctx context.Context, label string) (bool, error)
}

// AlwaysProceed is the zero-configuration Oracle: every label is accepted.
// A nil Oracle on the orchestrator has the same effect; this type exists so
// callers that want an explicit, named no-op don't need to special-case
// nil themselves.
type AlwaysProceed struct{}

func (AlwaysProceed) Classify(ctx context.Context, label string) (bool, error) {
	return true, nil
}
