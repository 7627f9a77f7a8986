package diff

import (
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/identity"
)

// Service orchestrates full document comparisons. It is a pure function
// of its two inputs and the injected identity registry: the same inputs
// always produce the same entries, so repeated preview requests for the
// same revision render identically. It performs no I/O; resolving the
// current resource and the cached revision is the caller's concern.
type Service struct {
	walker *Walker
}

// NewService creates a diff service over the given identity registry.
func NewService(registry identity.Registry, opts ...WalkerOption) *Service {
	return &Service{walker: NewWalker(registry, opts...)}
}

// Diff compares the current document against a selected revision and
// returns the ordered entries describing what restoring the revision
// would change. Comparing a document against itself returns no entries.
func (s *Service) Diff(current, selected document.Document) ([]Entry, error) {
	return s.walker.Walk(current, selected)
}
