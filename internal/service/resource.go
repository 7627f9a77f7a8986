// Package service implements the application services behind the HTTP
// handlers: cache revision listing, diff previews, restores, and
// mapping queries over an open project's .fmu directory.
package service

import (
	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/internal/resources"
	"github.com/equinor/fmu-settings-api/pkg/diff"
	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/logging"
	"github.com/equinor/fmu-settings-api/pkg/schema"
)

// ResourceService handles project resource access: the current state of
// a resource, its cached revisions, and restore previews.
type ResourceService struct {
	store   *resources.Store
	schemas *schema.Registry
	logger  *zerolog.Logger
}

// NewResourceService creates a resource service over a project store.
func NewResourceService(store *resources.Store, schemas *schema.Registry, logger *zerolog.Logger) *ResourceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResourceService{store: store, schemas: schemas, logger: logger}
}

// ListCacheRevisions lists the cache revisions of a resource, oldest to
// newest.
func (s *ResourceService) ListCacheRevisions(kind string) ([]string, error) {
	return s.store.ListRevisions(kind)
}

// GetCacheDiff compares the current resource against a cache revision
// and returns the entries describing what restoring it would change.
// The identity registry and field order come from the resource schema.
func (s *ResourceService) GetCacheDiff(kind, revisionID string) ([]diff.Entry, error) {
	sch, ok := s.schemas.Schema(kind)
	if !ok {
		return nil, errors.NewValidationError("resource", kind,
			"resource kind is not supported")
	}

	current, err := s.store.Load(kind)
	if err != nil {
		return nil, err
	}
	selected, err := s.store.Revision(kind, revisionID)
	if err != nil {
		return nil, err
	}

	differ := diff.NewService(sch.Identities(), diff.WithOrder(sch))
	return differ.Diff(current, selected)
}

// GetCacheContent returns the document stored in a cache revision.
func (s *ResourceService) GetCacheContent(kind, revisionID string) (document.Document, error) {
	return s.store.Revision(kind, revisionID)
}

// RestoreFromCache restores a resource from a cache revision. The
// current state is cached first to enable undo.
func (s *ResourceService) RestoreFromCache(kind, revisionID string) error {
	return s.store.Restore(kind, revisionID)
}
