// Package resources provides file-backed access to a project's .fmu
// directory: the current resource files and their cached revisions.
// It is the loader and revision cache the diff core is composed with;
// the core itself never touches the filesystem.
package resources

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/equinor/fmu-settings-api/pkg/document"
	"github.com/equinor/fmu-settings-api/pkg/errors"
	"github.com/equinor/fmu-settings-api/pkg/logging"
	"github.com/equinor/fmu-settings-api/pkg/schema"
)

const (
	// DirName is the name of the settings directory inside a project.
	DirName = ".fmu"
	// cacheDirName holds cached revisions inside the settings directory.
	cacheDirName = "cache"
	// revisionExt is the file extension of cached revisions.
	revisionExt = ".json"
	// revisionIDFormat derives revision IDs from snapshot time.
	revisionIDFormat = "20060102T150405.000000000"
)

// Store reads and writes resources inside a project's .fmu directory.
type Store struct {
	root    string // the .fmu directory
	schemas *schema.Registry
	logger  *zerolog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces the snapshot clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store over the .fmu directory of the given project
// root. The directory is not required to exist yet.
func NewStore(projectRoot string, schemas *schema.Registry, opts ...Option) *Store {
	s := &Store{
		root:    filepath.Join(projectRoot, DirName),
		schemas: schemas,
		logger:  logging.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Path returns the path to the .fmu directory.
func (s *Store) Path() string {
	return s.root
}

// Load reads the current document of a resource kind.
func (s *Store) Load(kind string) (document.Document, error) {
	sch, err := s.schema(kind)
	if err != nil {
		return nil, err
	}
	return s.readDocument(filepath.Join(s.root, sch.File), kind)
}

// Save writes a document as the current state of a resource kind.
func (s *Store) Save(kind string, doc document.Document) error {
	sch, err := s.schema(kind)
	if err != nil {
		return err
	}
	return s.writeDocument(filepath.Join(s.root, sch.File), doc)
}

// ListRevisions returns the cached revision IDs of a resource kind,
// sorted oldest to newest. A resource with no cache directory has no
// revisions.
func (s *Store) ListRevisions(kind string) ([]string, error) {
	sch, err := s.schema(kind)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.cacheDir(sch))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, errors.WrapIO("read", s.cacheDir(sch), err)
	}

	revisions := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), revisionExt) {
			continue
		}
		revisions = append(revisions, strings.TrimSuffix(entry.Name(), revisionExt))
	}

	// Revision IDs are derived from snapshot time, so lexicographic
	// order is chronological order.
	sort.Strings(revisions)
	return revisions, nil
}

// Revision reads the cached document of a specific revision.
func (s *Store) Revision(kind, revisionID string) (document.Document, error) {
	sch, err := s.schema(kind)
	if err != nil {
		return nil, err
	}
	path, err := s.revisionPath(sch, kind, revisionID)
	if err != nil {
		return nil, err
	}

	doc, err := s.readDocument(path, kind)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.NewUnknownRevisionError(kind, revisionID)
		}
		return nil, err
	}
	return doc, nil
}

// Snapshot caches the current state of a resource and returns the new
// revision ID. Snapshotting a resource that has no current file is an
// error.
func (s *Store) Snapshot(kind string) (string, error) {
	sch, err := s.schema(kind)
	if err != nil {
		return "", err
	}

	doc, err := s.readDocument(filepath.Join(s.root, sch.File), kind)
	if err != nil {
		return "", err
	}

	revisionID := s.now().UTC().Format(revisionIDFormat)
	path, err := s.revisionPath(sch, kind, revisionID)
	if err != nil {
		return "", err
	}
	if err := s.writeDocument(path, doc); err != nil {
		return "", err
	}

	s.logger.Info().
		Str("resource", kind).
		Str("revision_id", revisionID).
		Msg("cache_revision_created")
	return revisionID, nil
}

// Restore overwrites the current state of a resource from a cached
// revision. The current state is snapshotted first (when present) so
// the restore itself can be undone.
func (s *Store) Restore(kind, revisionID string) error {
	sch, err := s.schema(kind)
	if err != nil {
		return err
	}

	restored, err := s.Revision(kind, revisionID)
	if err != nil {
		s.logger.Error().
			Str("resource", kind).
			Str("revision_id", revisionID).
			Err(err).
			Msg("cache_restore_failed")
		return err
	}

	current := filepath.Join(s.root, sch.File)
	if _, statErr := os.Stat(current); statErr == nil {
		if _, err := s.Snapshot(kind); err != nil {
			s.logger.Error().
				Str("resource", kind).
				Str("revision_id", revisionID).
				Err(err).
				Msg("cache_restore_failed")
			return err
		}
	}

	if err := s.writeDocument(current, restored); err != nil {
		s.logger.Error().
			Str("resource", kind).
			Str("revision_id", revisionID).
			Err(err).
			Msg("cache_restore_failed")
		return err
	}

	s.logger.Info().
		Str("resource", kind).
		Str("revision_id", revisionID).
		Msg("cache_revision_restored")
	return nil
}

// schema resolves a resource kind against the schema registry.
func (s *Store) schema(kind string) (*schema.Schema, error) {
	sch, ok := s.schemas.Schema(kind)
	if !ok {
		return nil, errors.NewValidationError("resource", kind,
			"resource kind is not supported")
	}
	return sch, nil
}

// cacheDir returns the revision directory of a resource.
func (s *Store) cacheDir(sch *schema.Schema) string {
	return filepath.Join(s.root, cacheDirName, sch.File)
}

// revisionPath resolves a revision ID to its file, rejecting IDs that
// would escape the cache directory.
func (s *Store) revisionPath(sch *schema.Schema, kind, revisionID string) (string, error) {
	if revisionID == "" || revisionID != filepath.Base(revisionID) || strings.ContainsAny(revisionID, "/\\") {
		return "", errors.NewValidationError("revision_id", revisionID,
			"revision ID must be a plain file name")
	}
	return filepath.Join(s.cacheDir(sch), revisionID+revisionExt), nil
}

// readDocument decodes a JSON resource file.
func (s *Store) readDocument(path, kind string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("resource", kind)
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return doc, nil
}

// writeDocument encodes a document to a JSON resource file, creating
// parent directories as needed.
func (s *Store) writeDocument(path string, doc document.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapParse("json", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
