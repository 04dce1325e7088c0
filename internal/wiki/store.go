package wiki

import (
	"context"
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"gitwiki/app/internal/gitrepo"
)

// Repository defines the version-control capabilities the store depends on.
type Repository interface {
	TreeEntries() ([]gitrepo.Entry, error)
	ReadBlob(path string) (*gitrepo.Entry, error)
	WriteFile(path string, data []byte) error
	Stage(path string) error
	Commit(message string) (string, error)
	WorkingDir() string
}

var _ Repository = (*gitrepo.Repository)(nil)

// ErrPageNotFound indicates a page name has no file in the current tree.
var ErrPageNotFound = eris.New("page not found")

// Classification describes whether a page name resolves to a stored page.
// The values double as the CSS classes used when rendering links.
type Classification string

const (
	// ClassificationExists marks names backed by a file in the current tree.
	ClassificationExists Classification = "exists"
	// ClassificationUnknown marks names with no backing file.
	ClassificationUnknown Classification = "unknown"
)

// Store resolves page names against the repository's current tree and owns
// the write-stage-commit sequence for edits.
type Store struct {
	repo      Repository
	extension string
	logger    *logrus.Logger
	sentryHub *sentry.Hub

	// commits serializes the write-stage-commit sequence so two concurrent
	// edits cannot interleave their staged files into each other's commits.
	commits sync.Mutex
}

// NewStore wires the page store with its repository dependency.
func NewStore(repo Repository, extension string, logger *logrus.Logger, hub *sentry.Hub) (*Store, error) {
	if repo == nil {
		return nil, eris.New("repository is required")
	}
	if !strings.HasPrefix(extension, ".") || extension == "." {
		return nil, eris.Errorf("invalid page extension: %q", extension)
	}

	return &Store{
		repo:      repo,
		extension: extension,
		logger:    logger,
		sentryHub: hub,
	}, nil
}

// FindAll returns one page per file entry in the current tree, in the
// backend's listing order. An empty repository yields an empty slice.
func (s *Store) FindAll(ctx context.Context) ([]*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "listing pages")
	}

	entries, err := s.repo.TreeEntries()
	if err != nil {
		s.recordError(nil, err, "listing tree entries")
		return nil, eris.Wrap(err, "listing pages")
	}

	pages := make([]*Page, 0, len(entries))
	for _, entry := range entries {
		pages = append(pages, &Page{
			Name:    s.pageName(entry.Name),
			Content: string(entry.Data),
			blobID:  entry.BlobID,
		})
	}

	return pages, nil
}

// Find returns the page stored under the given name, or an error wrapping
// ErrPageNotFound when no matching file exists in the current tree.
func (s *Store) Find(ctx context.Context, name string) (*Page, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, eris.New("page name is required")
	}
	if err := validatePageName(trimmed); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, eris.Wrapf(err, "finding page: %s", trimmed)
	}

	entry, err := s.repo.ReadBlob(s.pagePath(trimmed))
	if err != nil {
		s.recordError(logrus.Fields{"page": trimmed}, err, "reading page blob")
		return nil, eris.Wrapf(err, "finding page: %s", trimmed)
	}
	if entry == nil {
		return nil, eris.Wrapf(ErrPageNotFound, "page: %s", trimmed)
	}

	return &Page{
		Name:    trimmed,
		Content: string(entry.Data),
		blobID:  entry.BlobID,
	}, nil
}

// FindOrCreate returns the stored page when it exists, otherwise a transient
// empty page that is not persisted until its first effective save.
func (s *Store) FindOrCreate(ctx context.Context, name string) (*Page, error) {
	page, err := s.Find(ctx, name)
	if err == nil {
		return page, nil
	}

	if eris.Is(err, ErrPageNotFound) {
		return &Page{Name: strings.TrimSpace(name)}, nil
	}

	return nil, err
}

// Classify reports whether the name resolves to a stored page. It never
// fails: repository errors degrade to ClassificationUnknown and are logged.
func (s *Store) Classify(ctx context.Context, name string) Classification {
	_, err := s.Find(ctx, name)
	if err == nil {
		return ClassificationExists
	}

	if !eris.Is(err, ErrPageNotFound) {
		s.recordError(logrus.Fields{"page": name}, err, "classifying page")
	}

	return ClassificationUnknown
}

// UpdateContent persists new content for the page as a single commit. Equal
// content is a no-op; no commit is produced.
func (s *Store) UpdateContent(ctx context.Context, page *Page, newContent string) error {
	if page == nil {
		return eris.New("page is nil")
	}
	if strings.TrimSpace(page.Name) == "" {
		return eris.New("page name is required")
	}
	if err := validatePageName(page.Name); err != nil {
		return err
	}

	if newContent == page.Content {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return eris.Wrapf(err, "updating page: %s", page.Name)
	}

	message := "Updated " + page.Name
	if page.IsNew() {
		message = "Created " + page.Name
	}

	path := s.pagePath(page.Name)

	s.commits.Lock()
	defer s.commits.Unlock()

	if err := s.repo.WriteFile(path, []byte(newContent)); err != nil {
		s.recordError(logrus.Fields{"page": page.Name}, err, "writing page file")
		return eris.Wrapf(err, "writing page: %s", page.Name)
	}

	if err := s.repo.Stage(path); err != nil {
		s.recordError(logrus.Fields{"page": page.Name}, err, "staging page file")
		return eris.Wrapf(err, "staging page: %s", page.Name)
	}

	commit, err := s.repo.Commit(message)
	if err != nil {
		s.recordError(logrus.Fields{"page": page.Name}, err, "committing page edit")
		return eris.Wrapf(err, "committing page: %s", page.Name)
	}

	page.Content = newContent
	if entry, readErr := s.repo.ReadBlob(path); readErr == nil && entry != nil {
		page.blobID = entry.BlobID
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"page":    page.Name,
			"commit":  commit,
			"message": message,
		}).Info("page saved")
	}

	return nil
}

// validatePageName rejects names that would resolve to a path outside the
// repository's flat top-level file layout.
func validatePageName(name string) error {
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return eris.Errorf("invalid page name: %q", name)
	}
	return nil
}

func (s *Store) pagePath(name string) string {
	return name + s.extension
}

// pageName strips the configured extension from a stored file name, exactly
// once. Files without the extension keep their full name.
func (s *Store) pageName(fileName string) string {
	return strings.TrimSuffix(fileName, s.extension)
}

func (s *Store) recordError(fields logrus.Fields, err error, message string) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
		entry.Error(message)
	}

	if s.sentryHub != nil {
		s.sentryHub.CaptureException(err)
	}
}
