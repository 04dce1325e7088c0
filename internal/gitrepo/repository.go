// Package gitrepo provides the git-backed storage adapter for wiki pages.
package gitrepo

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// Entry describes a single file in the repository's current tree.
type Entry struct {
	Name   string
	BlobID string
	Data   []byte
}

// Options controls how the repository is opened.
type Options struct {
	Path        string
	AuthorName  string
	AuthorEmail string
	Logger      *logrus.Logger
}

// Repository wraps a go-git repository rooted at a working directory.
type Repository struct {
	repo        *git.Repository
	dir         string
	authorName  string
	authorEmail string
	logger      *logrus.Logger
}

// Open opens the git repository at the configured path, initialising a fresh
// one when the directory does not contain a repository yet.
func Open(opts Options) (*Repository, error) {
	if opts.Path == "" {
		return nil, eris.New("repository path is required")
	}
	if opts.AuthorName == "" {
		return nil, eris.New("commit author name is required")
	}
	if opts.AuthorEmail == "" {
		return nil, eris.New("commit author email is required")
	}

	repo, err := git.PlainOpen(opts.Path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if mkErr := os.MkdirAll(opts.Path, 0o755); mkErr != nil {
			return nil, eris.Wrapf(mkErr, "creating repository directory: %s", opts.Path)
		}
		repo, err = git.PlainInit(opts.Path, false)
		if err != nil {
			return nil, eris.Wrapf(err, "initialising repository: %s", opts.Path)
		}
		if opts.Logger != nil {
			opts.Logger.WithField("path", opts.Path).Info("initialised empty wiki repository")
		}
	} else if err != nil {
		return nil, eris.Wrapf(err, "opening repository: %s", opts.Path)
	}

	dir, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolving repository path: %s", opts.Path)
	}

	return &Repository{
		repo:        repo,
		dir:         dir,
		authorName:  opts.AuthorName,
		authorEmail: opts.AuthorEmail,
		logger:      opts.Logger,
	}, nil
}

// WorkingDir returns the root directory file paths are resolved against.
func (r *Repository) WorkingDir() string {
	return r.dir
}

// TreeEntries lists the top-level file entries of the current tree. A
// repository without a commit yet yields an empty listing.
func (r *Repository) TreeEntries() ([]Entry, error) {
	tree, err := r.headTree()
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, nil
	}

	var entries []Entry
	err = tree.Files().ForEach(func(f *object.File) error {
		// Nested paths are not wiki pages.
		if strings.Contains(f.Name, "/") {
			return nil
		}

		content, readErr := readFileContent(f)
		if readErr != nil {
			return eris.Wrapf(readErr, "reading file: %s", f.Name)
		}

		entries = append(entries, Entry{
			Name:   f.Name,
			BlobID: f.Hash.String(),
			Data:   content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// ReadBlob returns the entry for the given path in the current tree, or nil
// when the path is absent.
func (r *Repository) ReadBlob(path string) (*Entry, error) {
	tree, err := r.headTree()
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, nil
	}

	f, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "looking up file: %s", path)
	}

	content, err := readFileContent(f)
	if err != nil {
		return nil, eris.Wrapf(err, "reading file: %s", path)
	}

	return &Entry{Name: f.Name, BlobID: f.Hash.String(), Data: content}, nil
}

// WriteFile writes data into the working copy.
func (r *Repository) WriteFile(path string, data []byte) error {
	target := filepath.Join(r.dir, path)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return eris.Wrapf(err, "writing file: %s", path)
	}
	return nil
}

// Stage adds a path to the pending commit index.
func (r *Repository) Stage(path string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return eris.Wrap(err, "obtaining worktree")
	}

	if _, err := worktree.Add(path); err != nil {
		return eris.Wrapf(err, "staging file: %s", path)
	}
	return nil
}

// Commit records the staged index as a new revision and returns its hash.
func (r *Repository) Commit(message string) (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", eris.Wrap(err, "obtaining worktree")
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.authorName,
			Email: r.authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", eris.Wrapf(err, "committing: %s", message)
	}

	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{
			"commit":  hash.String(),
			"message": message,
		}).Debug("recorded commit")
	}

	return hash.String(), nil
}

func (r *Repository) headTree() (*object.Tree, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "resolving HEAD")
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, eris.Wrap(err, "loading HEAD commit")
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, eris.Wrap(err, "loading HEAD tree")
	}

	return tree, nil
}

func readFileContent(f *object.File) ([]byte, error) {
	reader, err := f.Reader()
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
