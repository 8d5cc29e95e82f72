package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-git/go-billy/v5/memfs"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
)

// GitSpec locates a script inside a git repository. At most one of Rev, Tag
// or Branch may be set; with none the remote HEAD is used.
type GitSpec struct {
	URL    string
	Path   string
	Rev    string
	Tag    string
	Branch string
}

// Descriptor is the human-readable pin of the spec.
func (s GitSpec) Descriptor() string {
	switch {
	case strings.TrimSpace(s.Rev) != "":
		return strings.TrimSpace(s.Rev)
	case strings.TrimSpace(s.Tag) != "":
		return strings.TrimSpace(s.Tag)
	case strings.TrimSpace(s.Branch) != "":
		return strings.TrimSpace(s.Branch)
	default:
		return "HEAD"
	}
}

// FetchGitSource clones the repository into memory, checks out the pinned
// revision and reads the script at spec.Path. Nothing is written to disk.
func FetchGitSource(ctx context.Context, spec GitSpec) (Source, error) {
	url := strings.TrimSpace(spec.URL)
	if url == "" {
		return Source{}, fmt.Errorf("git source: missing repository url")
	}
	path := strings.TrimSpace(spec.Path)
	if path == "" {
		return Source{}, fmt.Errorf("git source %s: missing script path", url)
	}

	repo, err := git.CloneContext(ctx, memory.NewStorage(), memfs.New(), &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		return Source{}, fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveGitRevision(repo, spec)
	if err != nil {
		return Source{}, err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return Source{}, err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return Source{}, fmt.Errorf("git checkout %s: %w", spec.Descriptor(), err)
	}

	file, err := worktree.Filesystem.Open(strings.TrimPrefix(path, "/"))
	if err != nil {
		return Source{}, fmt.Errorf("git source %s@%s: open %s: %w", url, spec.Descriptor(), path, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return Source{}, fmt.Errorf("git source %s@%s: read %s: %w", url, spec.Descriptor(), path, err)
	}
	return Source{
		Name:      fmt.Sprintf("%s@%s:%s", url, spec.Descriptor(), path),
		Text:      string(data),
		StartLine: 1,
	}, nil
}

func resolveGitRevision(repo *git.Repository, spec GitSpec) (plumbing.Hash, error) {
	candidates, err := gitRevisionCandidates(spec)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	var lastErr error
	for _, rev := range candidates {
		hash, err := repo.ResolveRevision(rev)
		if err == nil {
			return *hash, nil
		}
		lastErr = err
	}
	return plumbing.ZeroHash, fmt.Errorf("resolve revision %s: %w", spec.Descriptor(), lastErr)
}

// gitRevisionCandidates lists the revisions tried in order. A fresh clone only
// has a local branch for the default branch, so other branches resolve through
// their remote-tracking ref.
func gitRevisionCandidates(spec GitSpec) ([]plumbing.Revision, error) {
	rev := strings.TrimSpace(spec.Rev)
	tag := strings.TrimSpace(spec.Tag)
	branch := strings.TrimSpace(spec.Branch)
	set := 0
	for _, pin := range []string{rev, tag, branch} {
		if pin != "" {
			set++
		}
	}
	if set > 1 {
		return nil, errors.New("git source: set at most one of rev, tag or branch")
	}
	switch {
	case rev != "":
		return []plumbing.Revision{plumbing.Revision(rev)}, nil
	case tag != "":
		return []plumbing.Revision{plumbing.Revision("refs/tags/" + tag)}, nil
	case branch != "":
		return []plumbing.Revision{
			plumbing.Revision("refs/heads/" + branch),
			plumbing.Revision("refs/remotes/origin/" + branch),
		}, nil
	default:
		return []plumbing.Revision{plumbing.Revision(plumbing.HEAD)}, nil
	}
}
