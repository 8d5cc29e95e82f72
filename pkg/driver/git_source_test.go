package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type gitFixture struct {
	dir  string
	repo *git.Repository
}

func newGitFixture(t *testing.T) *gitFixture {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return &gitFixture{dir: dir, repo: repo}
}

func (f *gitFixture) commit(t *testing.T, rel, contents, message string) plumbing.Hash {
	t.Helper()
	path := filepath.Join(f.dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	worktree, err := f.repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if _, err := worktree.Add(filepath.ToSlash(rel)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Lox CLI",
			Email: "lox@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash
}

func TestFetchGitSourceResolvesPins(t *testing.T) {
	fixture := newGitFixture(t)
	first := fixture.commit(t, "scripts/hello.lox", "print \"v1\";\n", "first")
	if _, err := fixture.repo.CreateTag("v1", first, nil); err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	fixture.commit(t, "scripts/hello.lox", "print \"v2\";\n", "second")

	ctx := context.Background()

	head, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir, Path: "scripts/hello.lox"})
	if err != nil {
		t.Fatalf("fetch HEAD: %v", err)
	}
	if head.Text != "print \"v2\";\n" {
		t.Fatalf("expected HEAD contents, got %q", head.Text)
	}
	if !strings.HasSuffix(head.Name, "@HEAD:scripts/hello.lox") || head.StartLine != 1 {
		t.Fatalf("unexpected source %#v", head)
	}

	tagged, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir, Path: "scripts/hello.lox", Tag: "v1"})
	if err != nil {
		t.Fatalf("fetch tag: %v", err)
	}
	if tagged.Text != "print \"v1\";\n" {
		t.Fatalf("expected tagged contents, got %q", tagged.Text)
	}

	pinned, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir, Path: "scripts/hello.lox", Rev: first.String()})
	if err != nil {
		t.Fatalf("fetch rev: %v", err)
	}
	if pinned.Text != tagged.Text {
		t.Fatalf("expected rev and tag to agree, got %q", pinned.Text)
	}
}

func TestFetchGitSourceErrors(t *testing.T) {
	fixture := newGitFixture(t)
	fixture.commit(t, "main.lox", "print 1;\n", "init")
	ctx := context.Background()

	if _, err := FetchGitSource(ctx, GitSpec{Path: "main.lox"}); err == nil {
		t.Fatalf("expected missing url error")
	}
	if _, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir}); err == nil {
		t.Fatalf("expected missing path error")
	}
	if _, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir, Path: "missing.lox"}); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := FetchGitSource(ctx, GitSpec{URL: fixture.dir, Path: "main.lox", Tag: "nope"}); err == nil || !strings.Contains(err.Error(), "resolve revision nope") {
		t.Fatalf("expected unresolved tag error, got %v", err)
	}
}

func TestGitRevisionCandidates(t *testing.T) {
	revs, err := gitRevisionCandidates(GitSpec{Branch: "dev"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(revs) != 2 || revs[0] != "refs/heads/dev" || revs[1] != "refs/remotes/origin/dev" {
		t.Fatalf("unexpected branch candidates %v", revs)
	}
	revs, _ = gitRevisionCandidates(GitSpec{})
	if len(revs) != 1 || revs[0] != "HEAD" {
		t.Fatalf("unexpected default candidates %v", revs)
	}
	if _, err := gitRevisionCandidates(GitSpec{Rev: "abc", Tag: "v1"}); err == nil {
		t.Fatalf("expected conflicting pins to fail")
	}
}
