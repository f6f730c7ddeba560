// Package gitworker owns a libgit2 repository handle on a dedicated OS
// thread for the handle's entire lifetime. A *git2go.Repository wraps a
// C pointer: it must be opened and used on the same OS thread it was
// created on, so the handle is never shared — only owned payloads
// produced from it are. This is the teacher's own exec.Command-per-call
// shape (internal/git/git_test.go) generalized one level: instead of
// shelling to `git` for each query, a single long-lived libgit2 handle
// answers requests from a message queue, which is what lets the worker
// also run the chroma-based syntax highlighting pass off the render
// path without leaving data races behind.
package gitworker

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/airev/airev/internal/domain"
)

// Request asks the worker to (re)compute a diff for the given mode.
type Request struct {
	Mode domain.DiffMode
	Seq  uint64
}

// Result is the owned, fully-computed answer to a Request.
type Result struct {
	Payload *domain.DiffPayload
	Err     error
	Seq     uint64
}

// Sink receives Results off the worker goroutine. Implementations must be
// safe to call from a non-UI goroutine; the bubbletea-backed UI typically
// passes (*tea.Program).Send.
type Sink func(Result)

// Handle is the client-facing handle returned by Spawn. It is safe to
// call Request from any goroutine; results arrive asynchronously via the
// Sink passed to Spawn.
type Handle struct {
	requests chan Request
	done     chan struct{}
}

// Spawn opens the repository at repoPath inside a freshly-created,
// OS-thread-locked goroutine and returns a Handle for submitting diff
// requests. The repository is never opened, and never touched, from any
// other goroutine.
func Spawn(repoPath string, sink Sink) (*Handle, error) {
	h := &Handle{
		requests: make(chan Request, 16),
		done:     make(chan struct{}),
	}
	started := make(chan error, 1)
	go h.run(repoPath, sink, started)
	if err := <-started; err != nil {
		return nil, err
	}
	return h, nil
}

// Request enqueues a diff computation. It never blocks the caller beyond
// the request channel's buffer; a full buffer (an unusually long backlog)
// blocks the caller, the same pressure-relief the teacher applies to its
// own bounded channels elsewhere in the daemon package.
func (h *Handle) Request(mode domain.DiffMode, seq uint64) {
	h.requests <- Request{Mode: mode, Seq: seq}
}

// Close stops accepting new requests and waits for the worker goroutine
// to drain its queue and exit.
func (h *Handle) Close() {
	close(h.requests)
	<-h.done
}

// ComputeDiffSync opens repoPath, computes a single diff for mode, and
// closes the repository before returning. It exists for callers that
// are themselves already single-threaded and short-lived — the agent
// bridge answers one JSON-RPC call at a time and never holds a
// repository handle between calls, unlike the UI's long-lived Handle —
// so there is no need to pay for a dedicated worker goroutine here.
func ComputeDiffSync(repoPath string, mode domain.DiffMode) (*domain.DiffPayload, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return nil, fmt.Errorf("git-failure: open repository at %s: %w", repoPath, err)
	}
	defer repo.Free()

	w := &worker{repo: repo}
	return w.loadDiff(mode)
}

func (h *Handle) run(repoPath string, sink Sink, started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		started <- fmt.Errorf("git-failure: open repository at %s: %w", repoPath, err)
		return
	}
	defer repo.Free()
	started <- nil

	w := &worker{repo: repo}
	for req := range h.requests {
		payload, err := w.loadDiff(req.Mode)
		sink(Result{Payload: payload, Err: err, Seq: req.Seq})
	}
}

// worker holds the per-goroutine state used while answering requests. It
// is never accessed from more than one goroutine, so nothing here needs
// synchronization.
type worker struct {
	repo *git2go.Repository
}

// DetectMainline opens repoPath and reports the repository's mainline
// branch: the branch origin/HEAD points at if a remote is configured,
// falling back to a local "main" then "master" branch. --branch mode
// diffs the current branch against whichever of these is found first.
func DetectMainline(repoPath string) (string, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	repo, err := git2go.OpenRepository(repoPath)
	if err != nil {
		return "", fmt.Errorf("git-failure: open repository at %s: %w", repoPath, err)
	}
	defer repo.Free()

	if ref, err := repo.References.Lookup("refs/remotes/origin/HEAD"); err == nil {
		defer ref.Free()
		if target := ref.SymbolicTarget(); target != "" {
			return strings.TrimPrefix(target, "refs/remotes/origin/"), nil
		}
	}

	for _, candidate := range []string{"main", "master"} {
		if _, err := repo.References.Lookup("refs/heads/" + candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("git-failure: could not determine mainline branch for %s", repoPath)
}

// DiscoverRepoRoot walks upward from startDir looking for a .git entry,
// the way `git rev-parse --show-toplevel` does, and returns the
// repository's working directory. It returns an error if startDir is not
// inside a git repository.
func DiscoverRepoRoot(startDir string) (string, error) {
	gitDir, err := git2go.Discover(startDir, false, nil)
	if err != nil {
		return "", fmt.Errorf("git-failure: discover repository from %s: %w", startDir, err)
	}
	repo, err := git2go.OpenRepository(gitDir)
	if err != nil {
		return "", fmt.Errorf("git-failure: open discovered repository at %s: %w", gitDir, err)
	}
	defer repo.Free()
	root := repo.Workdir()
	if root == "" {
		return "", fmt.Errorf("git-failure: repository at %s has no working directory (bare repo)", gitDir)
	}
	return filepath.Clean(root), nil
}
