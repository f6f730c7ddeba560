package gitworker

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/airev/airev/internal/domain"
)

// loadDiff resolves mode to a concrete git2go.Diff and extracts it into
// an owned domain.DiffPayload. A repository that cannot answer the
// request (no commits yet, missing ref) produces an empty payload rather
// than an error for unstaged/staged; branch and range modes return an
// error when a named ref cannot be resolved, because silently diffing
// against an empty tree is the wrong semantics for those modes.
func (w *worker) loadDiff(mode domain.DiffMode) (*domain.DiffPayload, error) {
	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("git-failure: default diff options: %w", err)
	}

	var diff *git2go.Diff
	switch mode.Kind {
	case domain.DiffModeUnstaged:
		diff, err = w.diffUnstaged(&opts)
	case domain.DiffModeStaged:
		diff, err = w.diffStaged(&opts)
	case domain.DiffModeBranch:
		diff, err = w.diffTreeToTree(mode.Base, mode.Head, &opts)
	case domain.DiffModeRange:
		diff, err = w.diffTreeToTree(mode.Base, mode.Head, &opts)
	default:
		return nil, fmt.Errorf("unknown diff mode %q", mode.Kind)
	}
	if err != nil {
		return emptyOrError(mode, err)
	}
	defer diff.Free()

	return extract(mode, diff)
}

// emptyOrError decides, per spec, whether a failure to compute a diff
// should degrade to an empty placeholder payload or propagate as an
// error. Unstaged/staged diffs degrade (a brand new repo with no commits
// yet has no HEAD, which is an expected, not exceptional, state); branch
// and range comparisons must fail loudly, since an empty-tree fallback
// there would silently show the wrong diff.
func emptyOrError(mode domain.DiffMode, err error) (*domain.DiffPayload, error) {
	switch mode.Kind {
	case domain.DiffModeUnstaged, domain.DiffModeStaged:
		return &domain.DiffPayload{Mode: mode}, nil
	default:
		return nil, fmt.Errorf("git-failure: %w", err)
	}
}

func (w *worker) diffUnstaged(opts *git2go.DiffOptions) (*git2go.Diff, error) {
	index, err := w.repo.Index()
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	defer index.Free()
	return w.repo.DiffIndexToWorkdir(index, opts)
}

func (w *worker) diffStaged(opts *git2go.DiffOptions) (*git2go.Diff, error) {
	headTree, err := w.headTree()
	if err != nil {
		// No HEAD yet (a brand-new repo): everything staged is "added"
		// relative to an empty tree, which is the correct semantics here
		// (unlike branch/range comparison, staged always has a well
		// defined empty-tree fallback: "staged vs nothing committed").
		headTree = nil
	}
	index, err := w.repo.Index()
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	defer index.Free()
	return w.repo.DiffTreeToIndex(headTree, index, opts)
}

func (w *worker) headTree() (*git2go.Tree, error) {
	head, err := w.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	defer head.Free()
	obj, err := head.Peel(git2go.ObjectCommit)
	if err != nil {
		return nil, fmt.Errorf("peel HEAD to commit: %w", err)
	}
	defer obj.Free()
	commit, err := obj.AsCommit()
	if err != nil {
		return nil, fmt.Errorf("HEAD is not a commit: %w", err)
	}
	defer commit.Free()
	return commit.Tree()
}

// diffTreeToTree resolves base and head (branch names, tags, or commit
// SHAs) to trees and diffs tree(base) against tree(head). It deliberately
// never falls back to an empty tree on resolution failure: for branch
// comparison and commit-range modes that fallback produces the wrong
// diff (everything looks "added"), so a resolution failure is reported
// as an error instead.
func (w *worker) diffTreeToTree(base, head string, opts *git2go.DiffOptions) (*git2go.Diff, error) {
	baseTree, err := w.resolveTree(base)
	if err != nil {
		return nil, fmt.Errorf("resolve base ref %q: %w", base, err)
	}
	defer baseTree.Free()

	headTree, err := w.resolveTree(head)
	if err != nil {
		return nil, fmt.Errorf("resolve head ref %q: %w", head, err)
	}
	defer headTree.Free()

	return w.repo.DiffTreeToTree(baseTree, headTree, opts)
}

// resolveTree resolves a ref-like string (branch, tag, or commit SHA) to
// its tree, trying a revparse first and falling back to a direct branch
// lookup for bare branch names that revparse might not resolve uniquely.
func (w *worker) resolveTree(ref string) (*git2go.Tree, error) {
	obj, err := w.repo.RevparseSingle(ref)
	if err != nil {
		branch, berr := w.repo.LookupBranch(ref, git2go.BranchLocal)
		if berr != nil {
			return nil, fmt.Errorf("no such ref: %w", err)
		}
		defer branch.Free()
		commitObj, cerr := branch.Peel(git2go.ObjectCommit)
		if cerr != nil {
			return nil, fmt.Errorf("peel branch to commit: %w", cerr)
		}
		defer commitObj.Free()
		obj = commitObj
	} else {
		defer obj.Free()
	}
	commit, err := obj.AsCommit()
	if err != nil {
		peeled, perr := obj.Peel(git2go.ObjectCommit)
		if perr != nil {
			return nil, fmt.Errorf("ref does not resolve to a commit: %w", err)
		}
		defer peeled.Free()
		commit, err = peeled.AsCommit()
		if err != nil {
			return nil, fmt.Errorf("ref does not resolve to a commit: %w", err)
		}
	}
	defer commit.Free()
	return commit.Tree()
}
