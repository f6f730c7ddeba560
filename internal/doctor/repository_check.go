package doctor

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// RepositoryCheck verifies the configured path is discoverable as a git
// repository. A blank RepoPath means doctor ran outside any discoverable
// repository; this check reports that as OK. The airev command and its
// export subcommand do not run without a repository: they exit with an
// error when none is found.
type RepositoryCheck struct {
	BaseCheck
}

func NewRepositoryCheck() *RepositoryCheck {
	return &RepositoryCheck{
		BaseCheck: BaseCheck{
			CheckName:        "repository-discoverable",
			CheckDescription: "Check the working directory resolves to a git repository",
			CheckCategory:    CategoryRepository,
		},
	}
}

func (c *RepositoryCheck) Run(ctx *Context) *Result {
	if ctx.RepoPath == "" {
		return &Result{Status: StatusOK, Message: "no repository path configured (git features inert)", Category: c.CheckCategory}
	}

	repo, err := git2go.OpenRepository(ctx.RepoPath)
	if err != nil {
		return &Result{
			Status:   StatusWarning,
			Message:  "not inside a discoverable git repository",
			Detail:   err.Error(),
			Category: c.CheckCategory,
		}
	}
	defer repo.Free()

	return &Result{
		Status:   StatusOK,
		Message:  fmt.Sprintf("repository discoverable at %s", ctx.RepoPath),
		Category: c.CheckCategory,
	}
}
