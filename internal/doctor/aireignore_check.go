package doctor

import (
	"fmt"
	"os"

	gitignore "github.com/sabhiram/go-gitignore"
)

// AireignoreCheck verifies that a present .aireignore file parses as a
// valid set of gitignore-style patterns. A missing file is fine: the
// watcher and file-tree walk fall back to the built-in default patterns.
type AireignoreCheck struct {
	BaseCheck
}

func NewAireignoreCheck() *AireignoreCheck {
	return &AireignoreCheck{
		BaseCheck: BaseCheck{
			CheckName:        "aireignore-parses",
			CheckDescription: "Check .aireignore parses as gitignore-style patterns",
			CheckCategory:    CategoryConfig,
		},
	}
}

func (c *AireignoreCheck) Run(ctx *Context) *Result {
	if ctx.AireignorePath == "" {
		return &Result{Status: StatusOK, Message: "no .aireignore configured (using defaults)", Category: c.CheckCategory}
	}
	if _, err := os.Stat(ctx.AireignorePath); os.IsNotExist(err) {
		return &Result{Status: StatusOK, Message: ".aireignore not present (using defaults)", Category: c.CheckCategory}
	}

	if _, err := gitignore.CompileIgnoreFile(ctx.AireignorePath); err != nil {
		return &Result{
			Status:   StatusError,
			Message:  ".aireignore failed to parse",
			Detail:   err.Error(),
			Category: c.CheckCategory,
		}
	}

	return &Result{
		Status:   StatusOK,
		Message:  fmt.Sprintf(".aireignore at %s parses cleanly", ctx.AireignorePath),
		Category: c.CheckCategory,
	}
}
