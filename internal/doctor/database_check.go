package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/airev/airev/internal/store"
)

// DatabaseCheck verifies the session database file, if one exists, opens
// cleanly and migrates to the binary's supported schema version. A
// missing database file is not an error: it means no session has
// persisted anything yet.
type DatabaseCheck struct {
	BaseCheck
}

func NewDatabaseCheck() *DatabaseCheck {
	return &DatabaseCheck{
		BaseCheck: BaseCheck{
			CheckName:        "database-openable",
			CheckDescription: "Check the session database opens and migrates cleanly",
			CheckCategory:    CategoryStorage,
		},
	}
}

func (c *DatabaseCheck) Run(ctx *Context) *Result {
	if ctx.DBPath == "" {
		return &Result{Status: StatusOK, Message: "no database path configured (skipped)", Category: c.CheckCategory}
	}
	if _, err := os.Stat(ctx.DBPath); os.IsNotExist(err) {
		return &Result{Status: StatusOK, Message: "no database file yet (skipped)", Category: c.CheckCategory}
	}

	s, err := store.Open(context.Background(), ctx.DBPath, store.RoleBridge, log.New(os.Stderr))
	if err != nil {
		return &Result{
			Status:   StatusError,
			Message:  "database failed to open or migrate",
			Detail:   err.Error(),
			Category: c.CheckCategory,
		}
	}
	defer s.Close()

	return &Result{
		Status:   StatusOK,
		Message:  fmt.Sprintf("database at %s opens and migrates cleanly", ctx.DBPath),
		Category: c.CheckCategory,
	}
}
