package doctor

import (
	"fmt"

	"github.com/airev/airev/internal/config"
	"github.com/airev/airev/internal/style"
)

// ThemeCheck verifies the configured theme, if any, resolves to a known
// style.Theme. An unknown theme name is a warning, not an error: the UI
// already falls back to the default theme and prints a warning on
// stderr at startup (spec §6).
type ThemeCheck struct {
	BaseCheck
}

func NewThemeCheck() *ThemeCheck {
	return &ThemeCheck{
		BaseCheck: BaseCheck{
			CheckName:        "config-theme-resolves",
			CheckDescription: "Check the configured UI theme resolves to a known theme",
			CheckCategory:    CategoryConfig,
		},
	}
}

func (c *ThemeCheck) Run(ctx *Context) *Result {
	path := ctx.ConfigPath
	if path == "" {
		var err error
		path, err = config.Path()
		if err != nil {
			return &Result{Status: StatusOK, Message: "no config directory available (using defaults)", Category: c.CheckCategory}
		}
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return &Result{
			Status:   StatusError,
			Message:  "config file failed to parse",
			Detail:   err.Error(),
			Category: c.CheckCategory,
		}
	}

	if cfg.UI.Theme == "" {
		return &Result{Status: StatusOK, Message: fmt.Sprintf("no theme configured (default %q applies)", config.DefaultTheme), Category: c.CheckCategory}
	}

	if !style.Known(cfg.UI.Theme) {
		return &Result{
			Status:   StatusWarning,
			Message:  fmt.Sprintf("configured theme %q is unknown, falls back to default", cfg.UI.Theme),
			Category: c.CheckCategory,
		}
	}

	return &Result{
		Status:   StatusOK,
		Message:  fmt.Sprintf("theme %q resolves", cfg.UI.Theme),
		Category: c.CheckCategory,
	}
}
