package doctor

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

type fakeCheck struct {
	BaseCheck
	result *Result
}

func (f *fakeCheck) Run(ctx *Context) *Result { return f.result }

func TestRunStreamsAndReportsErrors(t *testing.T) {
	d := NewDoctor()
	d.Register(&fakeCheck{
		BaseCheck: BaseCheck{CheckName: "ok-check"},
		result:    &Result{Status: StatusOK, Message: "fine"},
	})
	d.Register(&fakeCheck{
		BaseCheck: BaseCheck{CheckName: "bad-check"},
		result:    &Result{Status: StatusError, Message: "broken", Detail: "why"},
	})

	var buf bytes.Buffer
	report := d.Run(&Context{}, &buf)

	if !report.HasErrors() {
		t.Fatal("expected HasErrors to be true")
	}
	if len(report.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(report.Results))
	}
	if report.Results[0].Name != "ok-check" {
		t.Errorf("expected first result name to be backfilled from check, got %q", report.Results[0].Name)
	}
	out := buf.String()
	if !strings.Contains(out, "broken") || !strings.Contains(out, "why") {
		t.Errorf("expected streamed output to contain message and detail, got %q", out)
	}
}

func TestAireignoreCheckSkipsWhenAbsent(t *testing.T) {
	c := NewAireignoreCheck()
	res := c.Run(&Context{AireignorePath: "/does/not/exist/.aireignore"})
	if res.Status != StatusOK {
		t.Errorf("expected OK for missing .aireignore, got %v: %s", res.Status, res.Message)
	}
}

func TestRepositoryCheckSkipsWhenNoRepoPath(t *testing.T) {
	c := NewRepositoryCheck()
	res := c.Run(&Context{})
	if res.Status != StatusOK {
		t.Errorf("expected OK when no repo path configured, got %v: %s", res.Status, res.Message)
	}
}

func TestDatabaseCheckSkipsWhenFileAbsent(t *testing.T) {
	c := NewDatabaseCheck()
	res := c.Run(&Context{DBPath: "/does/not/exist/airev.db"})
	if res.Status != StatusOK {
		t.Errorf("expected OK when database file absent, got %v: %s", res.Status, res.Message)
	}
}

func TestThemeCheckWarnsOnUnknownTheme(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.toml"
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"nonexistent\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c := NewThemeCheck()
	res := c.Run(&Context{ConfigPath: path})
	if res.Status != StatusWarning {
		t.Errorf("expected warning for unknown theme, got %v: %s", res.Status, res.Message)
	}
}
