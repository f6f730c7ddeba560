// Package doctor runs a small, fixed battery of standalone diagnostic
// checks against an airev environment: the database file, the
// .aireignore matcher, repository discoverability, and config theme
// resolution. Grounded on the teacher's internal/doctor package, where
// every check is an independent Check object with a Name() and a
// Run(ctx) verdict; airev's checks are read-only (no --fix), so there
// is no FixableCheck embedding here, only BaseCheck.
package doctor

import (
	"fmt"
	"io"
)

// Status is the outcome of a single check.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARN"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups checks for report ordering.
type Category int

const (
	CategoryStorage Category = iota
	CategoryConfig
	CategoryRepository
)

func (c Category) String() string {
	switch c {
	case CategoryStorage:
		return "storage"
	case CategoryConfig:
		return "config"
	case CategoryRepository:
		return "repository"
	default:
		return "other"
	}
}

// Result is a single check's verdict.
type Result struct {
	Name     string
	Status   Status
	Message  string
	Detail   string
	Category Category
}

// Context carries everything a check needs to run. Fields are nil/zero
// when that subsystem never opened (e.g. DBPath is empty when doctor
// ran outside any discoverable repository).
type Context struct {
	RepoPath        string
	DBPath          string
	AireignorePath  string
	ConfigPath      string
	SupportedSchema int
}

// Check is the unit of diagnosis. BaseCheck supplies Name(); each
// concrete check embeds it and implements Run.
type Check interface {
	Name() string
	Run(ctx *Context) *Result
}

// BaseCheck holds the identifying fields every check needs; concrete
// checks embed it and only implement Run.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
	CheckCategory    Category
}

func (b BaseCheck) Name() string { return b.CheckName }

// Doctor runs a registered battery of checks in order and collects
// their results into a Report.
type Doctor struct {
	checks []Check
}

func NewDoctor() *Doctor {
	return &Doctor{}
}

func (d *Doctor) Register(c Check) {
	d.checks = append(d.checks, c)
}

func (d *Doctor) RegisterAll(cs ...Check) {
	d.checks = append(d.checks, cs...)
}

// Report is the accumulated set of results from one Doctor run.
type Report struct {
	Results []*Result
}

func (r *Report) HasErrors() bool {
	for _, res := range r.Results {
		if res.Status == StatusError {
			return true
		}
	}
	return false
}

func (r *Report) HasWarnings() bool {
	for _, res := range r.Results {
		if res.Status == StatusWarning {
			return true
		}
	}
	return false
}

// Run executes every registered check in order, streaming a one-line
// summary per check to w as it completes.
func (d *Doctor) Run(ctx *Context, w io.Writer) *Report {
	report := &Report{}
	for _, c := range d.checks {
		res := c.Run(ctx)
		if res.Name == "" {
			res.Name = c.Name()
		}
		report.Results = append(report.Results, res)
		fmt.Fprintf(w, "[%s] %s: %s\n", res.Status, res.Name, res.Message)
		if res.Detail != "" {
			fmt.Fprintf(w, "       %s\n", res.Detail)
		}
	}
	return report
}

// PrintSummary writes a final one-line-per-status-class tally.
func (r *Report) PrintSummary(w io.Writer) {
	var ok, warn, errs int
	for _, res := range r.Results {
		switch res.Status {
		case StatusOK:
			ok++
		case StatusWarning:
			warn++
		case StatusError:
			errs++
		}
	}
	fmt.Fprintf(w, "\n%d ok, %d warning(s), %d error(s)\n", ok, warn, errs)
}
