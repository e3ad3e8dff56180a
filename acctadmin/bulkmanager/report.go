package bulkmanager

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Outcome records what happened to one target.
type Outcome struct {
	Target  string
	Action  Action
	Success bool
	Skipped bool
	Detail  string
	Err     error
}

// Report is the tally and per-target outcomes of one run.
type Report struct {
	RunID    string
	Action   Action
	DryRun   bool
	Success  int
	Total    int
	Skipped  int
	Outcomes []Outcome
}

func (r *Report) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	if o.Success {
		r.Success++
	}
	if o.Skipped {
		r.Skipped++
	}
}

// Failed counts targets that were considered but did not succeed,
// including skipped rows.
func (r *Report) Failed() int {
	return r.Total - r.Success
}

// Err aggregates every per-target error, or returns nil when none failed.
func (r *Report) Err() error {
	var result *multierror.Error
	for _, o := range r.Outcomes {
		if o.Err == nil {
			continue
		}
		target := o.Target
		if target == "" {
			target = "<unnamed>"
		}
		result = multierror.Append(result, fmt.Errorf("%s %s: %w", o.Action, target, o.Err))
	}
	return result.ErrorOrNil()
}

// Summary formats the final one-line run summary.
func (r *Report) Summary(logPath string) string {
	mode := ""
	if r.DryRun {
		mode = " (dry run)"
	}
	return fmt.Sprintf("Action: %s%s | Processed: %d of %d | Log: %s", r.Action, mode, r.Success, r.Total, logPath)
}
