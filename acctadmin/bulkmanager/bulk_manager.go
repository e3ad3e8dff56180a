package bulkmanager

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	am "github.com/steelcutops/acctadmin/acctadmin/accountmanager"
	"github.com/steelcutops/acctadmin/acctadmin/csvmanager"
	"github.com/steelcutops/acctadmin/logger"
)

// Request selects the action and where its targets come from. When CSVPath
// is set, Target is ignored.
type Request struct {
	Action  Action
	CSVPath string
	Target  Target
	DryRun  bool
	Force   bool
}

// BulkManager drives one action across its targets against an AccountStore.
// Targets are processed one at a time, with one persist per mutating target.
type BulkManager struct {
	store          am.AccountStore
	rows           csvmanager.RowReader
	log            logger.Logger
	runID          string
	emailDomain    string
	passwordLength int
	now            func() time.Time
	password       func(length int) string
	handlers       map[Action]handler
}

type Option func(*BulkManager)

// WithRowReader sets the reader used for tabular input.
func WithRowReader(r csvmanager.RowReader) Option {
	return func(m *BulkManager) {
		m.rows = r
	}
}

// WithRunID sets the identifier reported for this run.
func WithRunID(id string) Option {
	return func(m *BulkManager) {
		m.runID = id
	}
}

// WithEmailDomain sets the domain used for default email addresses.
func WithEmailDomain(domain string) Option {
	return func(m *BulkManager) {
		m.emailDomain = domain
	}
}

// WithPasswordLength sets the length of generated passwords.
func WithPasswordLength(n int) Option {
	return func(m *BulkManager) {
		m.passwordLength = n
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *BulkManager) {
		m.now = now
	}
}

// WithPasswordGenerator overrides random password generation.
func WithPasswordGenerator(gen func(length int) string) Option {
	return func(m *BulkManager) {
		m.password = gen
	}
}

func New(store am.AccountStore, log logger.Logger, options ...Option) *BulkManager {
	m := &BulkManager{
		store:          store,
		rows:           csvmanager.CSVRowReader{},
		log:            log,
		emailDomain:    am.DefaultEmailDomain,
		passwordLength: am.DefaultPasswordLength,
		now:            time.Now,
		password:       am.GeneratePassword,
		handlers:       handlers(),
	}

	for _, option := range options {
		option(m)
	}

	if m.runID == "" {
		m.runID = uuid.NewString()
	}
	return m
}

type resolvedTarget struct {
	target Target
	err    error
}

// Run executes req. Per-target failures are recorded in the report and never
// abort the batch. Run returns an error only for ErrValidation, an unreadable
// input file, or a cancelled context; in the last case the partial report is
// returned alongside the error.
func (m *BulkManager) Run(ctx context.Context, req Request) (*Report, error) {
	report := &Report{
		RunID:  m.runID,
		Action: req.Action,
		DryRun: req.DryRun,
	}

	m.log.Info("Starting account operation", "action", req.Action, "dry_run", req.DryRun, "csv", req.CSVPath)
	if req.DryRun {
		m.log.Warn("Dry run enabled, no changes will be saved")
	}

	if req.Action == ActionListAll {
		report.Total = 1
		report.add(m.listAll())
		return report, nil
	}

	h, ok := m.handlers[req.Action]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, req.Action)
	}

	targets, err := m.resolveTargets(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, rt := range targets {
		if err := ctx.Err(); err != nil {
			m.log.Warn("Run interrupted", "processed", report.Total, "remaining", len(targets)-report.Total)
			return report, err
		}

		report.Total++
		if rt.err != nil {
			m.log.Warn("Skipping row", "error", rt.err)
			report.add(Outcome{
				Target:  rt.target.Username,
				Action:  req.Action,
				Skipped: true,
				Detail:  rt.err.Error(),
				Err:     rt.err,
			})
			continue
		}

		report.add(m.dispatch(ctx, req.Action, h, rt.target, req.DryRun))
	}

	return report, nil
}

func (m *BulkManager) resolveTargets(ctx context.Context, req Request) ([]resolvedTarget, error) {
	if req.CSVPath == "" {
		t, err := resolveSingle(req.Action, req.Target)
		if err != nil {
			return nil, err
		}
		return []resolvedTarget{{target: t}}, nil
	}

	rows, err := m.rows.ReadRows(ctx, req.CSVPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.CSVPath, err)
	}
	m.log.Info("Loaded tabular input", "path", req.CSVPath, "rows", len(rows))

	targets := make([]resolvedTarget, 0, len(rows))
	for _, row := range rows {
		t, err := resolveRow(req.Action, targetFromRow(row))
		targets = append(targets, resolvedTarget{target: t, err: err})
	}
	return targets, nil
}

func (m *BulkManager) dispatch(ctx context.Context, action Action, h handler, t Target, dryRun bool) Outcome {
	o := Outcome{Target: t.Username, Action: action}

	if dryRun {
		o.Success = true
		o.Detail = h.simulate(m, t)
		m.log.Info("[DRY RUN] "+o.Detail, "username", t.Username)
		return o
	}

	detail, undo, err := h.apply(m, t)
	if err != nil {
		o.Err = err
		o.Detail = err.Error()
		m.log.Error("Failed to "+h.verb+" account", "username", t.Username, "error", err)
		return o
	}

	if h.mutating {
		if err := m.store.Persist(ctx); err != nil {
			if undoErr := undo(); undoErr != nil {
				m.log.Error("Failed to roll back in-memory change", "username", t.Username, "error", undoErr)
			}
			o.Err = err
			o.Detail = err.Error()
			m.log.Error("Failed to save account store", "username", t.Username, "error", err)
			return o
		}
	}

	o.Success = true
	o.Detail = detail
	m.log.Success(detail, "username", t.Username)
	return o
}

func (m *BulkManager) listAll() Outcome {
	accounts := m.store.List()
	m.log.Info("Listing accounts", "count", len(accounts))

	for _, a := range accounts {
		m.log.Info(fmt.Sprintf("%-15s %-25s %-15s %-8s %s",
			a.Username,
			a.FirstName+" "+a.LastName,
			a.Department,
			status(a.Enabled),
			a.Email,
		))
	}

	return Outcome{
		Action:  ActionListAll,
		Success: true,
		Detail:  fmt.Sprintf("%d accounts", len(accounts)),
	}
}

func status(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
