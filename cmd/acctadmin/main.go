package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/steelcutops/acctadmin/acctadmin/accountmanager"
	"github.com/steelcutops/acctadmin/acctadmin/bulkmanager"
	"github.com/steelcutops/acctadmin/acctadmin/configmanager"
	"github.com/steelcutops/acctadmin/acctadmin/csvmanager"
	"github.com/steelcutops/acctadmin/acctadmin/environmentmanager"
	"github.com/steelcutops/acctadmin/acctadmin/statemanager"
	"github.com/steelcutops/acctadmin/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var errDeclined = errors.New("delete not confirmed")

// stdinIsTerminal reports whether confirmation prompts can be answered.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type flags struct {
	Action      string
	CSVPath     string
	Debug       bool
	Department  string
	DryRun      bool
	Email       string
	FirstName   string
	Force       bool
	IniFilePath string
	LastName    string
	LogDir      string
	Password    string
	StorePath   string
	Username    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "acctadmin: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "acctadmin",
		Short: "Manage local user accounts, one at a time or in bulk from CSV",
		Example: `  acctadmin --action Create --first-name John --last-name Smith --department IT
  acctadmin --action Disable --csv leavers.csv --dry-run
  acctadmin --action ListAll`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, cmd.OutOrStdout(), cmd.InOrStdin())
		},
	}

	bindFlags(cmd.Flags(), f)
	_ = cmd.MarkFlagRequired("action")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "acctadmin %s\n", version)
		},
	})

	return cmd
}

func bindFlags(fs *pflag.FlagSet, f *flags) {
	names := make([]string, 0, len(bulkmanager.Actions()))
	for _, a := range bulkmanager.Actions() {
		names = append(names, a.String())
	}

	fs.StringVarP(&f.Action, "action", "a", "", "Action to perform: "+strings.Join(names, ", "))
	fs.StringVar(&f.CSVPath, "csv", "", "Path to CSV file with one target per row")
	fs.StringVar(&f.FirstName, "first-name", "", "First name of the target")
	fs.StringVar(&f.LastName, "last-name", "", "Last name of the target")
	fs.StringVarP(&f.Username, "username", "u", "", "Username of the target")
	fs.StringVar(&f.Email, "email", "", "Email address (default <username>@<email domain>)")
	fs.StringVar(&f.Department, "department", "", "Department of the target")
	fs.StringVar(&f.Password, "password", "", "Initial password for Create (default random)")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Report what would change without saving anything")
	fs.BoolVar(&f.Force, "force", false, "Skip the confirmation prompt for Delete")
	fs.StringVar(&f.IniFilePath, "ini", "", "Path to INI configuration file")
	fs.StringVar(&f.StorePath, "store", "", "Path to the account store file")
	fs.StringVar(&f.LogDir, "log-dir", "", "Directory for execution logs")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug log level")
}

func loadConfig(f *flags) (configmanager.Config, error) {
	cfg, err := configmanager.Load(f.IniFilePath, environmentmanager.OSEnvironmentManager{})
	if err != nil {
		return cfg, err
	}

	if f.StorePath != "" {
		cfg.StorePath = f.StorePath
	}
	if f.LogDir != "" {
		cfg.LogDir = f.LogDir
	}
	if f.Debug {
		cfg.Debug = true
	}
	return cfg, nil
}

func buildRequest(f *flags, action bulkmanager.Action) bulkmanager.Request {
	return bulkmanager.Request{
		Action:  action,
		CSVPath: f.CSVPath,
		DryRun:  f.DryRun,
		Force:   f.Force,
		Target: bulkmanager.Target{
			Username:   f.Username,
			FirstName:  f.FirstName,
			LastName:   f.LastName,
			Email:      f.Email,
			Department: f.Department,
			Password:   f.Password,
		},
	}
}

func run(ctx context.Context, f *flags, out io.Writer, in io.Reader) error {
	action, err := bulkmanager.ParseAction(f.Action)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log, err := logger.NewFile(logger.Options{
		Dir:     cfg.LogDir,
		Debug:   cfg.Debug,
		RunID:   runID,
		Console: out,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	req := buildRequest(f, action)
	empty := &bulkmanager.Report{RunID: runID, Action: action, DryRun: req.DryRun}

	if action == bulkmanager.ActionDelete && !req.DryRun && !req.Force && stdinIsTerminal() {
		if !confirm(in, out, deletePrompt(req)) {
			log.Warn("Delete cancelled by operator")
			fmt.Fprintln(out, empty.Summary(log.Path()))
			return errDeclined
		}
	}

	state := statemanager.NewFileStateManager(cfg.StorePath)
	codec := statemanager.CodecFor(cfg.StoreFormat, cfg.StorePath)
	store := accountmanager.Open(ctx, state, codec, log)

	manager := bulkmanager.New(store, log,
		bulkmanager.WithRunID(runID),
		bulkmanager.WithRowReader(csvmanager.CSVRowReader{Comma: cfg.CSVDelimiter}),
		bulkmanager.WithEmailDomain(cfg.EmailDomain),
		bulkmanager.WithPasswordLength(cfg.PasswordLength),
	)

	report, err := manager.Run(ctx, req)
	if report == nil {
		report = empty
	}
	if err != nil {
		log.Error("Operation aborted", "action", action, "error", err)
		fmt.Fprintln(out, report.Summary(log.Path()))
		return err
	}

	if failed := report.Err(); failed != nil {
		log.Debug("Per-target failures", "error", failed)
	}
	log.Info("Operation complete", "action", action, "success", report.Success, "total", report.Total, "skipped", report.Skipped)
	fmt.Fprintln(out, report.Summary(log.Path()))
	return nil
}

func deletePrompt(req bulkmanager.Request) string {
	if req.CSVPath != "" {
		return fmt.Sprintf("Delete every account listed in %s?", req.CSVPath)
	}
	name := req.Target.Username
	if name == "" {
		name = accountmanager.GenerateUsername(req.Target.FirstName, req.Target.LastName)
	}
	return fmt.Sprintf("Delete account %s?", name)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
