package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"teamboard/internal/bootstrap"
	calendardto "teamboard/internal/modules/calendar/dto"
	eventdto "teamboard/internal/modules/event/dto"
	"teamboard/internal/platform/config"
	apperrors "teamboard/internal/platform/errors"
	"teamboard/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, hint(err))
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	envFile    string
	apiURL     string
	stateDir   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "teamboard",
		Short:         "Team calendar for managers and players",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(flags)
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file with TEAMBOARD_* overrides")
	root.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "backend base URL")
	root.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "directory for the session store and logs")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newLoginCmd(flags))
	root.AddCommand(newLogoutCmd(flags))
	root.AddCommand(newWhoamiCmd(flags))
	root.AddCommand(newEventsCmd(flags))
	root.AddCommand(newCalendarCmd(flags))
	return root
}

func loadApp(flags *globalFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(config.LoadOptions{
		ConfigPath: flags.configPath,
		EnvFile:    flags.envFile,
		APIBaseURL: flags.apiURL,
		StateDir:   flags.stateDir,
	})
	if err != nil {
		return nil, err
	}
	logging.Install(os.Stderr, cfg.LogLevel, term.IsTerminal(int(os.Stderr.Fd())))
	return bootstrap.New(context.Background(), cfg)
}

// hint adds the next step for errors a user can fix.
func hint(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNoSession), errors.Is(err, apperrors.ErrUnauthorized):
		return err.Error() + " (run teamboard login)"
	case errors.Is(err, apperrors.ErrUnreachable):
		return err.Error() + " (check --api-url and your connection)"
	}
	return err.Error()
}

func runTUI(flags *globalFlags) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer app.Close()
	return bootstrap.RunTUI(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calendar terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(flags)
		},
	}
}

// ─── session ─────────────────────────────────────────────────────────────────

func newLoginCmd(flags *globalFlags) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login [--email <email>]",
		Short: "Sign in and remember the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			if strings.TrimSpace(email) == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Email: ")
				line, err := readLine(in)
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = line
			}
			password, err := readPassword(cmd, in)
			if err != nil {
				return err
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Login(cmd.Context(), strings.TrimSpace(email), password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", out.Name, out.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	return cmd
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(cmd *cobra.Command, in *bufio.Reader) (string, error) {
	if fd := int(os.Stdin.Fd()); cmd.InOrStdin() == os.Stdin && term.IsTerminal(fd) {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		raw, err := term.ReadPassword(fd)
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}
	line, err := readLine(in)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return line, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newLogoutCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := app.SessionCLI.Logout(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.SessionCLI.Current(cmd.Context())
			if err != nil {
				return err
			}
			access := "read-only"
			if out.CanEdit {
				access = "can edit"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", out.UserID, out.Name, out.Role, access)
			return nil
		},
	}
}

// requireManager gates mutating commands the same way the board hides its edit actions.
func requireManager(ctx context.Context, app *bootstrap.App) error {
	out, err := app.SessionCLI.Current(ctx)
	if err != nil {
		return err
	}
	if !out.CanEdit {
		return fmt.Errorf("%s is a %s: %w", out.Name, out.Role, apperrors.ErrForbidden)
	}
	return nil
}

// ─── events ──────────────────────────────────────────────────────────────────

type eventFlags struct {
	day         string
	title       string
	kind        string
	hour        string
	description string
}

func (f *eventFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.day, "day", "", "day: YYYY-MM-DD or natural language (\"next friday\")")
	cmd.Flags().StringVar(&f.title, "title", "", "event title")
	cmd.Flags().StringVar(&f.kind, "type", "", "training|game|gym|meeting|concentration")
	cmd.Flags().StringVar(&f.hour, "hour", "", "local start time HH:MM")
	cmd.Flags().StringVar(&f.description, "description", "", "markdown description")
}

func newEventsCmd(flags *globalFlags) *cobra.Command {
	events := &cobra.Command{Use: "events", Short: "List and manage events"}

	var listDay string
	list := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.CalendarCLI.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			if listDay == "" {
				return writeEvents(cmd.OutOrStdout(), entries, app.CalendarCLI.Location())
			}
			day, err := parseDay(listDay, time.Now(), app.CalendarCLI.Location())
			if err != nil {
				return err
			}
			return app.CalendarCLI.WriteAgenda(cmd.OutOrStdout(), app.CalendarCLI.DayEntries(entries, day))
		},
	}
	list.Flags().StringVar(&listDay, "day", "", "only this day: YYYY-MM-DD or natural language")

	addFlags := &eventFlags{}
	add := &cobra.Command{
		Use:   "add --day <day> --title <title>",
		Short: "Create an event (managers only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireManager(cmd.Context(), app); err != nil {
				return err
			}
			loc := app.CalendarCLI.Location()
			day, err := parseDay(addFlags.day, time.Now(), loc)
			if err != nil {
				return err
			}
			draft := app.EventCLI.NewDraft()
			input := eventdto.SaveInput{
				Day:         day,
				Title:       addFlags.title,
				Type:        firstNonEmpty(addFlags.kind, draft.Type),
				Hour:        firstNonEmpty(addFlags.hour, draft.Hour),
				Description: addFlags.description,
			}
			if err := checkInput(app, input); err != nil {
				return err
			}
			out, err := app.EventCLI.Create(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s\t%s\t%s\n", out.ID, out.Date.In(loc).Format("2006-01-02 15:04"), out.Title)
			return nil
		},
	}
	addFlags.bind(add)

	var editID string
	editFlags := &eventFlags{}
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Change an event (managers only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(editID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireManager(cmd.Context(), app); err != nil {
				return err
			}
			current, ok, err := app.EventCLI.Find(cmd.Context(), editID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("event %s: %w", editID, apperrors.ErrNotFound)
			}
			loc := app.CalendarCLI.Location()
			overrides := eventdto.SaveInput{
				Title:       editFlags.title,
				Type:        editFlags.kind,
				Hour:        editFlags.hour,
				Description: editFlags.description,
			}
			if editFlags.day != "" {
				if overrides.Day, err = parseDay(editFlags.day, time.Now(), loc); err != nil {
					return err
				}
			}
			input := app.EventCLI.SaveInputFor(current, loc, overrides)
			if err := checkInput(app, input); err != nil {
				return err
			}
			out, err := app.EventCLI.Update(cmd.Context(), editID, input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s\t%s\t%s\n", out.ID, out.Date.In(loc).Format("2006-01-02 15:04"), out.Title)
			return nil
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "event id")
	editFlags.bind(edit)

	var deleteID string
	var yes bool
	del := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete an event (managers only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireManager(cmd.Context(), app); err != nil {
				return err
			}
			if !yes {
				current, ok, err := app.EventCLI.Find(cmd.Context(), deleteID)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("event %s: %w", deleteID, apperrors.ErrNotFound)
				}
				if !confirm(cmd, fmt.Sprintf("Really want to delete this event %q? [y/N] ", current.Title)) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
					return nil
				}
			}
			if err := app.EventCLI.Delete(cmd.Context(), deleteID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", deleteID)
			return nil
		},
	}
	del.Flags().StringVar(&deleteID, "id", "", "event id")
	del.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	var outPath string
	export := &cobra.Command{
		Use:   "export --out <file.ics>",
		Short: "Export all events as iCalendar",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			w := cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}
			n, err := app.EventCLI.Export(cmd.Context(), w)
			if err != nil {
				return err
			}
			if outPath != "" && outPath != "-" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d events to %s\n", n, outPath)
			}
			return nil
		},
	}
	export.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")

	types := &cobra.Command{
		Use:   "types",
		Short: "List event types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			for _, t := range app.EventCLI.Types() {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.Value, t.Icon, t.Label)
			}
			return nil
		},
	}

	events.AddCommand(list, add, edit, del, export, types)
	return events
}

func checkInput(app *bootstrap.App, input eventdto.SaveInput) error {
	errs := app.EventCLI.Validate(input)
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errs[field]))
	}
	return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), apperrors.ErrInvalidInput)
}

func confirm(cmd *cobra.Command, prompt string) bool {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func writeEvents(w io.Writer, entries []calendardto.EntryOutput, loc *time.Location) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No events.")
		return err
	}
	sorted := append([]calendardto.EntryOutput(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })
	for _, e := range sorted {
		if _, err := fmt.Fprintf(w, "%s\t%s %s\t[%s]\t%s\n", e.At.In(loc).Format("2006-01-02 15:04"), e.Icon, e.Title, e.Label, e.ID); err != nil {
			return err
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ─── calendar ────────────────────────────────────────────────────────────────

func newCalendarCmd(flags *globalFlags) *cobra.Command {
	var month, day string
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid with the selected day's events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags)
			if err != nil {
				return err
			}
			defer app.Close()
			loc := app.CalendarCLI.Location()
			selected := app.CalendarCLI.Today()
			switch {
			case day != "":
				if selected, err = parseDay(day, time.Now(), loc); err != nil {
					return err
				}
			case month != "":
				if selected, err = time.ParseInLocation("2006-01", month, loc); err != nil {
					return fmt.Errorf("--month %q: want YYYY-MM: %w", month, apperrors.ErrInvalidInput)
				}
			}
			entries, err := app.CalendarCLI.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			return app.CalendarCLI.WriteMonth(cmd.OutOrStdout(), app.CalendarCLI.Layout(entries, selected))
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "month to show: YYYY-MM")
	cmd.Flags().StringVar(&day, "day", "", "day to select: YYYY-MM-DD or natural language")
	return cmd
}
