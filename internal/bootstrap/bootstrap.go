package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	calendarinadapter "teamboard/internal/modules/calendar/adapter/in"
	calendaroutadapter "teamboard/internal/modules/calendar/adapter/out"
	calendarservice "teamboard/internal/modules/calendar/service"
	calendarusecase "teamboard/internal/modules/calendar/usecase"
	eventinadapter "teamboard/internal/modules/event/adapter/in"
	eventoutadapter "teamboard/internal/modules/event/adapter/out"
	eventservice "teamboard/internal/modules/event/service"
	eventusecase "teamboard/internal/modules/event/usecase"
	sessioninadapter "teamboard/internal/modules/session/adapter/in"
	sessionoutadapter "teamboard/internal/modules/session/adapter/out"
	sessionout "teamboard/internal/modules/session/port/out"
	sessionservice "teamboard/internal/modules/session/service"
	sessionusecase "teamboard/internal/modules/session/usecase"
	"teamboard/internal/platform/apiclient"
	"teamboard/internal/platform/clock"
	"teamboard/internal/platform/config"
	"teamboard/internal/platform/id"
	"teamboard/internal/platform/logging"
	uiapp "teamboard/internal/ui/app"
)

type App struct {
	Config      config.Config
	SessionCLI  sessioninadapter.CLIHandler
	EventCLI    eventinadapter.CLIHandler
	CalendarCLI calendarinadapter.CLIHandler

	closers []io.Closer
}

// New wires every module against cfg and restores any persisted session.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	app := &App{Config: cfg}

	var storage sessionout.LocalStorage
	switch cfg.Storage {
	case config.StorageFile:
		storage = sessionoutadapter.NewFileLocalStorage(cfg.StoragePath())
	default:
		sqliteStorage, err := sessionoutadapter.NewSQLiteLocalStorage(cfg.DBPath(), clk)
		if err != nil {
			return nil, fmt.Errorf("open local storage: %w", err)
		}
		app.closers = append(app.closers, sqliteStorage)
		storage = sqliteStorage
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.RequestTimeout, ids)

	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		storage,
		sessionoutadapter.NewHTTPAuthenticator(api),
	))

	eventUC := eventusecase.NewInteractor(eventservice.NewEventService(
		eventoutadapter.NewHTTPEventRepository(api, eventoutadapter.NewSessionCredentialAdapter(sessionUC)),
		eventoutadapter.NewICSExporter(clk),
		loc,
	))

	calendarUC := calendarusecase.NewInteractor(calendarservice.NewCalendarService(
		calendaroutadapter.NewEventSourceAdapter(eventUC),
		clk,
		loc,
		cfg.WeekStartDay(),
	))

	// A missing session is the normal signed-out state.
	_, _ = sessionUC.Restore(ctx)

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.EventCLI = eventinadapter.NewCLIHandler(eventUC)
	app.CalendarCLI = calendarinadapter.NewCLIHandler(calendarUC)
	return app, nil
}

// Close releases local storage handles.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// RunTUI owns the terminal, so logs go to the state directory instead of stderr.
func RunTUI(app *App) error {
	logFile, err := logging.OpenFile(app.Config.LogPath())
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	previous := slog.Default()
	logging.Install(logFile, app.Config.LogLevel, false)
	defer slog.SetDefault(previous)

	model := uiapp.NewModel(app.SessionCLI, app.CalendarCLI, app.EventCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
