package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	calendarin "teamboard/internal/modules/calendar/adapter/in"
	"teamboard/internal/modules/calendar/domain"
	"teamboard/internal/modules/calendar/service"
	"teamboard/internal/modules/calendar/usecase"
	eventdto "teamboard/internal/modules/event/dto"
	sessiondto "teamboard/internal/modules/session/dto"
	apperrors "teamboard/internal/platform/errors"
	"teamboard/internal/ui/app"
	"teamboard/internal/ui/components"
	loginview "teamboard/internal/ui/views/login"
)

type fakeSession struct {
	mu      sync.Mutex
	user    *sessiondto.SessionOutput
	logouts int
}

func (f *fakeSession) Login(_ context.Context, email, _ string) (sessiondto.SessionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := sessiondto.SessionOutput{UserID: "u1", Name: email, Role: "manager", CanEdit: true}
	f.user = &out
	return out, nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = nil
	f.logouts++
	return nil
}

func (f *fakeSession) Current(context.Context) (sessiondto.SessionOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return sessiondto.SessionOutput{}, apperrors.ErrNoSession
	}
	return *f.user, nil
}

func (f *fakeSession) Route(_ context.Context, target string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.user == nil {
		return sessiondto.RouteLogin
	}
	if target == sessiondto.RouteLogin {
		return sessiondto.RouteCalendar
	}
	return target
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }

type emptySource struct{}

func (emptySource) List(context.Context) ([]domain.Entry, error) { return nil, nil }

type fakeEvents struct{}

func (fakeEvents) Types() []eventdto.TypeOption   { return nil }
func (fakeEvents) NewDraft() eventdto.DraftOutput { return eventdto.DraftOutput{Hour: "14:00"} }
func (fakeEvents) DraftFor(e eventdto.EventOutput) eventdto.DraftOutput {
	return eventdto.DraftOutput{Title: e.Title}
}
func (fakeEvents) Validate(eventdto.SaveInput) eventdto.FieldErrors { return nil }
func (fakeEvents) Create(context.Context, eventdto.SaveInput) (eventdto.EventOutput, error) {
	return eventdto.EventOutput{}, nil
}
func (fakeEvents) Update(context.Context, string, eventdto.SaveInput) (eventdto.EventOutput, error) {
	return eventdto.EventOutput{}, nil
}
func (fakeEvents) Delete(context.Context, string) error { return nil }

func newModel(session *fakeSession) app.Model {
	cal := calendarin.NewCLIHandler(usecase.NewInteractor(
		service.NewCalendarService(emptySource{}, fixedClock{}, time.UTC, time.Sunday)))
	return app.NewModel(session, cal, fakeEvents{})
}

// step runs cmd and feeds its message back, following batches one level deep.
func step(m app.Model, cmd tea.Cmd) (app.Model, []tea.Msg) {
	if cmd == nil {
		return m, nil
	}
	msgs := []tea.Msg{cmd()}
	if batch, ok := msgs[0].(tea.BatchMsg); ok {
		msgs = msgs[:0]
		for _, c := range batch {
			if c != nil {
				msgs = append(msgs, c())
			}
		}
	}
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(app.Model)
	}
	return m, msgs
}

func update(m app.Model, msg tea.Msg) (app.Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(app.Model), cmd
}

func TestSignedOutStartsOnLogin(t *testing.T) {
	t.Parallel()
	m := newModel(&fakeSession{})
	m, _ = step(m, m.Init())
	if m.Route() != sessiondto.RouteLogin {
		t.Fatalf("expected login route, got %s", m.Route())
	}
}

func TestSignedInStartsOnCalendar(t *testing.T) {
	t.Parallel()
	session := &fakeSession{user: &sessiondto.SessionOutput{Name: "Ana", Role: "player"}}
	m := newModel(session)
	m, _ = step(m, m.Init())
	if m.Route() != sessiondto.RouteCalendar {
		t.Fatalf("expected calendar route, got %s", m.Route())
	}
	if m.Calendar().CanEdit() {
		t.Fatalf("player must get a read-only board")
	}
}

func TestLoggedInNavigatesToCalendar(t *testing.T) {
	t.Parallel()
	session := &fakeSession{}
	m := newModel(session)
	m, _ = step(m, m.Init())

	out, _ := session.Login(context.Background(), "coach@club.test", "pw")
	m, cmd := update(m, loginview.LoggedInMsg{Session: out})
	m, _ = step(m, cmd)
	if m.Route() != sessiondto.RouteCalendar || !m.Calendar().CanEdit() {
		t.Fatalf("expected editable calendar, route=%s", m.Route())
	}
	if m.User().Name != "coach@club.test" {
		t.Fatalf("unexpected user %+v", m.User())
	}
}

func TestPaletteLogoutReturnsToLogin(t *testing.T) {
	t.Parallel()
	session := &fakeSession{user: &sessiondto.SessionOutput{Name: "Ana", Role: "manager", CanEdit: true}}
	m := newModel(session)
	m, _ = step(m, m.Init())

	m, cmd := update(m, components.PaletteSubmitMsg{Input: "logout"})
	m, msgs := step(m, cmd)
	if len(msgs) != 1 || session.logouts != 1 {
		t.Fatalf("expected one logout, got %d", session.logouts)
	}
	if m.Status() != "signed out" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	// loggedOutMsg asks the guard again, which now redirects to login.
	m, _ = step(m, m.Init())
	if m.Route() != sessiondto.RouteLogin {
		t.Fatalf("expected login route after logout, got %s", m.Route())
	}
}

func TestPaletteGotoSelectsDay(t *testing.T) {
	t.Parallel()
	session := &fakeSession{user: &sessiondto.SessionOutput{Name: "Ana", Role: "player"}}
	m := newModel(session)
	m, _ = step(m, m.Init())

	m, _ = update(m, components.PaletteSubmitMsg{Input: "goto 2024-12-25"})
	if got := m.Calendar().Selected(); got.Month() != time.December || got.Day() != 25 {
		t.Fatalf("expected Dec 25, got %s", got)
	}
	m, _ = update(m, components.PaletteSubmitMsg{Input: "goto nope"})
	if m.Status() != "invalid date: nope" {
		t.Fatalf("unexpected status %q", m.Status())
	}
	m, _ = update(m, components.PaletteSubmitMsg{Input: "new"})
	if m.Calendar().EditorOpen() {
		t.Fatalf("player must not open the editor")
	}
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()
	m := newModel(&fakeSession{})
	m, _ = step(m, m.Init())

	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q must be typed into the sign-in form, not quit")
		}
	}
	_, cmd = update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Fatalf("ctrl+c must always quit")
	}
}

func TestStatusMessagesReachTheBar(t *testing.T) {
	t.Parallel()
	m := newModel(&fakeSession{})
	m, _ = update(m, components.StatusMsg{Text: "3 events loaded"})
	if m.Status() != "3 events loaded" {
		t.Fatalf("unexpected status %q", m.Status())
	}
}

// collect runs cmd and returns its messages, flattening one batch level.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		if c != nil {
			out = append(out, c())
		}
	}
	return out
}

func TestOpenPaletteDoesNotSwallowFetchResult(t *testing.T) {
	t.Parallel()
	session := &fakeSession{user: &sessiondto.SessionOutput{Name: "Ana", Role: "player"}}
	m := newModel(session)
	m, mountCmd := update(m, m.Init()())
	if !m.Calendar().Loading() {
		t.Fatalf("expected the board to load after mount")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	if !m.PaletteOpen() {
		t.Fatalf("expected the palette to open")
	}
	for _, msg := range collect(mountCmd) {
		m, _ = update(m, msg)
	}
	if m.Calendar().Loading() {
		t.Fatalf("fetch result must land while the palette is open")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.PaletteOpen() || m.Calendar().Loading() {
		t.Fatalf("board still loading after the palette closed")
	}
}
