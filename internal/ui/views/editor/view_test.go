package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	eventdto "teamboard/internal/modules/event/dto"
	"teamboard/internal/ui/components"
	"teamboard/internal/ui/views/editor"
)

type fakePort struct {
	created []eventdto.SaveInput
	updated []string
	err     error
}

func (f *fakePort) Types() []eventdto.TypeOption {
	return []eventdto.TypeOption{
		{Value: "training", Icon: "⚽", Label: "Training"},
		{Value: "game", Icon: "🏆", Label: "Game"},
		{Value: "gym", Icon: "💪", Label: "Gym"},
		{Value: "meeting", Icon: "🗣️", Label: "Meeting"},
		{Value: "concentration", Icon: "🧘", Label: "Concentration"},
	}
}

func (f *fakePort) Validate(input eventdto.SaveInput) eventdto.FieldErrors {
	errs := eventdto.FieldErrors{}
	if input.Title == "" {
		errs["title"] = "Title is required"
	}
	if input.Hour == "" {
		errs["hour"] = "Hour is required"
	}
	return errs
}

func (f *fakePort) Create(_ context.Context, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	if f.err != nil {
		return eventdto.EventOutput{}, f.err
	}
	f.created = append(f.created, input)
	return eventdto.EventOutput{ID: "new-1", Title: input.Title}, nil
}

func (f *fakePort) Update(_ context.Context, id string, input eventdto.SaveInput) (eventdto.EventOutput, error) {
	if f.err != nil {
		return eventdto.EventOutput{}, f.err
	}
	f.updated = append(f.updated, id)
	return eventdto.EventOutput{ID: id, Title: input.Title}, nil
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m editor.Model, text string) editor.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

var day = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

func newDraft() eventdto.DraftOutput {
	return eventdto.DraftOutput{Type: "training", Hour: "14:00"}
}

func TestEmptyTitleBlocksSubmission(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := editor.New(port, day, "", newDraft())
	m, cmd := m.Update(key("enter"))
	if cmd != nil || m.Busy() {
		t.Fatalf("expected no request for an invalid form")
	}
	if m.FieldErrors()["title"] != "Title is required" {
		t.Fatalf("expected title error, got %v", m.FieldErrors())
	}
	if len(port.created) != 0 {
		t.Fatalf("no create call expected")
	}
}

func TestMissingHourBlocksSubmission(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := editor.New(port, day, "", newDraft())
	m = typeText(m, "Training")
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("tab"))
	for range len("14:00") {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	if got := m.Input().Hour; got != "" {
		t.Fatalf("expected cleared hour, got %q", got)
	}

	m, cmd := m.Update(key("enter"))
	if cmd != nil || m.Busy() {
		t.Fatalf("expected no request without an hour")
	}
	if m.FieldErrors()["hour"] != "Hour is required" {
		t.Fatalf("expected hour error, got %v", m.FieldErrors())
	}
	if len(port.created) != 0 {
		t.Fatalf("no create call expected")
	}
}

func TestCreateCyclesTypeAndEmitsSaved(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := editor.New(port, day, "", newDraft())
	m = typeText(m, "Derby")
	m, _ = m.Update(key("tab"))
	m, _ = m.Update(key("right"))

	if got := m.Input(); got.Type != "game" || got.Hour != "14:00" || got.Title != "Derby" || !got.Day.Equal(day) {
		t.Fatalf("unexpected input %+v", got)
	}
	m, cmd := m.Update(key("enter"))
	if !m.Busy() {
		t.Fatalf("expected busy while saving")
	}
	if _, again := m.Update(key("enter")); again != nil {
		t.Fatalf("resubmission must be blocked while busy")
	}
	msgs := run(cmd)
	if len(port.created) != 1 {
		t.Fatalf("expected exactly one create, got %d", len(port.created))
	}
	for _, msg := range msgs {
		var next tea.Cmd
		m, next = m.Update(msg)
		for _, out := range run(next) {
			if saved, ok := out.(editor.SavedMsg); ok {
				if !saved.Created || saved.Event.ID != "new-1" {
					t.Fatalf("unexpected saved message %+v", saved)
				}
				return
			}
		}
	}
	t.Fatalf("expected SavedMsg")
}

func TestEditUpdatesByID(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := editor.New(port, day, "e1", eventdto.DraftOutput{Title: "Old", Type: "gym", Hour: "09:00"})
	if !m.Editing() || m.Input().Type != "gym" {
		t.Fatalf("expected prefilled edit form, got %+v", m.Input())
	}
	_, cmd := m.Update(key("enter"))
	run(cmd)
	if len(port.updated) != 1 || port.updated[0] != "e1" || len(port.created) != 0 {
		t.Fatalf("expected update of e1, got updated=%v created=%d", port.updated, len(port.created))
	}
}

func TestSaveFailureKeepsFormOpenAndPopulated(t *testing.T) {
	t.Parallel()
	port := &fakePort{err: errors.New("forbidden")}
	m := editor.New(port, day, "", newDraft())
	m = typeText(m, "Gym")
	m, cmd := m.Update(key("enter"))

	var status bool
	for _, msg := range run(cmd) {
		var next tea.Cmd
		m, next = m.Update(msg)
		for _, out := range run(next) {
			if _, ok := out.(editor.SavedMsg); ok {
				t.Fatalf("must not report success")
			}
			if _, ok := out.(components.StatusMsg); ok {
				status = true
			}
		}
	}
	if m.Busy() || m.SaveError() == "" || !status {
		t.Fatalf("expected failure surfaced, busy=%v err=%q status=%v", m.Busy(), m.SaveError(), status)
	}
	if m.Input().Title != "Gym" {
		t.Fatalf("form must stay populated, got %+v", m.Input())
	}
}

func TestEscCancels(t *testing.T) {
	t.Parallel()
	m := editor.New(&fakePort{}, day, "", newDraft())
	_, cmd := m.Update(key("esc"))
	msgs := run(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %v", msgs)
	}
	if _, ok := msgs[0].(editor.CancelledMsg); !ok {
		t.Fatalf("expected CancelledMsg, got %T", msgs[0])
	}
}
