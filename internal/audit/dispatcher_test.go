package audit

import (
	"io"
	"log/slog"
	"testing"
)

func TestDispatcherDrainsOnClose(t *testing.T) {
	sink := NewMemorySink()
	d := NewDispatcher(sink, slog.New(slog.NewTextHandler(io.Discard, nil)))

	id := uint(7)
	d.Dispatch(Event{SalonID: 1, Action: "appointment_created", Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{SalonID: 1, Action: "appointment_conflict", Metadata: map[string]any{"start": "10:00"}})
	d.Close()

	rows := sink.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Action != "appointment_created" || *rows[0].EntityID != 7 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Metadata != `{"start":"10:00"}` {
		t.Fatalf("unexpected metadata %q", rows[1].Metadata)
	}
}
