package trace

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEventsFormValidJSON(t *testing.T) {
	var buf bytes.Buffer
	m := NewMeasureTime(&buf)
	end := m.Span("draw_text")
	end()
	m.Time(`quote"d`)
	m.Stop(`quote"d`)
	if err := m.Finish(); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		TraceEvents []struct {
			Name string `json:"name"`
			Ph   string `json:"ph"`
		} `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("trace is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 5 {
		t.Fatalf("Expected 5 events, got %d", len(doc.TraceEvents))
	}
	if doc.TraceEvents[1].Name != "draw_text" || doc.TraceEvents[1].Ph != "B" {
		t.Errorf("Unexpected first span event %+v", doc.TraceEvents[1])
	}
	if doc.TraceEvents[2].Ph != "E" {
		t.Errorf("Expected end event, got %+v", doc.TraceEvents[2])
	}
	if doc.TraceEvents[3].Name != `quote"d` {
		t.Errorf("Name not escaped correctly: %q", doc.TraceEvents[3].Name)
	}
}

func TestNilIsNoop(t *testing.T) {
	var m *MeasureTime
	m.Span("x")()
	if err := m.Finish(); err != nil {
		t.Errorf("Expected nil error, got %v", err)
	}
}
