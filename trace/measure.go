// Package trace records paint callbacks as Chrome trace events, viewable in
// chrome://tracing or Perfetto.
package trace

import (
	"io"
	"strconv"
	"sync"
	"time"
)

// MeasureTime writes begin/end events to an underlying writer. A nil
// *MeasureTime is valid and records nothing.
type MeasureTime struct {
	w    io.Writer
	lock sync.Mutex
	now  func() time.Time
	err  error
}

func NewMeasureTime(w io.Writer) *MeasureTime {
	m := &MeasureTime{w: w, now: time.Now}
	ts := m.now().UnixMicro()
	m.write(`{"traceEvents": [` +
		`{ "name": "process_name",` +
		`"ph": "M",` +
		`"ts":` + strconv.FormatInt(ts, 10) + `,` +
		`"pid": 1, "cat": "__metadata",` +
		`"args": {"name": "htmlcanvas"}}`)
	return m
}

func (m *MeasureTime) write(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *MeasureTime) event(phase, name string) {
	if m == nil {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	ts := m.now().UnixMicro()
	m.write(`, { "ph": "` + phase + `", "cat": "_",` +
		`"name": ` + strconv.Quote(name) + `,` +
		`"ts": ` + strconv.FormatInt(ts, 10) + `,` +
		`"pid": 1, "tid": 1}`)
}

func (m *MeasureTime) Time(name string) {
	m.event("B", name)
}

func (m *MeasureTime) Stop(name string) {
	m.event("E", name)
}

// Span starts name and returns the func that ends it.
func (m *MeasureTime) Span(name string) func() {
	m.Time(name)
	return func() { m.Stop(name) }
}

// Finish closes the JSON document and reports the first write error.
func (m *MeasureTime) Finish() error {
	if m == nil {
		return nil
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	m.write("]}")
	return m.err
}
