// Package testlog captures log output of the code under test.
package testlog

import (
	"slices"
	"sync"

	"daycare-dispatch/internal/logx"
)

type record struct {
	level  string
	msg    string
	fields []logx.Field
}

// Recorder is a thread-safe sink shared by every logger it hands out.
type Recorder struct {
	mu      sync.Mutex
	records []record
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logx.Logger writing into r.
func (r *Recorder) Logger() logx.Logger { return &scoped{sink: r} }

// Messages returns the logged messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.msg
	}
	return out
}

// Levels returns the level of every logged message in order.
func (r *Recorder) Levels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.level
	}
	return out
}

// Field returns the value of key on the first entry logged with msg.
func (r *Recorder) Field(msg, key string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.msg != msg {
			continue
		}
		if i := slices.IndexFunc(rec.fields, func(f logx.Field) bool { return f.Key == key }); i >= 0 {
			return rec.fields[i].Value, true
		}
	}
	return nil, false
}

func (r *Recorder) write(level, msg string, base, fields []logx.Field) {
	all := make([]logx.Field, 0, len(base)+len(fields))
	all = append(append(all, base...), fields...)

	r.mu.Lock()
	r.records = append(r.records, record{level: level, msg: msg, fields: all})
	r.mu.Unlock()
}

type scoped struct {
	sink *Recorder
	with []logx.Field
}

var _ logx.Logger = (*scoped)(nil)

func (s *scoped) Debug(msg string, f ...logx.Field) { s.sink.write("debug", msg, s.with, f) }
func (s *scoped) Info(msg string, f ...logx.Field)  { s.sink.write("info", msg, s.with, f) }
func (s *scoped) Warn(msg string, f ...logx.Field)  { s.sink.write("warn", msg, s.with, f) }
func (s *scoped) Error(msg string, f ...logx.Field) { s.sink.write("error", msg, s.with, f) }

func (s *scoped) With(f ...logx.Field) logx.Logger {
	return &scoped{sink: s.sink, with: append(slices.Clip(s.with), f...)}
}

func (s *scoped) Sync() error { return nil }
