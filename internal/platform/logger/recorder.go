package logger

import (
	"sync"
	"time"
)

// Entry es una línea registrada por Recorder.
type Entry struct {
	Time   time.Time
	Level  Level
	Msg    string
	Fields map[string]any
}

// Recorder es un sink append-only en memoria. Separa el canal informativo
// (debug/info/warn) del canal de errores. Se construye en main y se inyecta;
// no hay instancia global.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{now: time.Now}
}

func (r *Recorder) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return r
	}
	return &boundRecorder{rec: r, base: copyFields(nil, fields)}
}

func (r *Recorder) Debug(msg string, fields map[string]any) { r.append(Debug, msg, fields) }
func (r *Recorder) Info(msg string, fields map[string]any)  { r.append(Info, msg, fields) }
func (r *Recorder) Warn(msg string, fields map[string]any)  { r.append(Warn, msg, fields) }
func (r *Recorder) Error(msg string, fields map[string]any) { r.append(Error, msg, fields) }

func (r *Recorder) append(lvl Level, msg string, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Time:   r.now(),
		Level:  lvl,
		Msg:    msg,
		Fields: copyFields(nil, fields),
	})
}

// Count devuelve el total de entradas registradas.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries devuelve una copia de todas las entradas, en orden de llegada.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Infos devuelve el canal informativo (todo lo que no es Error).
func (r *Recorder) Infos() []Entry {
	return r.filter(func(e Entry) bool { return e.Level < Error })
}

// Errors devuelve el canal de errores.
func (r *Recorder) Errors() []Entry {
	return r.filter(func(e Entry) bool { return e.Level == Error })
}

func (r *Recorder) filter(keep func(Entry) bool) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

type boundRecorder struct {
	rec  *Recorder
	base map[string]any
}

func (b *boundRecorder) With(fields map[string]any) Logger {
	if len(fields) == 0 {
		return b
	}
	return &boundRecorder{rec: b.rec, base: copyFields(b.base, fields)}
}

func (b *boundRecorder) Debug(msg string, fields map[string]any) {
	b.rec.append(Debug, msg, copyFields(b.base, fields))
}
func (b *boundRecorder) Info(msg string, fields map[string]any) {
	b.rec.append(Info, msg, copyFields(b.base, fields))
}
func (b *boundRecorder) Warn(msg string, fields map[string]any) {
	b.rec.append(Warn, msg, copyFields(b.base, fields))
}
func (b *boundRecorder) Error(msg string, fields map[string]any) {
	b.rec.append(Error, msg, copyFields(b.base, fields))
}

func copyFields(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Tee reenvía cada llamada a todos los loggers (p.ej. stdout + Recorder).
func Tee(loggers ...Logger) Logger {
	out := make(tee, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}

type tee []Logger

func (t tee) With(fields map[string]any) Logger {
	out := make(tee, len(t))
	for i, l := range t {
		out[i] = l.With(fields)
	}
	return out
}

func (t tee) Debug(msg string, fields map[string]any) {
	for _, l := range t {
		l.Debug(msg, fields)
	}
}

func (t tee) Info(msg string, fields map[string]any) {
	for _, l := range t {
		l.Info(msg, fields)
	}
}

func (t tee) Warn(msg string, fields map[string]any) {
	for _, l := range t {
		l.Warn(msg, fields)
	}
}

func (t tee) Error(msg string, fields map[string]any) {
	for _, l := range t {
		l.Error(msg, fields)
	}
}

// Nop descarta todo. Útil como default cuando no se inyecta logger.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (n nopLogger) With(map[string]any) Logger   { return n }
func (nopLogger) Debug(string, map[string]any) {}
func (nopLogger) Info(string, map[string]any)  {}
func (nopLogger) Warn(string, map[string]any)  {}
func (nopLogger) Error(string, map[string]any) {}
