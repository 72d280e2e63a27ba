package app

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// opLogger reports the operations' results.
var opLogger = newOpLogger()

func newOpLogger() *log.Logger {
	l := log.New()
	l.SetFormatter(&opLogFormatter{})
	return l
}

// syncWriter serializes writes coming from several loggers sharing
// the same output.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

type opLogFormatter struct{}

func (f *opLogFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b bytes.Buffer

	w := color.New(color.FgWhite)
	c := color.New(color.FgCyan)

	w.Fprint(&b, "[IMG ")
	color.New(color.Bold, color.FgHiBlue).Fprint(&b, entry.Data["op"])
	w.Fprint(&b, "] ")

	if src, ok := entry.Data["source"]; ok {
		w.Fprintf(&b, "%s ", src)
	}

	c.Fprintf(&b, "%dx%d", entry.Data["width"], entry.Data["height"])

	if path, ok := entry.Data["path"]; ok {
		w.Fprintf(&b, " -> %s", path)
	}

	if ms, ok := entry.Data["elapsed_ms"].(float64); ok {
		w.Fprint(&b, " in ")
		elapsed := time.Duration(ms * 1000000.0)
		switch {
		case elapsed < 500*time.Millisecond:
			color.New(color.FgGreen).Fprint(&b, elapsed)
		case elapsed < 1*time.Second:
			color.New(color.FgYellow).Fprint(&b, elapsed)
		default:
			color.New(color.FgRed).Fprint(&b, elapsed)
		}
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
