// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging sets up the append-only conversion log.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LineFormatter writes one entry per line as
// "<RFC3339 timestamp> <LEVEL> <message>", followed by any fields as
// sorted key=value pairs.
type LineFormatter struct{}

// Format implements logrus.Formatter.
func (LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(e.Time.Format(time.RFC3339))
	b.WriteByte(' ')
	b.WriteString(strings.ToUpper(e.Level.String()))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(e.Data[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New returns a logger writing formatted lines to w at info level.
func New(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(LineFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Open opens path for appending (creating it and its parent directory if
// needed) and returns a logger writing to it. The returned closer closes
// the file.
func Open(path string) (*logrus.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return New(f), f, nil
}

// SetVerbose switches l to debug level when verbose is true.
func SetVerbose(l *logrus.Logger, verbose bool) {
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
}
