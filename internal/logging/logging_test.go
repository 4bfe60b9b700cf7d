// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineFormatter(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	tests := []struct {
		name  string
		entry *logrus.Entry
		want  string
	}{
		{
			name:  "message only",
			entry: &logrus.Entry{Time: ts, Level: logrus.InfoLevel, Message: "converted 'a.docx'", Data: logrus.Fields{}},
			want:  "2026-03-14T09:26:53Z INFO converted 'a.docx'\n",
		},
		{
			name: "fields sorted and quoted",
			entry: &logrus.Entry{Time: ts, Level: logrus.ErrorLevel, Message: "failed", Data: logrus.Fields{
				"file":  "b.pptx",
				"error": "bad file",
			}},
			want: "2026-03-14T09:26:53Z ERROR failed error=\"bad file\" file=b.pptx\n",
		},
		{
			name:  "warning level",
			entry: &logrus.Entry{Time: ts, Level: logrus.WarnLevel, Message: "slow", Data: logrus.Fields{}},
			want:  "2026-03-14T09:26:53Z WARNING slow\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LineFormatter{}.Format(tt.entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "conversion_log.txt")

	for _, msg := range []string{"first run", "second run"} {
		log, closer, err := Open(path)
		require.NoError(t, err)
		log.Info(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "INFO first run"))
	assert.True(t, strings.HasSuffix(lines[1], "INFO second run"))
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	log.Debug("hidden")
	SetVerbose(log, true)
	log.Debug("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "DEBUG shown")
}
