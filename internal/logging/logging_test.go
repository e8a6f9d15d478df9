package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLoggerLevels(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	tests := []struct {
		name      string
		verbose   bool
		debug     bool
		wantInfo  bool
		wantDebug bool
	}{
		{"Quiet", false, false, false, false},
		{"Verbose", true, false, true, false},
		{"Debug", false, true, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := Logger{Verbose: tc.verbose, Debug: tc.debug, Out: &out, ErrOut: &errOut}

			l.Infof("info %d", 1)
			l.Debugf("debug %d", 2)
			l.Warnf("warn %d", 3)

			if got := strings.Contains(out.String(), "[info] info 1"); got != tc.wantInfo {
				t.Errorf("info shown = %t, want %t (output %q)", got, tc.wantInfo, out.String())
			}
			if got := strings.Contains(out.String(), "[debug] debug 2"); got != tc.wantDebug {
				t.Errorf("debug shown = %t, want %t (output %q)", got, tc.wantDebug, out.String())
			}
			if !strings.Contains(errOut.String(), "[warn] warn 3") {
				t.Errorf("warning should always be shown, got %q", errOut.String())
			}
		})
	}
}

func TestErrorfAndReturn(t *testing.T) {
	original := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = original }()

	var errOut bytes.Buffer
	l := Logger{Debug: true, ErrOut: &errOut}

	err := l.ErrorfAndReturn("story %s failed", "serruchin")
	if err == nil || err.Error() != "story serruchin failed" {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(errOut.String(), "[error] story serruchin failed") {
		t.Errorf("Expected error to be logged in debug mode, got %q", errOut.String())
	}
}
