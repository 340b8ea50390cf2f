package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestReport_Write(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReport(&buf, NoColorScheme()).Write(testEnvelope()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	wants := []string{
		"Run summary " + testID.String(),
		"Source: run.yaml",
		"Layout: 2 reads, 1 lanes, 2 surfaces",
		"Read 2 (I)",
		"Non-indexed",
		"1.10 ± 0.10",
		"92.50",
		"1.1",
		"ACGT",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("report contains escape codes with colors disabled")
	}
}

func TestReport_Colors(t *testing.T) {
	var buf bytes.Buffer
	if err := NewReport(&buf, DefaultColorScheme()).Write(testEnvelope()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("report has no escape codes with colors enabled")
	}
}

func TestReport_Empty(t *testing.T) {
	env := testEnvelope()
	env.Summary = RunView{}

	var buf bytes.Buffer
	if err := NewReport(&buf, NoColorScheme()).Write(env); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.Contains(buf.String(), "no metrics") {
		t.Errorf("Write() = %q, want a no metrics notice", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestReport_WriteError(t *testing.T) {
	if err := NewReport(failingWriter{}, NoColorScheme()).Write(testEnvelope()); err == nil {
		t.Error("Write() should return the writer error")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"±1", 3, "±1 "},
		{"abcd", 4, "abcd "},
	}
	for _, tt := range tests {
		if got := pad(tt.in, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
