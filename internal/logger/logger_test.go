package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		logged   func(msg string)
		msg      string
		expected bool
	}{
		{name: "info logged by default", opts: Options{}, logged: func(m string) { Info(m) }, msg: "test info", expected: true},
		{name: "debug hidden by default", opts: Options{}, logged: func(m string) { Debug(m) }, msg: "test debug", expected: false},
		{name: "debug logged in debug mode", opts: Options{Debug: true}, logged: func(m string) { Debug(m) }, msg: "test debug", expected: true},
		{name: "info hidden in quiet mode", opts: Options{Quiet: true}, logged: func(m string) { Info(m) }, msg: "test info", expected: false},
		{name: "warn hidden in quiet mode", opts: Options{Quiet: true}, logged: func(m string) { Warn(m) }, msg: "test warn", expected: false},
		{name: "error logged in quiet mode", opts: Options{Quiet: true}, logged: func(m string) { Error(m) }, msg: "test error", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.opts.Output = buf
			Init(tt.opts)
			defer resetLogger()

			tt.logged(tt.msg)
			if got := strings.Contains(buf.String(), tt.msg); got != tt.expected {
				t.Errorf("message logged = %v, expected %v (output: %q)", got, tt.expected, buf.String())
			}
		})
	}
}

func TestInit_JSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer resetLogger()

	Info("test message")

	output := buf.String()
	if !strings.Contains(output, "{") || !strings.Contains(output, "test message") {
		t.Errorf("expected JSON output containing the message, got %q", output)
	}
	if !strings.Contains(output, "level") {
		t.Error("JSON output should contain level field")
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, nil)))
	defer resetLogger()

	Info("custom logger test")
	if !strings.Contains(buf.String(), "custom logger test") {
		t.Error("expected message through injected logger")
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{Output: buf})
	defer resetLogger()

	With("component", "analyzer").Info("scoped message")
	out := buf.String()
	if !strings.Contains(out, "scoped message") || !strings.Contains(out, "analyzer") {
		t.Errorf("expected scoped attributes in output, got %q", out)
	}
}
