package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := statusOut
	statusOut = &buf
	t.Cleanup(func() { statusOut = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name   string
		cached bool
		want   string
	}{
		{"fresh", false, "10 nodes · 9 edges · 4 primes · fresh"},
		{"cached", true, "10 nodes · 9 edges · 4 primes · cached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureStatus(t)
			printStats(10, 9, 4, tt.cached)
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("printStats = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureStatus(t)
	printSuccess("Cleared %d cached entries", 3)
	printFile("tree.svg")
	printNextStep("Try", "primetree explore")

	out := buf.String()
	for _, want := range []string{iconSuccess + " Cleared 3 cached entries", iconArrow + " tree.svg", "Try: primetree explore"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
