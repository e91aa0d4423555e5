package format

import (
	"strings"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{250 * time.Nanosecond, "250ns"},
		{42 * time.Microsecond, "42µs"},
		{17 * time.Millisecond, "17ms"},
		{1500 * time.Millisecond, "1.5s"},
		{90*time.Second + 400*time.Microsecond, "1m30s"},
	}
	for _, tc := range tests {
		if got := FormatExecutionDuration(tc.in); got != tc.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
		{3 << 30, "3.0 GiB"},
	}
	for _, tc := range tests {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatSignedBytes(-2048); got != "-2.0 KiB" {
		t.Errorf("FormatSignedBytes(-2048) = %q", got)
	}
	if got := FormatSignedBytes(10); got != "+10 B" {
		t.Errorf("FormatSignedBytes(10) = %q", got)
	}
}

func TestProgressWithETA(t *testing.T) {
	t.Parallel()

	p := NewProgressWithETA(2)
	start := p.startTime
	p.now = func() time.Time { return start.Add(10 * time.Second) }

	avg, eta := p.UpdateWithETA(0, 0.5)
	if avg != 0.25 {
		t.Errorf("avg = %v, want 0.25", avg)
	}
	if eta != 30*time.Second {
		t.Errorf("eta = %v, want 30s", eta)
	}
	if p.GetETA() != eta {
		t.Errorf("GetETA() = %v, want %v", p.GetETA(), eta)
	}

	avg, eta = p.UpdateWithETA(1, 7)
	if avg != 0.75 {
		t.Errorf("avg after clamp = %v, want 0.75", avg)
	}
	p.UpdateWithETA(5, 1)
	p.UpdateWithETA(0, 1)
	if avg, eta = p.UpdateWithETA(-1, 0); avg != 1 || eta != 0 {
		t.Errorf("complete progress = (%v, %v), want (1, 0)", avg, eta)
	}
}

func TestNewProgressWithETAClamps(t *testing.T) {
	t.Parallel()
	if got := len(NewProgressWithETA(0).values); got != 1 {
		t.Errorf("tasks = %d, want 1", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "--"},
		{300 * time.Millisecond, "<1s"},
		{61*time.Second + 400*time.Millisecond, "1m1s"},
	}
	for _, tc := range tests {
		if got := FormatETA(tc.in); got != tc.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatProgressBar(t *testing.T) {
	t.Parallel()
	if got := FormatProgressBar(0.5, 10); got != strings.Repeat("█", 5)+strings.Repeat("░", 5) {
		t.Errorf("half bar = %q", got)
	}
	if got := FormatProgressBar(2, 4); got != strings.Repeat("█", 4) {
		t.Errorf("overfull bar = %q", got)
	}
	if got := FormatProgressBar(0.5, 0); got != "" {
		t.Errorf("zero width bar = %q", got)
	}
	got := FormatProgressBarWithETA(0.25, 0, 4)
	if !strings.Contains(got, " 25.0%") || !strings.HasSuffix(got, "ETA --") {
		t.Errorf("FormatProgressBarWithETA = %q", got)
	}
}
