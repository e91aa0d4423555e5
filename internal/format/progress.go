package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressWithETA tracks the progress of several concurrent tasks and
// estimates the remaining time from the average rate since start.
type ProgressWithETA struct {
	values    []float64
	startTime time.Time
	now       func() time.Time
	lastETA   time.Duration
}

// NewProgressWithETA creates a tracker for numTasks tasks. Non-positive
// counts are clamped to one.
func NewProgressWithETA(numTasks int) *ProgressWithETA {
	if numTasks < 1 {
		numTasks = 1
	}
	return &ProgressWithETA{
		values:    make([]float64, numTasks),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// UpdateWithETA records value (clamped to [0, 1]) for task index and returns
// the average progress and the estimated remaining time. Out-of-range
// indices are ignored.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	if index >= 0 && index < len(p.values) {
		p.values[index] = min(max(value, 0), 1)
	}
	avg := p.CalculateAverage()
	p.lastETA = p.estimate(avg)
	return avg, p.lastETA
}

// CalculateAverage returns the mean progress over all tasks.
func (p *ProgressWithETA) CalculateAverage() float64 {
	var sum float64
	for _, v := range p.values {
		sum += v
	}
	return sum / float64(len(p.values))
}

// GetETA returns the estimate computed by the last update.
func (p *ProgressWithETA) GetETA() time.Duration {
	return p.lastETA
}

func (p *ProgressWithETA) estimate(avg float64) time.Duration {
	if avg <= 0 {
		return 0
	}
	if avg >= 1 {
		return 0
	}
	elapsed := p.now().Sub(p.startTime)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

// FormatETA renders an ETA estimate, or "--" when none is available.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "--"
	}
	if eta < time.Second {
		return "<1s"
	}
	return eta.Round(time.Second).String()
}

// FormatProgressBar renders progress as a fixed-width bar.
func FormatProgressBar(progress float64, width int) string {
	if width < 1 {
		return ""
	}
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatProgressBarWithETA renders the bar followed by the percentage and ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA %s", FormatProgressBar(progress, width), progress*100, FormatETA(eta))
}
