// Package resourcemonitor warns when the host running the greeter is overloaded.
package resourcemonitor

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultInterval is default interval between resource checks.
	DefaultInterval = 1 * time.Minute
	// DefaultCPUThresholdPct is default percentage above which CPU load is considered as high.
	DefaultCPUThresholdPct = 80.0
	// DefaultMemThresholdPct is default percentage above which memory load is considered as high.
	DefaultMemThresholdPct = 80.0
	cpuMeasureInterval     = 1 * time.Second
)

// DefaultOptions define default monitoring options.
var DefaultOptions = Options{
	Interval:        DefaultInterval,
	CPUThresholdPct: DefaultCPUThresholdPct,
	MemThresholdPct: DefaultMemThresholdPct,
}

// Options define monitoring options.
type Options struct {
	Interval        time.Duration
	CPUThresholdPct float64
	MemThresholdPct float64
}

// Monitor monitors resources.
type Monitor struct {
	log  logrus.FieldLogger
	opts Options

	cpuPercent func() (float64, error)
	memPercent func() (float64, error)
}

// New returns a new monitor.
func New(log logrus.FieldLogger, opts Options) *Monitor {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Monitor{
		log:        log,
		opts:       opts,
		cpuPercent: cpuPercent,
		memPercent: memPercent,
	}
}

// StartInBackground starts a goroutine that checks resources.
// It may be canceled by ctx.
func (m *Monitor) StartInBackground(ctx context.Context) {
	ticker := time.NewTicker(m.opts.Interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.Check()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Check checks resource consumption and logs a warning for every exceeded threshold.
// It reports whether the host is overloaded.
func (m *Monitor) Check() bool {
	overloaded := false

	if load, err := m.cpuPercent(); err != nil {
		m.log.WithError(err).Error("Failed to check CPU load.")
	} else if load > m.opts.CPUThresholdPct {
		m.log.Warnf("CPU load is too high: %v", load)
		overloaded = true
	}

	if used, err := m.memPercent(); err != nil {
		m.log.WithError(err).Error("Failed to check memory load.")
	} else if used > m.opts.MemThresholdPct {
		m.log.Warnf("Memory load is too high: %v", used)
		overloaded = true
	}

	return overloaded
}

func cpuPercent() (float64, error) {
	stat, err := cpu.Percent(cpuMeasureInterval, false)
	if err != nil {
		return 0, err
	}
	if len(stat) == 0 {
		return 0, nil
	}
	return stat[0], nil
}

func memPercent() (float64, error) {
	stat, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return stat.UsedPercent, nil
}
