package resourcemonitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(v float64, err error) func() (float64, error) {
	return func() (float64, error) { return v, err }
}

func TestMonitor_Check(t *testing.T) {
	cases := []struct {
		name     string
		cpu      func() (float64, error)
		mem      func() (float64, error)
		want     bool
		wantLogs []logrus.Level
	}{
		{
			name: "idle",
			cpu:  fixed(10, nil),
			mem:  fixed(20, nil),
			want: false,
		},
		{
			name:     "busy cpu",
			cpu:      fixed(95, nil),
			mem:      fixed(20, nil),
			want:     true,
			wantLogs: []logrus.Level{logrus.WarnLevel},
		},
		{
			name:     "busy cpu and memory",
			cpu:      fixed(95, nil),
			mem:      fixed(99, nil),
			want:     true,
			wantLogs: []logrus.Level{logrus.WarnLevel, logrus.WarnLevel},
		},
		{
			name:     "cpu stat error",
			cpu:      fixed(0, errors.New("no cpu stats")),
			mem:      fixed(20, nil),
			want:     false,
			wantLogs: []logrus.Level{logrus.ErrorLevel},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()

			m := New(log, DefaultOptions)
			m.cpuPercent, m.memPercent = tc.cpu, tc.mem

			assert.Equal(t, tc.want, m.Check())

			var levels []logrus.Level
			for _, e := range hook.AllEntries() {
				levels = append(levels, e.Level)
			}
			assert.Equal(t, tc.wantLogs, levels)
		})
	}
}

func TestMonitor_StartInBackground(t *testing.T) {
	log, hook := test.NewNullLogger()

	m := New(log, Options{Interval: 10 * time.Millisecond, CPUThresholdPct: 50, MemThresholdPct: 50})
	m.cpuPercent, m.memPercent = fixed(90, nil), fixed(10, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartInBackground(ctx)

	require.Eventually(t, func() bool {
		return len(hook.AllEntries()) > 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestMonitor_HostStats(t *testing.T) {
	if testing.Short() {
		t.Skip("measures CPU load for a second")
	}
	load, err := cpuPercent()
	require.NoError(t, err)
	assert.True(t, load >= 0)

	used, err := memPercent()
	require.NoError(t, err)
	assert.True(t, used > 0)
}
