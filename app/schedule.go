package app

import (
	"reflect"
	"runtime"
	"strings"
	"time"

	"cube-playground/world"
)

// SystemFunc is one step of a stage, run with the world every time the stage
// runs.
type SystemFunc func(w *world.World)

// ScheduleStats provides statistics about schedule execution.
type ScheduleStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type system struct {
	name  string
	run   SystemFunc
	stats systemStatsInternal
}

// Schedule runs its systems in the order they were added.
type Schedule struct {
	systems []*system
}

func (s *Schedule) Add(fn SystemFunc) {
	s.systems = append(s.systems, &system{
		name:  systemName(fn),
		run:   fn,
		stats: systemStatsInternal{minDuration: time.Duration(1<<63 - 1)},
	})
}

// Names lists the systems in run order.
func (s *Schedule) Names() []string {
	names := make([]string, len(s.systems))
	for i, sys := range s.systems {
		names[i] = sys.name
	}
	return names
}

func (s *Schedule) Len() int {
	return len(s.systems)
}

// Run executes every system once.
func (s *Schedule) Run(w *world.World) {
	for _, sys := range s.systems {
		start := time.Now()
		sys.run(w)
		duration := time.Since(start)

		stats := &sys.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Stats returns statistics about system execution.
func (s *Schedule) Stats() ScheduleStats {
	stats := ScheduleStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, sys := range s.systems {
		internal := sys.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           sys.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}
	return stats
}

// systemName turns the function symbol into "pkg.Func". Closures keep
// their generated suffix so they stay distinguishable.
func systemName(fn SystemFunc) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "system"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
