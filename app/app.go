// Package app assembles plugins and systems into a running program. A runner,
// usually installed by a windowing plugin, owns the frame loop and drives the
// stages.
package app

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"cube-playground/world"
)

type Stage int

const (
	// Startup systems run once, before the first frame.
	Startup Stage = iota
	// Update systems run every frame before the scene is drawn.
	Update
	// Overlay systems run every frame after the scene and gizmos are drawn,
	// before the frame is presented.
	Overlay

	stageCount
)

func (s Stage) String() string {
	switch s {
	case Startup:
		return "Startup"
	case Update:
		return "Update"
	case Overlay:
		return "Overlay"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Plugin adds systems and resources to an App.
type Plugin interface {
	Build(a *App)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(a *App)

func (f PluginFunc) Build(a *App) { f(a) }

// Runner owns the frame loop. It returns when the program should stop.
type Runner func(ctx context.Context, a *App) error

var ErrNoRunner = errors.New("app: no runner installed")

type App struct {
	World *world.World

	schedules [stageCount]Schedule
	plugins   map[reflect.Type]bool
	runner    Runner
	started   bool
}

// AppExit is the resource systems set to stop the app after the current
// frame.
type AppExit struct {
	Requested bool
}

func New() *App {
	a := &App{
		World:   world.New(),
		plugins: make(map[reflect.Type]bool),
	}
	world.Insert(a.World, AppExit{})
	return a
}

// AddPlugins builds each plugin immediately. A plugin type added twice is
// built once.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		t := reflect.TypeOf(p)
		if _, isFunc := p.(PluginFunc); !isFunc && a.plugins[t] {
			Logger().Warn("plugin added twice", zap.Stringer("plugin", t))
			continue
		}
		a.plugins[t] = true
		p.Build(a)
		Logger().Debug("plugin built", zap.Stringer("plugin", t))
	}
	return a
}

// AddSystems appends systems to stage, keeping their order.
func (a *App) AddSystems(stage Stage, systems ...SystemFunc) *App {
	sched := a.Schedule(stage)
	for _, fn := range systems {
		sched.Add(fn)
	}
	return a
}

// InsertResource stores value in the app's world.
func InsertResource[T any](a *App, value T) *App {
	world.Insert(a.World, value)
	return a
}

func (a *App) Schedule(stage Stage) *Schedule {
	if stage < 0 || stage >= stageCount {
		panic(fmt.Sprintf("app: unknown stage %d", int(stage)))
	}
	return &a.schedules[stage]
}

func (a *App) SetRunner(r Runner) {
	a.runner = r
}

// Startup runs the Startup stage the first time it is called.
func (a *App) Startup() {
	if a.started {
		return
	}
	a.started = true
	a.schedules[Startup].Run(a.World)
}

// RunStage runs every system of stage once.
func (a *App) RunStage(stage Stage) {
	a.Schedule(stage).Run(a.World)
}

// Exit asks the runner to stop after the current frame.
func (a *App) Exit() {
	world.MustResource[AppExit](a.World).Requested = true
}

func (a *App) ExitRequested() bool {
	return world.MustResource[AppExit](a.World).Requested
}

// Run hands control to the runner.
func (a *App) Run(ctx context.Context) error {
	if a.runner == nil {
		return ErrNoRunner
	}
	Logger().Info("app starting",
		zap.Strings("startup", a.schedules[Startup].Names()),
		zap.Strings("update", a.schedules[Update].Names()),
		zap.Strings("overlay", a.schedules[Overlay].Names()))
	err := a.runner(ctx, a)
	a.logStats()
	return err
}

func (a *App) logStats() {
	for stage := Update; stage < stageCount; stage++ {
		for _, s := range a.schedules[stage].Stats().Systems {
			if s.ExecutionCount == 0 {
				continue
			}
			Logger().Debug("system stats",
				zap.Stringer("stage", stage),
				zap.String("system", s.Name),
				zap.Int64("runs", s.ExecutionCount),
				zap.Duration("avg", s.AvgDuration),
				zap.Duration("max", s.MaxDuration))
		}
	}
}
