// Package gizmo collects immediate-mode debug lines. Systems queue lines every
// frame into a named group; the renderer draws each group with that group's
// Config and then clears the buffers.
package gizmo

import (
	"sort"

	"cube-playground/core"
	"cube-playground/math"
)

// DefaultGroup is the group every store starts with.
const DefaultGroup = "default"

// Line is one coloured segment.
type Line struct {
	Start, End math.Vec3
	Color      core.Color
}

// Config is the drawing setup of a group.
type Config struct {
	Enabled   bool
	LineWidth float32 // pixels
	// DepthBias shifts the lines in depth: 0 keeps normal depth testing,
	// -1 draws them on top of everything, 1 pushes them to the far plane.
	DepthBias float32
}

func DefaultConfig() Config {
	return Config{Enabled: true, LineWidth: 2}
}

// Gizmos is the line buffer of one group.
type Gizmos struct {
	lines []Line
}

func (g *Gizmos) Line(start, end math.Vec3, color core.Color) {
	g.lines = append(g.lines, Line{Start: start, End: end, Color: color})
}

// Ray draws from start to start+vector.
func (g *Gizmos) Ray(start, vector math.Vec3, color core.Color) {
	g.Line(start, start.Add(vector), color)
}

// Arrow draws a line from start to end with a four-pronged tip at end whose
// prongs are a tenth of the arrow's length.
func (g *Gizmos) Arrow(start, end math.Vec3, color core.Color) {
	g.Line(start, end, color)

	shaft := end.Sub(start)
	length := shaft.Length()
	if length == 0 {
		return
	}
	tipLength := length / 10
	rotation := math.QuaternionFromRotationArc(math.Vec3Right, shaft.Mul(1/length))
	for _, tip := range arrowTips {
		g.Line(end, rotation.RotateVector(tip.Mul(tipLength)).Add(end), color)
	}
}

// tip directions for an arrow pointing along +X
var arrowTips = [4]math.Vec3{
	math.NewVec3(-1, 1, 0).Normalize(),
	math.NewVec3(-1, 0, 1).Normalize(),
	math.NewVec3(-1, -1, 0).Normalize(),
	math.NewVec3(-1, 0, -1).Normalize(),
}

func (g *Gizmos) Lines() []Line {
	return g.lines
}

func (g *Gizmos) Clear() {
	g.lines = g.lines[:0]
}

type group struct {
	config Config
	gizmos Gizmos
}

// Store holds every registered group, keyed by name.
type Store struct {
	groups map[string]*group
}

func NewStore() *Store {
	s := &Store{groups: make(map[string]*group)}
	s.Register(DefaultGroup)
	return s
}

// Register adds a group with DefaultConfig. Registering twice keeps the
// existing config.
func (s *Store) Register(name string) {
	if _, ok := s.groups[name]; ok {
		return
	}
	s.groups[name] = &group{config: DefaultConfig()}
}

// Group returns the line buffer of name, registering it on first use.
func (s *Store) Group(name string) *Gizmos {
	s.Register(name)
	return &s.groups[name].gizmos
}

// Config returns the mutable config of name, registering it on first use.
func (s *Store) Config(name string) *Config {
	s.Register(name)
	return &s.groups[name].config
}

// Names lists the registered groups in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.groups))
	for name := range s.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EachConfig visits every group's config in name order.
func (s *Store) EachConfig(fn func(name string, cfg *Config)) {
	for _, name := range s.Names() {
		fn(name, &s.groups[name].config)
	}
}

// Each visits every group with its config and queued lines in name order.
func (s *Store) Each(fn func(name string, cfg Config, lines []Line)) {
	for _, name := range s.Names() {
		g := s.groups[name]
		fn(name, g.config, g.gizmos.Lines())
	}
}

// ClearAll drops every queued line, keeping configs.
func (s *Store) ClearAll() {
	for _, g := range s.groups {
		g.gizmos.Clear()
	}
}
