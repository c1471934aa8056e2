// Package shader holds the input model of the generator: shader descriptors,
// ordered collections of them, and the closed set of pipeline stages a
// descriptor can resolve to.
package shader

import (
	"fmt"
	"strings"
)

// Descriptor describes one shader unit as known to the build system.
type Descriptor struct {
	Name   string // logical name, e.g. "basic.vert"; may contain separators
	Stage  string // raw stage text, resolved with ParseStage
	Source string // GLSL source text
}

// Collection is an ordered sequence of descriptors. Output follows this order.
type Collection []Descriptor

// Stage is a graphics pipeline stage supported by the generator.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
)

// Stages lists every supported stage in declaration order.
var Stages = []Stage{StageVertex, StageFragment, StageGeometry}

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// GLName returns the OpenGL enum name of the stage, e.g. GL_VERTEX_SHADER.
func (s Stage) GLName() string {
	return "GL_" + strings.ToUpper(s.String()) + "_SHADER"
}

// BaseType returns the C++ base class the generated shader class derives from.
func (s Stage) BaseType() string {
	return s.String() + "_shader"
}

// stageAliases maps normalized stage spellings to stages. Keys have the
// "gl_" prefix and "_shader" suffix already removed.
var stageAliases = map[string]Stage{
	"vertex":   StageVertex,
	"vert":     StageVertex,
	"fragment": StageFragment,
	"frag":     StageFragment,
	"geometry": StageGeometry,
	"geom":     StageGeometry,
}

// ParseStage resolves a raw stage spelling to a Stage. Matching is case
// insensitive and ignores an API "GL_" prefix and a "_SHADER" suffix, so
// "GL_VERTEX_SHADER", "vertex_shader", "Vertex" and "vert" all resolve to
// StageVertex. Anything else yields an *UnknownStageError.
func ParseStage(raw string) (Stage, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimPrefix(key, "gl_")
	key = strings.TrimSuffix(key, "_shader")
	if s, ok := stageAliases[key]; ok {
		return s, nil
	}
	return 0, &UnknownStageError{Stage: raw}
}

// UnknownStageError reports a stage value that does not name a supported stage.
type UnknownStageError struct {
	Name  string // descriptor name, empty when not known
	Stage string
}

func (e *UnknownStageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("unknown shader stage %q", e.Stage)
	}
	return fmt.Sprintf("shader %q: unknown shader stage %q", e.Name, e.Stage)
}
