package cpp

import (
	"fmt"
	"strings"

	"github.com/Alia5/shadergen/internal/codegen/common"
)

// GuardStyle selects how the generated header protects against double inclusion.
type GuardStyle string

const (
	GuardPragmaOnce GuardStyle = "pragma"
	GuardIfndef     GuardStyle = "ifndef"
)

const (
	DefaultNamespace   = "renderer"
	DefaultBaseInclude = "shader.h"
)

// Options controls the scaffolding around the generated classes.
// The zero value renders a "#pragma once" header in namespace "renderer"
// that includes "shader.h".
type Options struct {
	Namespace   string     // enclosing namespace, "::" separated for nesting
	BaseInclude string     // header declaring vertex_shader, fragment_shader and geometry_shader
	Guard       GuardStyle // include guard style
	GuardName   string     // macro for GuardIfndef; derived from Namespace when empty
}

func (o Options) withDefaults() Options {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if o.BaseInclude == "" {
		o.BaseInclude = DefaultBaseInclude
	}
	if o.Guard == "" {
		o.Guard = GuardPragmaOnce
	}
	if o.Guard == GuardIfndef && o.GuardName == "" {
		o.GuardName = common.IncludeGuard(o.Namespace, "shaders.h")
	}
	return o
}

func (o Options) validate() error {
	if !common.IsQualifiedName(o.Namespace) {
		return fmt.Errorf("invalid namespace %q", o.Namespace)
	}
	if strings.ContainsAny(o.BaseInclude, "\"\n\r") {
		return fmt.Errorf("invalid base include %q", o.BaseInclude)
	}
	switch o.Guard {
	case GuardPragmaOnce:
	case GuardIfndef:
		if !common.IsIdentifier(o.GuardName) {
			return fmt.Errorf("invalid include guard name %q", o.GuardName)
		}
	default:
		return fmt.Errorf("unsupported include guard style %q (supported: %s, %s)", o.Guard, GuardPragmaOnce, GuardIfndef)
	}
	return nil
}
