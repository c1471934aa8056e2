package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/codegen/generator/cpp"
	"github.com/Alia5/shadergen/internal/loader"
	"github.com/Alia5/shadergen/internal/shader"
)

// Source selects where shaders are loaded from. Shaders found by scanning
// Input come first, followed by the Manifest entries.
type Source struct {
	Input       string   `help:"Directory scanned for shader files" short:"i" env:"SHADERGEN_INPUT"`
	Manifest    string   `help:"Manifest listing shaders (JSON, YAML or TOML)" short:"m" env:"SHADERGEN_MANIFEST"`
	VertexExt   []string `help:"File suffixes of vertex shaders" default:".vert,.vertex" env:"SHADERGEN_VERTEX_EXT"`
	FragmentExt []string `help:"File suffixes of fragment shaders" default:".frag,.fragment" env:"SHADERGEN_FRAGMENT_EXT"`
	GeometryExt []string `help:"File suffixes of geometry shaders" default:".geom,.geometry" env:"SHADERGEN_GEOMETRY_EXT"`
	Expand      bool     `help:"Expand sources as Go templates so shaders can include shared files" default:"true" negatable:"" env:"SHADERGEN_EXPAND"`
}

func (s *Source) extensions() loader.Extensions {
	return loader.Extensions{
		Vertex:   s.VertexExt,
		Fragment: s.FragmentExt,
		Geometry: s.GeometryExt,
	}
}

// Load builds the shader collection.
func (s *Source) Load(logger *slog.Logger) (shader.Collection, error) {
	if s.Input == "" && s.Manifest == "" {
		return nil, errors.New("no shader source configured; set --input and/or --manifest")
	}

	var col shader.Collection
	if s.Input != "" {
		logger.Info("Scanning shader directory", "dir", s.Input)
		scanned, err := loader.ScanDir(s.Input, s.extensions(), s.Expand, logger)
		if err != nil {
			return nil, err
		}
		col = append(col, scanned...)
	}
	if s.Manifest != "" {
		logger.Info("Reading shader manifest", "file", s.Manifest)
		listed, err := loader.LoadManifest(s.Manifest, s.Expand)
		if err != nil {
			return nil, fmt.Errorf("load manifest: %w", err)
		}
		col = append(col, listed...)
	}

	logger.Info("Loaded shaders", "count", len(col))
	return col, nil
}

// Header holds the layout options of the generated header.
type Header struct {
	Namespace   string `help:"Namespace enclosing the generated classes" default:"renderer" env:"SHADERGEN_NAMESPACE"`
	BaseInclude string `help:"Header declaring vertex_shader, fragment_shader and geometry_shader" default:"shader.h" env:"SHADERGEN_BASE_INCLUDE"`
	Guard       string `help:"Include guard style" enum:"pragma,ifndef" default:"pragma" env:"SHADERGEN_GUARD"`
	GuardName   string `help:"Include guard macro; derived from namespace and output file when empty" env:"SHADERGEN_GUARD_NAME"`
}

// Options converts the flags into renderer options for a header written to output.
func (h *Header) Options(output string) cpp.Options {
	opts := cpp.Options{
		Namespace:   h.Namespace,
		BaseInclude: h.BaseInclude,
		Guard:       cpp.GuardStyle(h.Guard),
		GuardName:   h.GuardName,
	}
	if opts.Guard == cpp.GuardIfndef && opts.GuardName == "" {
		file := filepath.Base(output)
		if output == "" || output == "-" {
			file = "shaders.h"
		}
		opts.GuardName = common.IncludeGuard(h.Namespace, file)
	}
	return opts
}
