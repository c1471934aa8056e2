// Package loader builds shader collections from the file system, either by
// scanning a directory and classifying files by extension or by reading a
// manifest that lists shaders explicitly. Sources may be expanded as
// templates on the way in, so shaders can share code through includes.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Alia5/shadergen/internal/shader"
)

// Extensions maps file name suffixes to stages.
type Extensions struct {
	Vertex   []string
	Fragment []string
	Geometry []string
}

// DefaultExtensions returns the suffixes recognized when none are configured.
func DefaultExtensions() Extensions {
	return Extensions{
		Vertex:   []string{".vert", ".vertex"},
		Fragment: []string{".frag", ".fragment"},
		Geometry: []string{".geom", ".geometry"},
	}
}

func (e Extensions) suffixes(s shader.Stage) []string {
	switch s {
	case shader.StageVertex:
		return e.Vertex
	case shader.StageFragment:
		return e.Fragment
	case shader.StageGeometry:
		return e.Geometry
	default:
		return nil
	}
}

// Classify returns the stage whose suffix list matches filename. Stages are
// tried in shader.Stages order.
func (e Extensions) Classify(filename string) (shader.Stage, bool) {
	for _, stage := range shader.Stages {
		for _, suffix := range e.suffixes(stage) {
			if suffix != "" && strings.HasSuffix(filename, suffix) {
				return stage, true
			}
		}
	}
	return 0, false
}

// ScanDir loads every regular file in dir whose name matches one of exts.
// Subdirectories are not descended into. Files are returned sorted by name,
// named after the file and tagged with the stage's GL name. With expand set,
// each source goes through Expand with dir as the include root.
func ScanDir(dir string, exts Extensions, expand bool, logger *slog.Logger) (shader.Collection, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read shader directory: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var col shader.Collection
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		stage, ok := exts.Classify(name)
		if !ok {
			logger.Debug("Skipping file with unknown extension", "file", name)
			continue
		}

		src, err := readShader(filepath.Join(dir, name))
		if err == nil && expand {
			src, err = Expand(dir, name, src)
		}
		if err != nil {
			return nil, fmt.Errorf("load shader %q: %w", name, err)
		}

		logger.Info("Loaded shader", "name", name, "stage", stage.String())
		col = append(col, shader.Descriptor{
			Name:   name,
			Stage:  stage.GLName(),
			Source: src,
		})
	}
	return col, nil
}

func readShader(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
