package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/shadergen/internal/shader"
)

// Manifest lists shaders explicitly. Each entry carries its source inline or
// points at a file relative to the manifest.
//
//	shaders:
//	  - name: basic.vert
//	    stage: GL_VERTEX_SHADER
//	    path: shaders/basic.vert
type Manifest struct {
	Shaders []ManifestEntry `json:"shaders" yaml:"shaders" toml:"shaders"`
}

type ManifestEntry struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Stage  string `json:"stage" yaml:"stage" toml:"stage"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
}

// ParseManifest decodes a manifest in the given format ("json", "yaml" or "toml").
func ParseManifest(data []byte, format string) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case "json":
		err = json.Unmarshal(data, &m)
	case "yaml":
		err = yaml.Unmarshal(data, &m)
	case "toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported manifest format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s manifest: %w", format, err)
	}
	return &m, nil
}

// FormatFromPath infers the manifest format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("cannot infer manifest format from %q (want .json, .yaml, .yml or .toml)", path)
	}
}

// LoadManifest reads the manifest at path and resolves it to a collection in
// manifest order. Entry paths, and includes when expand is set, are relative
// to the manifest's directory. Every broken entry is reported, not just the
// first.
func LoadManifest(path string, expand bool) (shader.Collection, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := ParseManifest(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m.Resolve(filepath.Dir(path), expand)
}

// Resolve turns the manifest entries into descriptors, reading referenced
// files relative to baseDir. With expand set, inline and file sources alike
// go through Expand with baseDir as the include root.
func (m *Manifest) Resolve(baseDir string, expand bool) (shader.Collection, error) {
	var errs error
	col := make(shader.Collection, 0, len(m.Shaders))

	for i, e := range m.Shaders {
		name := e.Name
		if name == "" && e.Path != "" {
			name = filepath.Base(e.Path)
		}

		switch {
		case e.Path != "" && e.Source != "":
			errs = multierr.Append(errs, fmt.Errorf("manifest entry #%d (%s): both path and source set", i, name))
			continue
		case e.Path == "" && name == "":
			errs = multierr.Append(errs, fmt.Errorf("manifest entry #%d: name required for inline source", i))
			continue
		}

		src := e.Source
		if e.Path != "" {
			p := e.Path
			if !filepath.IsAbs(p) {
				p = filepath.Join(baseDir, p)
			}
			s, err := readShader(p)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("load shader %q: %w", name, err))
				continue
			}
			src = s
		}
		if expand {
			s, err := Expand(baseDir, name, src)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("expand shader %q: %w", name, err))
				continue
			}
			src = s
		}

		col = append(col, shader.Descriptor{Name: name, Stage: e.Stage, Source: src})
	}

	if errs != nil {
		return nil, errs
	}
	return col, nil
}
