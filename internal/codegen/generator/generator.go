package generator

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"golang.org/x/crypto/blake2b"

	"github.com/Alia5/shadergen/internal/codegen/generator/cpp"
	"github.com/Alia5/shadergen/internal/shader"
)

// ErrStale is returned by Check when the header on disk does not match what
// Render would produce.
var ErrStale = errors.New("generated header is out of date")

type Generator struct {
	opts   cpp.Options
	logger *slog.Logger
}

// Result describes one successfully written header.
type Result struct {
	Path    string // "-" for stdout
	Shaders int
	Bytes   int
	Digest  string // BLAKE2b-256, hex
}

func New(opts cpp.Options, logger *slog.Logger) *Generator {
	return &Generator{
		opts:   opts,
		logger: logger,
	}
}

// Render renders col into memory. On failure every violation is logged and
// the combined error returned.
func (g *Generator) Render(col shader.Collection) ([]byte, error) {
	g.logger.Debug("Rendering header", "shaders", len(col), "namespace", g.opts.Namespace)

	out, err := cpp.Render(col, g.opts)
	if err != nil {
		errs := multierr.Errors(err)
		for _, e := range errs {
			g.logger.Error("Invalid shader", "error", e)
		}
		return nil, fmt.Errorf("render header (%d problem(s)): %w", len(errs), err)
	}
	return out, nil
}

// WriteFile renders col and replaces path with the result. Nothing is written
// when rendering fails, and the file is swapped in atomically.
func (g *Generator) WriteFile(col shader.Collection, path string) (*Result, error) {
	out, err := g.Render(col)
	if err != nil {
		return nil, err
	}
	if err := writeFileAtomic(path, out); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}

	res := &Result{Path: path, Shaders: len(col), Bytes: len(out), Digest: Digest(out)}
	g.logger.Debug("Replaced header", "file", path)
	return res, nil
}

// WriteTo renders col and writes the complete result to w.
func (g *Generator) WriteTo(w io.Writer, col shader.Collection) (*Result, error) {
	out, err := g.Render(col)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(out); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	res := &Result{Path: "-", Shaders: len(col), Bytes: len(out), Digest: Digest(out)}
	return res, nil
}

// Check renders col and compares it with the header at path. It returns an
// error wrapping ErrStale when the file is missing or differs.
func (g *Generator) Check(col shader.Collection, path string) error {
	want, err := g.Render(col)
	if err != nil {
		return err
	}

	have, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s does not exist", ErrStale, path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	wantDigest, haveDigest := Digest(want), Digest(have)
	if !bytes.Equal(want, have) {
		g.logger.Warn("Header is out of date", "file", path, "want", wantDigest, "have", haveDigest)
		return fmt.Errorf("%w: %s", ErrStale, path)
	}

	g.logger.Info("Header is up to date", "file", path, "digest", haveDigest)
	return nil
}

// ProcessedNameError reports two shaders whose processed copies would land
// on the same file.
type ProcessedNameError struct {
	File   string
	First  string
	Second string
}

func (e *ProcessedNameError) Error() string {
	return fmt.Sprintf("shaders %q and %q both write processed file %q", e.First, e.Second, e.File)
}

// WriteProcessed writes each descriptor's source to dir, one file per shader
// named after the base of the descriptor name. File names are checked for
// every shader before anything is written.
func WriteProcessed(dir string, col shader.Collection) error {
	var errs error
	files := make([]string, len(col))
	seen := make(map[string]string, len(col))
	for i, d := range col {
		name := filepath.Base(d.Name)
		if d.Name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
			errs = multierr.Append(errs, fmt.Errorf("shader %q: cannot derive a file name", d.Name))
			continue
		}
		if first, dup := seen[name]; dup {
			errs = multierr.Append(errs, &ProcessedNameError{File: name, First: first, Second: d.Name})
			continue
		}
		seen[name] = d.Name
		files[i] = name
	}
	if errs != nil {
		return errs
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create processed shader directory: %w", err)
	}
	for i, d := range col {
		if err := os.WriteFile(filepath.Join(dir, files[i]), []byte(d.Source), 0o644); err != nil {
			return fmt.Errorf("write processed shader %q: %w", d.Name, err)
		}
	}
	return nil
}

// Digest returns the hex encoded BLAKE2b-256 sum of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
