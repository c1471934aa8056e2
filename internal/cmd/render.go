package cmd

import (
	"log/slog"
	"os"

	"github.com/Alia5/shadergen/internal/codegen/generator"
)

// Render generates the shader header.
type Render struct {
	Source    Source `embed:""`
	Header    Header `embed:""`
	Output    string `help:"Header file to write, or '-' for stdout" short:"o" default:"shaders.h" env:"SHADERGEN_OUTPUT"`
	Processed string `help:"Directory receiving a copy of every loaded shader source" env:"SHADERGEN_PROCESSED_DIR"`
}

// Run is called by Kong when the render command is executed.
func (r *Render) Run(logger *slog.Logger) error {
	logger.Info("Starting header generation", "output", r.Output)

	col, err := r.Source.Load(logger)
	if err != nil {
		return err
	}

	gen := generator.New(r.Header.Options(r.Output), logger)
	var res *generator.Result
	if r.Output == "-" {
		res, err = gen.WriteTo(os.Stdout, col)
	} else {
		res, err = gen.WriteFile(col, r.Output)
	}
	if err != nil {
		return err
	}
	logger.Info("Generated header", "file", res.Path, "shaders", res.Shaders, "bytes", res.Bytes, "digest", res.Digest)

	if r.Processed != "" {
		if err := generator.WriteProcessed(r.Processed, col); err != nil {
			return err
		}
		logger.Info("Wrote processed shaders", "dir", r.Processed, "count", len(col))
	}
	return nil
}
