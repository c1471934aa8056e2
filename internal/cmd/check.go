package cmd

import (
	"log/slog"

	"github.com/Alia5/shadergen/internal/codegen/generator"
)

// Check verifies that a committed header matches the current shader sources.
type Check struct {
	Source Source `embed:""`
	Header Header `embed:""`
	Output string `help:"Header file to compare against" short:"o" default:"shaders.h" env:"SHADERGEN_OUTPUT"`
}

// Run is called by Kong when the check command is executed.
func (c *Check) Run(logger *slog.Logger) error {
	col, err := c.Source.Load(logger)
	if err != nil {
		return err
	}
	return generator.New(c.Header.Options(c.Output), logger).Check(col, c.Output)
}
