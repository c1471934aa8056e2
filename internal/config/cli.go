// Package config declares the command line surface of shadergen.
package config

import (
	"github.com/Alia5/shadergen/internal/cmd"

	"github.com/alecthomas/kong"
)

// CLI is the root command parsed by Kong.
type CLI struct {
	ConfigFile string           `name:"config" help:"Path to a configuration file (json, yaml or toml)" type:"path" env:"SHADERGEN_CONFIG"`
	Log        cmd.Log          `embed:"" prefix:"log."`
	Version    kong.VersionFlag `help:"Print version and exit"`

	Render cmd.Render        `cmd:"" help:"Generate the C++ shader header"`
	Check  cmd.Check         `cmd:"" help:"Fail if the header on disk is out of date"`
	List   cmd.List          `cmd:"" help:"List shaders and the classes they map to"`
	Config cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
