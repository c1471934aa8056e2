package main

import (
	"io"
	"os"
	"strings"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/config"
	"github.com/Alia5/shadergen/internal/configpaths"
	"github.com/Alia5/shadergen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	version, err := common.GetVersion()
	if err != nil {
		version = common.Version
	}

	var cli config.CLI
	ctx := kong.Parse(&cli,
		kong.Name("shadergen"),
		kong.Description("Generate C++ shader class headers from GLSL sources"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		// Load configuration from JSON/YAML/TOML in priority order; flags/env override config values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(log.Options{
		Level:   cli.Log.Level,
		File:    cli.Log.File,
		Format:  cli.Log.Format,
		Console: consoleWriter(ctx.Command(), cli.Render.Output),
	})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// consoleWriter keeps stdout clean for commands that print their result there.
func consoleWriter(command, output string) io.Writer {
	switch {
	case command == "list":
		return os.Stderr
	case command == "render" && output == "-":
		return os.Stderr
	default:
		return os.Stdout
	}
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("SHADERGEN_CONFIG"); v != "" {
		return v
	}
	return ""
}
