package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file for a specific command.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"render,check,list"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to <command>.<format> in the current directory)"`
	Global  bool   `help:"Write into the user configuration directory instead of the current directory"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

// Run generates a configuration template dynamically via reflection of the command structs and tags.
func (c *ConfigInit) Run() error {
	format := normalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	local, err := commandFlags(c.Command)
	if err != nil {
		return err
	}
	root := configLayout(format, c.Command, flagDefaults(reflect.TypeOf(Log{}), "log."), local)

	dest := c.Output
	if dest == "" {
		if c.Global {
			dest, err = configpaths.DefaultNamedConfigPath(c.Command, format)
			if err != nil {
				return fmt.Errorf("resolve config directory: %w", err)
			}
		} else {
			dest = c.Command + "." + configpaths.Extension(format)
		}
	}

	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}

	data, err := marshalConfig(root, format)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func commandFlags(command string) (map[string]any, error) {
	switch command {
	case "render":
		return flagDefaults(reflect.TypeOf(Render{}), ""), nil
	case "check":
		return flagDefaults(reflect.TypeOf(Check{}), ""), nil
	case "list":
		return flagDefaults(reflect.TypeOf(List{}), ""), nil
	default:
		return nil, errors.New("unknown command; expected 'render', 'check' or 'list'")
	}
}

// configLayout arranges flag values the way each Kong configuration loader
// looks them up:
//   - json (kong.JSON): top-level keys, '-' in flag names written as '_'.
//   - yaml (kong-yaml): command flags nested under the command name, global
//     flags at the top level.
//   - toml (kong-toml): top-level flag names only; other keys are rejected.
func configLayout(format, command string, global, local map[string]any) map[string]any {
	root := make(map[string]any, len(global)+len(local))
	for k, v := range global {
		root[k] = v
	}
	switch format {
	case "json":
		for k, v := range local {
			root[strings.ReplaceAll(k, "-", "_")] = v
		}
	case "yaml":
		root[command] = local
	default:
		for k, v := range local {
			root[k] = v
		}
	}
	return root
}

func marshalConfig(root map[string]any, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func normalizeFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// flagName returns the name Kong derives for a flag field.
func flagName(f reflect.StructField) string {
	if name := f.Tag.Get("name"); name != "" {
		return name
	}
	return strings.ReplaceAll(common.ToSnakeCase(f.Name), "_", "-")
}

// flagDefaults maps every flag declared by t to its default value. Embedded
// groups are flattened with their prefix applied, as Kong names them.
func flagDefaults(t reflect.Type, prefix string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok {
			for k, v := range flagDefaults(f.Type, prefix+f.Tag.Get("prefix")) {
				out[k] = v
			}
			continue
		}

		val := defaultValueForField(f.Type, f.Tag.Get("default"))
		if val != nil {
			out[prefix+flagName(f)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.PkgPath() == "time" && t.Name() == "Duration" {
		if def != "" {
			return def
		}
		return "0s"
	}
	switch t.Kind() {
	case reflect.String:
		return def // may be empty
	case reflect.Bool:
		if def == "" {
			return false
		}
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if def == "" {
			return 0
		}
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil
		}
		if def == "" {
			return []string{}
		}
		return strings.Split(def, ",")
	default:
		return nil
	}
}
