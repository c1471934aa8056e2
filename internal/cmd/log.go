package cmd

// Log holds the logging flags shared by every command.
type Log struct {
	Level  string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"SHADERGEN_LOG_LEVEL"`
	File   string `help:"Also write logs to this file (rotated)" env:"SHADERGEN_LOG_FILE"`
	Format string `help:"Console log format" enum:"auto,text,json" default:"auto" env:"SHADERGEN_LOG_FORMAT"`
}
