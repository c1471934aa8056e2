package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/codegen/generator/cpp"
	"github.com/Alia5/shadergen/internal/shader"
)

// List prints the loaded shaders and the classes they would become.
type List struct {
	Source Source `embed:""`
}

// Run is called by Kong when the list command is executed.
func (l *List) Run(logger *slog.Logger) error {
	col, err := l.Source.Load(logger)
	if err != nil {
		return err
	}
	return writeList(os.Stdout, col)
}

// writeList prints one row per shader. Rows are printed even for invalid
// shaders; the returned error then carries every problem found.
func writeList(w io.Writer, col shader.Collection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTAGE\tCLASS\tBASE\tBYTES")
	for _, d := range col {
		stage, base := "?", "?"
		if s, err := shader.ParseStage(d.Stage); err == nil {
			stage, base = s.String(), s.BaseType()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", d.Name, stage, common.SanitizeIdentifier(d.Name), base, len(d.Source))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := cpp.Resolve(col)
	return err
}
