package cpp

import (
	"bytes"
	"errors"
	"fmt"
	"text/template"

	"go.uber.org/multierr"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/shader"
)

const headerTemplate = `{{.Header}}
{{- if .PragmaOnce}}
#pragma once
{{- else}}
#ifndef {{.GuardName}}
#define {{.GuardName}}
{{- end}}

#include "{{.BaseInclude}}"

#include <string>

namespace {{.Namespace}}
{
{{- range .Classes}}

	class {{.Identifier}} : public {{.BaseType}}
	{
	public:
		{{.Identifier}}()
			: {{.BaseType}}(
				std::string({{.Literal}})
			)
		{
		}
	};
{{- end}}

} // namespace {{.Namespace}}
{{- if not .PragmaOnce}}

#endif // {{.GuardName}}
{{- end}}
`

var headerTmpl = template.Must(template.New("header").Parse(headerTemplate))

// Class is the resolved form of one descriptor, ready for layout.
type Class struct {
	Name       string // descriptor name
	Identifier string // C++ class name
	Stage      shader.Stage
	BaseType   string
	Literal    string // encoded source, including quotes
}

// Resolve maps every descriptor of c to a Class. All violations are
// collected; on failure the returned error combines them (see multierr.Errors)
// and no classes are returned.
func Resolve(c shader.Collection) ([]Class, error) {
	var errs error
	classes := make([]Class, 0, len(c))
	seen := make(map[string]string, len(c))

	for i, d := range c {
		if d.Name == "" {
			errs = multierr.Append(errs, &InvalidNameError{Index: i})
			continue
		}

		id := common.SanitizeIdentifier(d.Name)
		if first, dup := seen[id]; dup {
			errs = multierr.Append(errs, &DuplicateIdentifierError{Identifier: id, First: first, Second: d.Name})
		} else {
			seen[id] = d.Name
		}

		stage, err := shader.ParseStage(d.Stage)
		if err != nil {
			var use *shader.UnknownStageError
			if errors.As(err, &use) {
				use.Name = d.Name
			}
			errs = multierr.Append(errs, err)
		}

		lit, err := common.EncodeStringLiteral(d.Source)
		if err != nil {
			var ee *common.EncodingError
			if errors.As(err, &ee) {
				ee.Name = d.Name
			}
			errs = multierr.Append(errs, err)
		}

		classes = append(classes, Class{
			Name:       d.Name,
			Identifier: id,
			Stage:      stage,
			BaseType:   stage.BaseType(),
			Literal:    lit,
		})
	}

	if errs != nil {
		return nil, errs
	}
	return classes, nil
}

// Render returns a C++ header declaring one class per descriptor of c, in
// collection order. The output depends only on c and opts.
//
// Render is all-or-nothing: if any descriptor is invalid it returns nil and
// an error combining every violation found.
func Render(c shader.Collection, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	classes, err := Resolve(c)
	if err != nil {
		return nil, err
	}

	data := struct {
		Header      string
		PragmaOnce  bool
		GuardName   string
		BaseInclude string
		Namespace   string
		Classes     []Class
	}{
		Header:      writeFileHeader(),
		PragmaOnce:  opts.Guard == GuardPragmaOnce,
		GuardName:   opts.GuardName,
		BaseInclude: opts.BaseInclude,
		Namespace:   opts.Namespace,
		Classes:     classes,
	}

	var buf bytes.Buffer
	if err := headerTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute header template: %w", err)
	}
	return buf.Bytes(), nil
}
