package cpp_test

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Alia5/shadergen/internal/codegen/common"
	"github.com/Alia5/shadergen/internal/codegen/generator/cpp"
	"github.com/Alia5/shadergen/internal/shader"
)

const (
	basicFrag = "#version 330 core\nout vec4 FragColor;\n\nuniform vec4 color;\n\nvoid main()\n{\n    FragColor = color;\n}"
	basicVert = "#version 330 core\nlayout (location = 0) in vec3 pos;\n\nuniform mat4 model;\nuniform mat4 view;\nuniform mat4 projection;\n\nvoid main()\n{\n    gl_Position = projection * view * model * vec4(pos, 1.0);\n}"
)

var classRe = regexp.MustCompile(`(?m)^\tclass (\w+) : public (\w+)$`)
var literalRe = regexp.MustCompile(`std::string\((".*")\)`)

func TestRenderGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "basic.h"))
	require.NoError(t, err)

	got, err := cpp.Render(shader.Collection{
		{Name: "basic.frag", Stage: "GL_FRAGMENT_SHADER", Source: basicFrag},
		{Name: "basic.vert", Stage: "GL_VERTEX_SHADER", Source: basicVert},
	}, cpp.Options{})
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestRenderBasic(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "basic", Stage: "GL_VERTEX_SHADER", Source: "void main(){}"},
	}, cpp.Options{})
	require.NoError(t, err)

	classes := classRe.FindAllStringSubmatch(string(out), -1)
	require.Len(t, classes, 1)
	assert.Equal(t, "basic", classes[0][1])
	assert.Equal(t, "vertex_shader", classes[0][2])
	assert.Contains(t, string(out), "\t\tbasic()\n\t\t\t: vertex_shader(\n")

	lits := literalRe.FindAllStringSubmatch(string(out), -1)
	require.Len(t, lits, 1)
	decoded, err := strconv.Unquote(lits[0][1])
	require.NoError(t, err)
	assert.Equal(t, "void main(){}", decoded)
}

func TestRenderStages(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "a.vert", Stage: "vertex", Source: "v"},
		{Name: "a.frag", Stage: "frag", Source: "f"},
		{Name: "a.geom", Stage: "Geometry_Shader", Source: "g"},
	}, cpp.Options{})
	require.NoError(t, err)

	classes := classRe.FindAllStringSubmatch(string(out), -1)
	require.Len(t, classes, 3)
	assert.Equal(t, []string{"a_vert", "vertex_shader"}, classes[0][1:])
	assert.Equal(t, []string{"a_frag", "fragment_shader"}, classes[1][1:])
	assert.Equal(t, []string{"a_geom", "geometry_shader"}, classes[2][1:])
}

func TestRenderRoundTripsSources(t *testing.T) {
	sources := []string{
		"",
		`#define STR(x) "x"` + "\n",
		"// c:\\path\\to\\file\n",
		"x ??= y;\r\n",
		"\tvec4 c = vec4(1.0);\x1b",
		"// ünïcödé",
	}
	var col shader.Collection
	for i, src := range sources {
		col = append(col, shader.Descriptor{Name: "s" + strconv.Itoa(i), Stage: "fragment", Source: src})
	}

	out, err := cpp.Render(col, cpp.Options{})
	require.NoError(t, err)

	lits := literalRe.FindAllStringSubmatch(string(out), -1)
	require.Len(t, lits, len(sources))
	for i, m := range lits {
		decoded, err := strconv.Unquote(m[1])
		require.NoError(t, err)
		assert.Equal(t, sources[i], decoded)
	}
}

func TestRenderDeterministic(t *testing.T) {
	col := shader.Collection{
		{Name: "basic.frag", Stage: "fragment", Source: basicFrag},
		{Name: "basic.vert", Stage: "vertex", Source: basicVert},
		{Name: "line.geom", Stage: "geometry", Source: "void main(){ EmitVertex(); }"},
	}
	first, err := cpp.Render(col, cpp.Options{})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := cpp.Render(col, cpp.Options{})
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderOrderPreserved(t *testing.T) {
	a := shader.Descriptor{Name: "a.vert", Stage: "vertex", Source: "A"}
	b := shader.Descriptor{Name: "b.frag", Stage: "fragment", Source: "B"}

	ab, err := cpp.Render(shader.Collection{a, b}, cpp.Options{})
	require.NoError(t, err)
	ba, err := cpp.Render(shader.Collection{b, a}, cpp.Options{})
	require.NoError(t, err)

	namesAB := classRe.FindAllStringSubmatch(string(ab), -1)
	namesBA := classRe.FindAllStringSubmatch(string(ba), -1)
	require.Len(t, namesAB, 2)
	require.Len(t, namesBA, 2)
	assert.Equal(t, "a_vert", namesAB[0][1])
	assert.Equal(t, "b_frag", namesAB[1][1])
	assert.Equal(t, "b_frag", namesBA[0][1])
	assert.Equal(t, "a_vert", namesBA[1][1])

	assert.NotEqual(t, ab, ba)
	assert.Equal(t, len(ab), len(ba))
	assert.ElementsMatch(t, blocks(string(ab)), blocks(string(ba)))
}

// blocks splits a rendered header into its class blocks.
func blocks(out string) []string {
	parts := strings.Split(out, "\n\n\tclass ")
	last := parts[len(parts)-1]
	parts[len(parts)-1] = last[:strings.Index(last, "\n\n} // namespace")]
	return parts[1:]
}

func TestRenderDuplicateIdentifier(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "foo.vert", Stage: "vertex", Source: "a"},
		{Name: "foo_vert", Stage: "vertex", Source: "b"},
	}, cpp.Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	var dup *cpp.DuplicateIdentifierError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "foo_vert", dup.Identifier)
	assert.Equal(t, "foo.vert", dup.First)
	assert.Equal(t, "foo_vert", dup.Second)
	assert.Equal(t, `shaders "foo.vert" and "foo_vert" both map to class "foo_vert"`, dup.Error())
}

func TestRenderUnknownStage(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "ok.vert", Stage: "vertex", Source: "a"},
		{Name: "sim.comp", Stage: "GL_COMPUTE_SHADER", Source: "b"},
	}, cpp.Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	var use *shader.UnknownStageError
	require.True(t, errors.As(err, &use))
	assert.Equal(t, "sim.comp", use.Name)
	assert.Equal(t, "GL_COMPUTE_SHADER", use.Stage)
}

func TestRenderEncodingError(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "bin.frag", Stage: "fragment", Source: "abc\x00"},
	}, cpp.Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	var ee *common.EncodingError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "bin.frag", ee.Name)
	assert.Equal(t, 3, ee.Offset)
}

func TestRenderAggregatesErrors(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "", Stage: "vertex", Source: "a"},
		{Name: "x.vert", Stage: "vertex", Source: "a"},
		{Name: "x_vert", Stage: "bogus", Source: "b"},
		{Name: "y.frag", Stage: "fragment", Source: "\xff"},
		{Name: "fine.geom", Stage: "geometry", Source: "ok"},
	}, cpp.Options{})
	require.Error(t, err)
	assert.Nil(t, out)

	errs := multierr.Errors(err)
	require.Len(t, errs, 4)

	var inv *cpp.InvalidNameError
	assert.True(t, errors.As(errs[0], &inv))
	assert.Equal(t, 0, inv.Index)

	var dup *cpp.DuplicateIdentifierError
	assert.True(t, errors.As(errs[1], &dup))

	var use *shader.UnknownStageError
	assert.True(t, errors.As(errs[2], &use))
	assert.Equal(t, "x_vert", use.Name)

	var ee *common.EncodingError
	assert.True(t, errors.As(errs[3], &ee))
	assert.Equal(t, "y.frag", ee.Name)

	msg := err.Error()
	assert.Contains(t, msg, "empty name")
	assert.Contains(t, msg, "both map to class")
	assert.Contains(t, msg, `unknown shader stage "bogus"`)
	assert.Contains(t, msg, "invalid UTF-8")
}

func TestRenderEmptyCollection(t *testing.T) {
	out, err := cpp.Render(nil, cpp.Options{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "namespace renderer\n{\n\n} // namespace renderer\n")
	assert.Empty(t, classRe.FindAllString(string(out), -1))
}

func TestRenderOptions(t *testing.T) {
	col := shader.Collection{{Name: "basic", Stage: "vertex", Source: "x"}}

	t.Run("namespace and include", func(t *testing.T) {
		out, err := cpp.Render(col, cpp.Options{Namespace: "engine::gfx", BaseInclude: "gfx/shader_base.hpp"})
		require.NoError(t, err)
		s := string(out)
		assert.Contains(t, s, "#include \"gfx/shader_base.hpp\"\n")
		assert.Contains(t, s, "namespace engine::gfx\n{\n")
		assert.True(t, strings.HasSuffix(s, "} // namespace engine::gfx\n"))
	})

	t.Run("ifndef guard", func(t *testing.T) {
		out, err := cpp.Render(col, cpp.Options{Guard: cpp.GuardIfndef, GuardName: "MY_SHADERS_H"})
		require.NoError(t, err)
		s := string(out)
		assert.NotContains(t, s, "#pragma once")
		assert.True(t, strings.HasPrefix(s, "// Code generated by shadergen. DO NOT EDIT.\n#ifndef MY_SHADERS_H\n#define MY_SHADERS_H\n\n"))
		assert.True(t, strings.HasSuffix(s, "} // namespace renderer\n\n#endif // MY_SHADERS_H\n"))
	})

	t.Run("derived guard name", func(t *testing.T) {
		out, err := cpp.Render(col, cpp.Options{Guard: cpp.GuardIfndef})
		require.NoError(t, err)
		assert.Contains(t, string(out), "#ifndef RENDERER_SHADERS_H\n")
	})

	invalid := []struct {
		name string
		opts cpp.Options
		msg  string
	}{
		{"bad namespace", cpp.Options{Namespace: "my-ns"}, "invalid namespace"},
		{"keyword namespace", cpp.Options{Namespace: "class"}, "invalid namespace"},
		{"quoted include", cpp.Options{BaseInclude: `a"b.h`}, "invalid base include"},
		{"bad guard name", cpp.Options{Guard: cpp.GuardIfndef, GuardName: "1X"}, "invalid include guard name"},
		{"reserved guard name", cpp.Options{Guard: cpp.GuardIfndef, GuardName: "_SHADERS_H"}, "invalid include guard name"},
		{"bad guard style", cpp.Options{Guard: "once"}, "unsupported include guard style"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			out, err := cpp.Render(col, tt.opts)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRenderSanitizedNames(t *testing.T) {
	out, err := cpp.Render(shader.Collection{
		{Name: "2d.blit.frag", Stage: "fragment", Source: "x"},
		{Name: "default", Stage: "vertex", Source: "y"},
		{Name: "NULL", Stage: "vertex", Source: "z"},
		{Name: "a..b", Stage: "geometry", Source: "w"},
	}, cpp.Options{})
	require.NoError(t, err)

	classes := classRe.FindAllStringSubmatch(string(out), -1)
	require.Len(t, classes, 4)
	assert.Equal(t, "shader_2d_blit_frag", classes[0][1])
	assert.Equal(t, "shader_default", classes[1][1])
	assert.Equal(t, "shader_NULL", classes[2][1])
	assert.Equal(t, "a_b", classes[3][1])
	assert.NotContains(t, string(out), "class NULL")
}

func TestRenderConcurrent(t *testing.T) {
	cols := []shader.Collection{
		{{Name: "a.vert", Stage: "vertex", Source: "a"}},
		{{Name: "b.frag", Stage: "fragment", Source: "b"}},
		{{Name: "c.geom", Stage: "geometry", Source: "c"}},
	}
	want := make([][]byte, len(cols))
	for i, c := range cols {
		out, err := cpp.Render(c, cpp.Options{})
		require.NoError(t, err)
		want[i] = out
	}

	var wg sync.WaitGroup
	got := make([][]byte, len(cols)*10)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = cpp.Render(cols[i%len(cols)], cpp.Options{})
		}(i)
	}
	wg.Wait()

	for i, out := range got {
		assert.Equal(t, want[i%len(cols)], out)
	}
}

func TestResolve(t *testing.T) {
	classes, err := cpp.Resolve(shader.Collection{
		{Name: "basic.vert", Stage: "GL_VERTEX_SHADER", Source: "a\nb"},
	})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, cpp.Class{
		Name:       "basic.vert",
		Identifier: "basic_vert",
		Stage:      shader.StageVertex,
		BaseType:   "vertex_shader",
		Literal:    `"a\nb"`,
	}, classes[0])
}
