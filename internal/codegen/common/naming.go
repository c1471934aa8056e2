package common

import (
	"strings"
)

// Marker is prepended to names that would otherwise start with a digit or an
// underscore, or spell a reserved word.
const Marker = "shader_"

// SanitizeIdentifier maps an arbitrary shader name to a legal C++ identifier
// that is not reserved for the implementation.
//
// Every rune outside [A-Za-z0-9_] becomes '_' and runs of '_' collapse into
// one. The result is prefixed with Marker when it starts with a digit or '_',
// or collides with a reserved word (see IsReserved). "basic.vert" =>
// "basic_vert", "2D.blit.frag" => "shader_2D_blit_frag", "NULL" =>
// "shader_NULL". The empty string stays empty.
func SanitizeIdentifier(name string) string {
	if name == "" {
		return ""
	}
	id := identifierBody(name)
	if isDigit(id[0]) || id[0] == '_' || IsReserved(id) {
		id = identifierBody(Marker + id)
	}
	return id
}

func identifierBody(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevUnderscore := false
	for _, r := range s {
		if !isIdentRune(r) {
			r = '_'
		}
		if r == '_' {
			if prevUnderscore {
				continue
			}
			prevUnderscore = true
		} else {
			prevUnderscore = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsIdentifier reports whether s is a legal C++ identifier that may be
// declared anywhere: no leading digit or underscore, no "__", and not a
// reserved word.
func IsIdentifier(s string) bool {
	if s == "" || isDigit(s[0]) || s[0] == '_' || strings.Contains(s, "__") {
		return false
	}
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return !IsReserved(s)
}

// IsQualifiedName reports whether s is a "::" separated list of identifiers,
// e.g. "renderer" or "engine::shaders".
func IsQualifiedName(s string) bool {
	for _, part := range strings.Split(s, "::") {
		if !IsIdentifier(part) {
			return false
		}
	}
	return true
}

// IncludeGuard builds an upper-case include guard macro from the given parts.
// Example: IncludeGuard("renderer", "shaders.h") => "RENDERER_SHADERS_H".
func IncludeGuard(parts ...string) string {
	var words []string
	for _, p := range parts {
		if p = strings.Trim(p, " "); p != "" {
			words = append(words, p)
		}
	}
	guard := strings.ToUpper(identifierBody(strings.Join(words, "_")))
	guard = strings.Trim(guard, "_")
	if guard == "" || isDigit(guard[0]) {
		guard = "SHADERGEN_" + guard
	}
	return guard
}

// ToSnakeCase converts camelCase/PascalCase to snake_case ("XMLParser" => "xml_parser").
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
