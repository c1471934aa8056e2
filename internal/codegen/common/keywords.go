package common

// cppReserved holds C++20 keywords, alternative operator tokens, macros the
// C and C++ standard headers may define (<string> pulls in several of them),
// and the names generated code relies on inside the enclosing namespace. A
// shader class with one of these names would either not parse or shadow a
// name the generated constructors refer to.
var cppReserved = map[string]struct{}{
	// keywords
	"alignas": {}, "alignof": {}, "asm": {}, "auto": {}, "bool": {}, "break": {},
	"case": {}, "catch": {}, "char": {}, "char8_t": {}, "char16_t": {}, "char32_t": {},
	"class": {}, "concept": {}, "const": {}, "consteval": {}, "constexpr": {},
	"constinit": {}, "const_cast": {}, "continue": {}, "co_await": {}, "co_return": {},
	"co_yield": {}, "decltype": {}, "default": {}, "delete": {}, "do": {}, "double": {},
	"dynamic_cast": {}, "else": {}, "enum": {}, "explicit": {}, "export": {}, "extern": {},
	"false": {}, "float": {}, "for": {}, "friend": {}, "goto": {}, "if": {}, "inline": {},
	"int": {}, "long": {}, "mutable": {}, "namespace": {}, "new": {}, "noexcept": {},
	"nullptr": {}, "operator": {}, "private": {}, "protected": {}, "public": {},
	"register": {}, "reinterpret_cast": {}, "requires": {}, "return": {}, "short": {},
	"signed": {}, "sizeof": {}, "static": {}, "static_assert": {}, "static_cast": {},
	"struct": {}, "switch": {}, "template": {}, "this": {}, "thread_local": {},
	"throw": {}, "true": {}, "try": {}, "typedef": {}, "typeid": {}, "typename": {},
	"union": {}, "unsigned": {}, "using": {}, "virtual": {}, "void": {}, "volatile": {},
	"wchar_t": {}, "while": {},

	// alternative tokens
	"and": {}, "and_eq": {}, "bitand": {}, "bitor": {}, "compl": {}, "not": {},
	"not_eq": {}, "or": {}, "or_eq": {}, "xor": {}, "xor_eq": {},

	// standard library macros
	"NULL": {}, "EOF": {}, "WEOF": {}, "BUFSIZ": {}, "FILENAME_MAX": {}, "FOPEN_MAX": {},
	"L_tmpnam": {}, "TMP_MAX": {}, "SEEK_SET": {}, "SEEK_CUR": {}, "SEEK_END": {},
	"stdin": {}, "stdout": {}, "stderr": {}, "errno": {}, "assert": {}, "offsetof": {},
	"setjmp": {}, "va_arg": {}, "va_copy": {}, "va_end": {}, "va_start": {},
	"EXIT_SUCCESS": {}, "EXIT_FAILURE": {}, "RAND_MAX": {}, "MB_CUR_MAX": {},
	"MB_LEN_MAX": {}, "CHAR_BIT": {}, "WCHAR_MIN": {}, "WCHAR_MAX": {},
	"EDOM": {}, "ERANGE": {}, "EILSEQ": {},

	// names used by the generated header
	"std":             {},
	"vertex_shader":   {},
	"fragment_shader": {},
	"geometry_shader": {},
}

// IsReserved reports whether name cannot be used as a generated class name.
func IsReserved(name string) bool {
	_, ok := cppReserved[name]
	return ok
}
