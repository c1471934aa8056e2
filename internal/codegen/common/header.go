package common

// Generator identifies the tool in generated-file banners.
const Generator = "shadergen"

// FileHeader returns the banner placed at the top of every generated file.
// It carries no version or timestamp so output stays byte-identical across
// builds and machines.
func FileHeader(commentPrefix string) string {
	return commentPrefix + " Code generated by " + Generator + ". DO NOT EDIT."
}
