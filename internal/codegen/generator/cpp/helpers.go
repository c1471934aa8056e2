package cpp

import "github.com/Alia5/shadergen/internal/codegen/common"

func writeFileHeader() string {
	return common.FileHeader("//")
}
