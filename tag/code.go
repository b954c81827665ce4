package tag

import "fmt"

// Code is the type code carried in every record header. Only the low 10
// bits are available on the wire.
type Code uint16

// Codes with a dedicated implementation. Every other code decodes to Unknown.
const (
	CodeEnd                Code = 0
	CodeShowFrame          Code = 1
	CodeSetBackgroundColor Code = 9
	CodeExport             Code = 56
	CodeImport             Code = 57
)

// MaxCode is the largest code that fits in a record header.
const MaxCode Code = 1<<10 - 1

// String returns the record name for known codes and "Code(n)" otherwise.
func (c Code) String() string {
	switch c {
	case CodeEnd:
		return "End"
	case CodeShowFrame:
		return "ShowFrame"
	case CodeSetBackgroundColor:
		return "SetBackgroundColor"
	case CodeExport:
		return "Export"
	case CodeImport:
		return "Import"
	default:
		return fmt.Sprintf("Code(%d)", uint16(c))
	}
}

// Known reports whether c has a dedicated implementation.
func (c Code) Known() bool {
	switch c {
	case CodeEnd, CodeShowFrame, CodeSetBackgroundColor, CodeExport, CodeImport:
		return true
	default:
		return false
	}
}
