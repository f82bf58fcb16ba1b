package types

import "bytes"

// ComputeLineColumn converts a byte offset in content into a 1-based line and
// column. Offsets past the end are clamped to the end of content.
func ComputeLineColumn(content []byte, byteOffset int) (line, column int) {
	if byteOffset > len(content) {
		byteOffset = len(content)
	}
	if byteOffset < 0 {
		byteOffset = 0
	}
	head := content[:byteOffset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	column = byteOffset - (bytes.LastIndexByte(head, '\n') + 1) + 1
	return line, column
}
