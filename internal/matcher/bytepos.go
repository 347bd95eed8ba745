package matcher

import "unicode/utf8"

// bytePosToCharPos converts the byte offset of a match's last byte into the
// character offset of the match's first character. patternLen is the byte
// length of the matched pattern. The resulting start offset always lands on
// a codepoint boundary because pattern byte lengths are valid encodings.
func bytePosToCharPos(endPos int, text []byte, patternLen int) int {
	startPos := endPos - patternLen + 1
	return utf8.RuneCount(text[:startPos])
}
