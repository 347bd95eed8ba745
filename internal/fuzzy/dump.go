package fuzzy

import (
	"fmt"
	"sort"
	"strings"
)

// Dump renders the expansion maps with sorted keys.
func (p *Preprocessor) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Preprocessor(radical=%t pinyin=%t)\n", p.enableRadical, p.enablePinyin)

	if p.enableRadical {
		keys := make([]string, 0, len(p.radicalMap))
		for k := range p.radicalMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("radical map:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %q\n", k, p.radicalMap[k])
		}
	}

	if p.enablePinyin {
		keys := make([]string, 0, len(p.pinyinMap))
		for k := range p.pinyinMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString("pinyin map:\n")
		for _, k := range keys {
			fmt.Fprintf(&sb, "  %s: %q\n", k, p.pinyinMap[k])
		}
	}
	return sb.String()
}
