package matcher

import (
	"fmt"
	"strings"

	"github.com/textsec/blockmatch/pkg/log"
)

const byteRange = 256

// noChild marks an absent slot in a node's child table and an unassigned
// fail link. Indices into the node arena are otherwise non-negative.
const noChild = int32(-1)

// acNode is one arena-allocated node of the automaton. children is a dense
// byte-to-index table; patterns lists every pattern that terminates at this
// node, including the ones copied in from the fail chain.
type acNode struct {
	patterns []Pattern
	children [byteRange]int32
}

func newACNode() acNode {
	var n acNode
	for i := range n.children {
		n.children[i] = noChild
	}
	return n
}

// AC is an Aho-Corasick automaton over UTF-8 bytes. The trie and fail
// links are built once by NewAC and are read-only afterwards; a single
// Find scan is O(len(text)) amortized regardless of pattern count.
type AC struct {
	nodes  []acNode
	fail   []int32
	sealed bool
}

// NewAC builds the automaton: one trie insertion per pattern followed by a
// breadth-first fail link computation.
func NewAC(patterns []Pattern) (*AC, error) {
	if err := validatePatterns(patterns); err != nil {
		return nil, fmt.Errorf("ahocorasick: %w", err)
	}

	a := &AC{nodes: []acNode{newACNode()}}
	for _, p := range patterns {
		a.insert(p)
	}
	a.calculateFail()
	return a, nil
}

func (a *AC) Name() string { return "AC" }

// insert walks the trie one byte at a time from the root, extending it
// where needed, and records the pattern at the terminal node.
func (a *AC) insert(pattern Pattern) {
	if a.sealed {
		panic("ahocorasick: insert after fail links are computed")
	}

	cur := int32(0)
	for i := 0; i < len(pattern); i++ {
		b := pattern[i]
		if a.nodes[cur].children[b] == noChild {
			a.nodes = append(a.nodes, newACNode())
			a.nodes[cur].children[b] = int32(len(a.nodes) - 1)
		}
		cur = a.nodes[cur].children[b]
	}
	a.nodes[cur].patterns = append(a.nodes[cur].patterns, pattern)
}

// calculateFail assigns fail links in BFS order. Each child's fail link is
// found by walking the parent's fail chain until some node has a child on
// the same byte; the fail node's pattern list is folded into the child's,
// so a node reports every pattern implied by any of its suffixes.
func (a *AC) calculateFail() {
	a.fail = make([]int32, len(a.nodes))
	for i := range a.fail {
		a.fail[i] = noChild
	}

	queue := []int32{0}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for b := 0; b < byteRange; b++ {
			child := a.nodes[parent].children[b]
			if child == noChild {
				continue
			}

			anc := a.fail[parent]
			for anc != noChild && a.nodes[anc].children[b] == noChild {
				anc = a.fail[anc]
			}

			if anc == noChild {
				a.fail[child] = 0
			} else {
				failNode := a.nodes[anc].children[b]
				a.fail[child] = failNode
				a.nodes[child].patterns = append(
					a.nodes[child].patterns, a.nodes[failNode].patterns...)
			}

			queue = append(queue, child)
		}
	}

	// The root fails to itself and never carries copied patterns.
	a.fail[0] = 0
	a.sealed = true
}

func (a *AC) Find(text string) MatchResult {
	var matches MatchResult
	textBytes := []byte(text)

	cur := int32(0)
	for pos := 0; pos < len(textBytes); pos++ {
		b := textBytes[pos]

		// Follow fail links until a child on b exists. At the root,
		// a missing child just means "no match here, keep scanning".
		for cur != 0 && a.nodes[cur].children[b] == noChild {
			cur = a.fail[cur]
		}

		next := a.nodes[cur].children[b]
		if next == noChild {
			continue
		}
		cur = next

		for _, pattern := range a.nodes[cur].patterns {
			charPos := bytePosToCharPos(pos, textBytes, len(pattern))
			log.Debug("ac: matched %q at char %d", pattern, charPos)
			matches = append(matches, Match{Pos: charPos, Pattern: pattern})
		}
	}
	return matches
}

// Dump renders the node arena with fail links, one node per line.
func (a *AC) Dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "AC(nodes=%d)\n", len(a.nodes))
	for idx, node := range a.nodes {
		fmt.Fprintf(&sb, "node %d: fail=%d patterns=%v children={", idx, a.fail[idx], node.patterns)
		first := true
		for b, child := range node.children {
			if child == noChild {
				continue
			}
			if !first {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "0x%02x:%d", b, child)
			first = false
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}
