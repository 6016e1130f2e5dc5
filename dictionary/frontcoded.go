// Package dictionary implements the bijective term<->ID mapping used
// by the storage engine: three independent sorted, deduplicated sets
// of lexical forms (subjects, predicates, objects), each backed by a
// front-coded compact representation so that a dictionary of millions
// of terms does not require one allocation per string.
package dictionary

import "sort"

// blockSize is the number of consecutive entries between full-string
// checkpoints in the front-coded representation: Locate does a binary
// search over checkpoints, then a linear scan (decoding as it goes)
// within the winning block. A smaller block costs more memory (more
// full-string checkpoints) and saves string reconstruction work per
// lookup.
const blockSize = 16

type fcEntry struct {
	shared int    // length of the prefix shared with the previous entry
	suffix string // the remaining, non-shared bytes
}

// frontCoded is a sorted, deduplicated, front-coded list of strings
// supporting locate(term) and at(index) without holding every full
// string in memory at once.
type frontCoded struct {
	checkpoints []string  // full string at the start of every block
	entries     []fcEntry // one per term, front-coded against its block
}

// buildFrontCoded sorts and deduplicates terms, then front-codes them.
func buildFrontCoded(terms []string) *frontCoded {
	sorted := append([]string(nil), terms...)
	sort.Strings(sorted)
	sorted = dedup(sorted)

	fc := &frontCoded{
		checkpoints: make([]string, 0, len(sorted)/blockSize+1),
		entries:     make([]fcEntry, len(sorted)),
	}
	var prev string
	for i, s := range sorted {
		if i%blockSize == 0 {
			fc.checkpoints = append(fc.checkpoints, s)
			fc.entries[i] = fcEntry{shared: 0, suffix: s}
		} else {
			shared := commonPrefixLen(prev, s)
			fc.entries[i] = fcEntry{shared: shared, suffix: s[shared:]}
		}
		prev = s
	}
	return fc
}

func dedup(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Len returns the number of terms in the set.
func (fc *frontCoded) Len() int { return len(fc.entries) }

// at decodes and returns the term at index i.
func (fc *frontCoded) at(i int) string {
	blockStart := (i / blockSize) * blockSize
	s := fc.entries[blockStart].suffix
	for j := blockStart + 1; j <= i; j++ {
		e := fc.entries[j]
		s = s[:e.shared] + e.suffix
	}
	return s
}

// locate returns the index of term via binary search over checkpoints
// followed by a linear decode within the winning block.
func (fc *frontCoded) locate(term string) (int, bool) {
	if len(fc.entries) == 0 {
		return 0, false
	}
	// Find the last checkpoint whose string is <= term.
	block := sort.Search(len(fc.checkpoints), func(i int) bool {
		return fc.checkpoints[i] > term
	}) - 1
	if block < 0 {
		return 0, false
	}
	start := block * blockSize
	end := start + blockSize
	if end > len(fc.entries) {
		end = len(fc.entries)
	}
	s := fc.entries[start].suffix
	if s == term {
		return start, true
	}
	if s > term {
		return 0, false
	}
	for i := start + 1; i < end; i++ {
		e := fc.entries[i]
		s = s[:e.shared] + e.suffix
		switch {
		case s == term:
			return i, true
		case s > term:
			return 0, false
		}
	}
	return 0, false
}

// strings decodes every entry back into a plain, sorted slice; used
// when serializing the dictionary to attributes.
func (fc *frontCoded) strings() []string {
	out := make([]string, len(fc.entries))
	for i := range fc.entries {
		out[i] = fc.at(i)
	}
	return out
}
