package frontmatter

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeBlock scans the raw key lines of a front-matter region and fills in
// the recognized fields. The scan is deliberately line-oriented rather than a
// strict YAML decode: real posts contain typographic quotes, duplicate keys
// from merged drafts, and bracketed tag lists no YAML parser accepts. The
// first occurrence of each key wins; unknown keys are ignored the way a
// forgiving static-site generator would.
func decodeBlock(block string, r *Result) {
	r.Fields = FieldSet{
		Title: Field{Status: StatusMissing},
		Date:  Field{Status: StatusMissing},
		Draft: Field{Status: StatusMissing},
		Tags:  Field{Status: StatusMissing},
	}

	lines := strings.Split(block, "\n")
	seen := make(map[string]bool, 4)

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, rest, ok := splitKeyLine(line)
		if !ok {
			// Continuation lines are consumed by their key below; anything
			// else (prose, stray sequence items) is skipped.
			continue
		}
		lk := strings.ToLower(key)
		if !isRecognizedKey(lk) {
			continue
		}
		if seen[lk] {
			r.warn(lk, "duplicate key; first occurrence wins")
			continue
		}
		seen[lk] = true

		switch lk {
		case "title":
			r.Title = stripQuotes(rest)
			r.Fields.Title = Field{Status: StatusOK}
			if r.Title == "" {
				r.warn("title", "title is empty")
			}
		case "date":
			r.Date = stripQuotes(rest)
			r.Fields.Date = Field{Status: StatusOK}
		case "draft":
			r.decodeDraft(rest)
		case "tags":
			items, consumed := collectSequenceItems(lines, i+1)
			i += consumed
			r.decodeTags(rest, items)
		}
	}

	if r.Fields.Title.Status == StatusMissing {
		r.warn("title", "missing title")
	}
}

// decodeDraft parses the draft flag case-insensitively, defaulting to false
// for anything unparseable.
func (r *Result) decodeDraft(rest string) {
	switch strings.ToLower(stripQuotes(rest)) {
	case "true", "yes", "on", "1":
		r.Draft = true
		r.Fields.Draft = Field{Status: StatusOK}
	case "false", "no", "off", "0", "":
		r.Draft = false
		r.Fields.Draft = Field{Status: StatusOK}
	default:
		r.Draft = false
		r.Fields.Draft = Field{Status: StatusMalformed, Raw: strings.TrimSpace(rest)}
		r.warn("draft", "unparseable draft value; defaulting to false")
	}
}

// decodeTags accepts a same-line scalar (flow sequence, bracketed comma list,
// or bare comma list) or a block sequence gathered from the following lines.
// Order is preserved, elements are trimmed of whitespace and quotes, and
// empty elements are dropped.
func (r *Result) decodeTags(rest string, blockItems []string) {
	r.Fields.Tags = Field{Status: StatusOK}

	scalar := strings.TrimSpace(rest)
	if scalar == "" {
		r.Tags = cleanTagList(blockItems)
		return
	}

	// Well-formed values decode as YAML; everything else goes through the
	// bracket-and-comma fallback.
	var v any
	if err := yaml.Unmarshal([]byte(scalar), &v); err == nil {
		if seq, ok := v.([]any); ok {
			tags := make([]string, 0, len(seq))
			for _, item := range seq {
				switch t := item.(type) {
				case string:
					tags = append(tags, t)
				case nil:
					// dropped by cleanTagList
				default:
					// Bare years and booleans are still tags to their authors.
					tags = append(tags, fmt.Sprint(t))
				}
			}
			r.Tags = cleanTagList(tags)
			return
		}
	}
	r.Tags = cleanTagList(splitBracketList(scalar))
}

// collectSequenceItems gathers "- item" continuation lines starting at from,
// returning the raw item texts and how many lines were consumed.
func collectSequenceItems(lines []string, from int) (items []string, consumed int) {
	for i := from; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if !isContinuationLine(line) {
			break
		}
		consumed++
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "-"); ok {
			items = append(items, after)
		}
	}
	return items, consumed
}

// splitBracketList strips surrounding brackets (balanced or not) and splits
// on commas. Handles lists like "[ strategy,leadership, decision-making]".
func splitBracketList(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func cleanTagList(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		t = strings.TrimFunc(t, isQuoteRune)
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// stripQuotes removes surrounding quote characters from a scalar value. The
// pair need not match: titles in the corpus mix straight and typographic
// quotes (`"Your Next Five(50) Moves”`). Values that do not open with a quote
// are returned unchanged, so apostrophes and interior quotes survive.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) == 0 || !isQuoteRune(runes[0]) {
		return s
	}
	last := 0
	for i, r := range runes {
		if isQuoteRune(r) {
			last = i
		}
	}
	if last == 0 {
		// Lone opening quote.
		return strings.TrimSpace(string(runes[1:]))
	}
	return strings.TrimSpace(string(runes[1:last]))
}

func isQuoteRune(r rune) bool {
	switch r {
	case '"', '\'', '“', '”', '‘', '’':
		return true
	}
	return false
}
