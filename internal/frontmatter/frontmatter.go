// Package frontmatter extracts post metadata from Markdown content.
//
// Front matter in the wild is only nominally YAML: this corpus contains files
// with typographic quotes inside titles, bracketed tag lists with irregular
// spacing, duplicate blocks from merged drafts, and files missing the opening
// delimiter entirely. Parse therefore never fails; every malformed input
// degrades to a usable Result plus warning diagnostics.
package frontmatter

import "strings"

// Status describes how a single front-matter field was recovered.
type Status int

const (
	// StatusOK means the field was present and decoded cleanly.
	StatusOK Status = iota
	// StatusMissing means the key was absent from the front matter.
	StatusMissing
	// StatusMalformed means the key was present but its value could not be
	// decoded as specified; the field holds a best-effort or default value.
	StatusMalformed
)

// Field records the provenance of one front-matter field.
type Field struct {
	Status Status
	Raw    string // source text for malformed values, empty otherwise
}

// FieldSet holds per-field provenance for the recognized keys.
type FieldSet struct {
	Title Field
	Date  Field
	Draft Field
	Tags  Field
}

// Diagnostic is a warning-level note for content authors. Diagnostics never
// block processing; they exist so a lint pass can surface authoring mistakes.
type Diagnostic struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result holds the outcome of parsing one post file.
type Result struct {
	Title string
	Date  string // opaque; downstream consumers parse lazily
	Draft bool
	Tags  []string

	// Body is everything after the front-matter region, byte-for-byte.
	Body string
	// Raw is the removed front-matter region exactly as found, including
	// delimiter lines, so that Raw+Body reproduces the original input.
	Raw string

	Fields      FieldSet
	Diagnostics []Diagnostic
}

// Reassemble returns the original file contents: the front-matter region as
// found followed by the untouched body.
func (r *Result) Reassemble() []byte {
	return []byte(r.Raw + r.Body)
}

func (r *Result) warn(field, msg string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Field: field, Message: msg})
}

// Parse extracts front matter and body from raw Markdown bytes. It never
// returns an error and never panics, whatever the input: empty files, files
// without front matter, unterminated blocks, and duplicate stacked blocks all
// produce a usable Result.
func Parse(data []byte) *Result {
	src := string(data)
	r := &Result{}

	region, body, found := splitRegion(src)
	r.Raw = region
	r.Body = body

	if !found {
		r.Fields = FieldSet{
			Title: Field{Status: StatusMissing},
			Date:  Field{Status: StatusMissing},
			Draft: Field{Status: StatusMissing},
			Tags:  Field{Status: StatusMissing},
		}
		if region == "" && looksUnterminated(src) {
			r.warn("", "front matter opened with --- but never closed; treating file as body")
		}
		r.warn("title", "missing title")
		return r
	}

	decodeBlock(blockOf(region), r)
	return r
}

// splitRegion locates the front-matter region. It returns the region verbatim
// (leading blank lines and delimiter lines included), the remaining body, and
// whether a region was found.
//
// Detection order:
//  1. A block between the first line that is exactly "---" (leading blank
//     lines tolerated) and the next such line.
//  2. Fallback for files missing the opening delimiter: the leading run of
//     "key: value"-shaped lines up to the first blank line or heading, taken
//     only when it mentions at least one recognized key.
func splitRegion(src string) (region, body string, found bool) {
	// Skip leading blank lines; they belong to the region if one is found.
	start := 0
	for start < len(src) {
		end := lineEnd(src, start)
		if strings.TrimSpace(src[start:end]) != "" {
			break
		}
		start = end
	}
	if start >= len(src) {
		return "", src, false
	}

	firstEnd := lineEnd(src, start)
	if isDelimiter(src[start:firstEnd]) {
		// Scan for the closing delimiter.
		pos := firstEnd
		for pos < len(src) {
			end := lineEnd(src, pos)
			if isDelimiter(src[pos:end]) {
				return src[:end], src[end:], true
			}
			pos = end
		}
		// Unterminated block: the whole file is body.
		return "", src, false
	}

	return scanBareKeys(src, start)
}

// scanBareKeys implements the defensive fallback for files whose front matter
// starts directly with "title: ..." and has no --- delimiters.
func scanBareKeys(src string, start int) (region, body string, found bool) {
	pos := start
	recognized := false
	for pos < len(src) {
		end := lineEnd(src, pos)
		line := strings.TrimRight(src[pos:end], "\r\n")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			break
		}
		if key, _, ok := splitKeyLine(line); ok {
			if isRecognizedKey(key) {
				recognized = true
			}
		} else if !isContinuationLine(line) {
			break
		}
		pos = end
	}
	if !recognized || pos == start {
		return "", src, false
	}
	return src[:pos], src[pos:], true
}

// blockOf strips delimiter lines from a region, leaving the raw key lines.
func blockOf(region string) string {
	var b strings.Builder
	pos := 0
	for pos < len(region) {
		end := lineEnd(region, pos)
		line := region[pos:end]
		if !isDelimiter(line) {
			b.WriteString(line)
		}
		pos = end
	}
	return b.String()
}

// looksUnterminated reports whether the input opens with a --- line that is
// never closed, used only to attach a diagnostic.
func looksUnterminated(src string) bool {
	trimmed := strings.TrimLeft(src, "\r\n \t")
	if !strings.HasPrefix(trimmed, "---") {
		return false
	}
	end := lineEnd(trimmed, 0)
	return isDelimiter(trimmed[:end])
}

// lineEnd returns the index just past the newline terminating the line that
// starts at pos, or len(s) for the final unterminated line.
func lineEnd(s string, pos int) int {
	if i := strings.IndexByte(s[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(s)
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r\n") == "---"
}

func isRecognizedKey(key string) bool {
	switch strings.ToLower(key) {
	case "title", "date", "draft", "tags":
		return true
	}
	return false
}

// isContinuationLine reports whether a line continues a previous value: an
// indented line or a block-sequence item.
func isContinuationLine(line string) bool {
	if line == "" {
		return false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	trimmed := strings.TrimSpace(line)
	return trimmed == "-" || strings.HasPrefix(trimmed, "- ")
}

// splitKeyLine splits a top-level "key: value" line. Indented lines and lines
// without a plausible key are rejected so sequence items and prose fall
// through to the caller.
func splitKeyLine(line string) (key, value string, ok bool) {
	if line == "" || line[0] == ' ' || line[0] == '\t' {
		return "", "", false
	}
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	if key == "" || !isKeyShaped(key) {
		return "", "", false
	}
	return key, line[idx+1:], true
}

func isKeyShaped(key string) bool {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// FirstHeading returns the text of the first H1 heading in body, or empty
// string. Used by callers that want a display title for posts whose front
// matter carries none.
func FirstHeading(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}
