package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// document is the canonical front-matter shape emitted by Serialize.
type document struct {
	Title string   `yaml:"title"`
	Date  string   `yaml:"date,omitempty"`
	Draft bool     `yaml:"draft"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Serialize renders the structured fields as a canonical front-matter block,
// delimiters included. Parse of the output yields the same fields back
// (round-trip on structure, not on the original byte layout).
func Serialize(title, date string, draft bool, tags []string) []byte {
	doc := document{Title: title, Date: date, Draft: draft, Tags: tags}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// Encoding a flat struct of scalars and strings cannot fail.
	_ = enc.Encode(doc)
	_ = enc.Close()
	buf.WriteString("---\n")
	return buf.Bytes()
}

// Compose returns a complete post file: serialized front matter followed by
// body. The body is appended verbatim.
func Compose(title, date string, draft bool, tags []string, body string) []byte {
	out := Serialize(title, date, draft, tags)
	return append(out, body...)
}
