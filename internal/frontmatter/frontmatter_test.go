package frontmatter

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_WellFormed(t *testing.T) {
	input := []byte("---\ntitle: \"Hello\"\ndate: \"2025-01-01\"\ndraft: false\ntags: [\"a\",\"b\"]\n---\nBody text.")
	r := Parse(input)
	if r.Title != "Hello" {
		t.Errorf("title = %q, want Hello", r.Title)
	}
	if r.Date != "2025-01-01" {
		t.Errorf("date = %q, want 2025-01-01", r.Date)
	}
	if r.Draft {
		t.Error("draft = true, want false")
	}
	if !reflect.DeepEqual(r.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", r.Tags)
	}
	if r.Body != "Body text." {
		t.Errorf("body = %q, want %q", r.Body, "Body text.")
	}
}

func TestParse_CurlyQuoteTitle(t *testing.T) {
	// Mismatched straight/typographic quotes must not break extraction.
	input := []byte("---\ntitle: \"Your Next Five(50) Moves”\n---\nbody\n")
	r := Parse(input)
	if r.Title != "Your Next Five(50) Moves" {
		t.Errorf("title = %q, want %q", r.Title, "Your Next Five(50) Moves")
	}
}

func TestParse_IrregularTagSpacing(t *testing.T) {
	input := []byte("---\ntags:[ strategy,leadership,entrepreneurship, decision-making, personal-development]\n---\n")
	r := Parse(input)
	want := []string{"strategy", "leadership", "entrepreneurship", "decision-making", "personal-development"}
	if !reflect.DeepEqual(r.Tags, want) {
		t.Errorf("tags = %v, want %v", r.Tags, want)
	}
}

func TestParse_DuplicateBlocks(t *testing.T) {
	// Two stacked front-matter blocks: first block wins, second stays in body.
	input := []byte("---\ntitle: First\n---\n---\ntitle: Second\ndate: 2025-02-02\n---\nactual body\n")
	r := Parse(input)
	if r.Title != "First" {
		t.Errorf("title = %q, want First", r.Title)
	}
	if !strings.Contains(r.Body, "title: Second") {
		t.Errorf("second block should remain in body, got %q", r.Body)
	}
	if got := string(r.Reassemble()); got != string(input) {
		t.Errorf("reassemble mismatch:\n got %q\nwant %q", got, input)
	}
}

func TestParse_MissingOpeningDelimiter(t *testing.T) {
	input := []byte("title: Scikit Sample\ndate: 2025-03-03\ntags: [ml, python]\n\n# Intro\nbody\n")
	r := Parse(input)
	if r.Title != "Scikit Sample" {
		t.Errorf("title = %q, want Scikit Sample", r.Title)
	}
	if r.Date != "2025-03-03" {
		t.Errorf("date = %q", r.Date)
	}
	if !reflect.DeepEqual(r.Tags, []string{"ml", "python"}) {
		t.Errorf("tags = %v", r.Tags)
	}
	if !strings.HasPrefix(r.Body, "\n# Intro") {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_BareKeysNotRecognized(t *testing.T) {
	// Prose that merely looks key-shaped must not be eaten as front matter.
	input := []byte("Note: this is just prose.\nMore prose.\n")
	r := Parse(input)
	if r.Raw != "" {
		t.Errorf("raw = %q, want empty", r.Raw)
	}
	if r.Body != string(input) {
		t.Errorf("body should be the whole input")
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := [][]byte{
		nil,
		{},
		[]byte("---"),
		[]byte("---\n"),
		[]byte("---\ntitle: Unterminated\n"),
		[]byte("\n\n\n---\n---\n"),
		[]byte("---\n: invalid: yaml: {{{\n---\nbody"),
		[]byte("\xff\xfe\x00 garbage"),
		[]byte("---\ntitle: A\ntitle: B\n---\n"),
	}
	for _, in := range inputs {
		r := Parse(in)
		if r == nil {
			t.Fatalf("Parse(%q) returned nil", in)
		}
		if got := string(r.Reassemble()); got != string(in) {
			t.Errorf("reassemble(%q) = %q", in, got)
		}
	}
}

func TestParse_UnterminatedBlockIsBody(t *testing.T) {
	input := []byte("---\ntitle: Unterminated\nbody continues\n")
	r := Parse(input)
	if r.Body != string(input) {
		t.Errorf("body = %q, want whole input", r.Body)
	}
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
}

func TestParse_DuplicateKeysFirstWins(t *testing.T) {
	input := []byte("---\ntitle: First Draft\ndate: 2025-01-01\ntitle: Merged Second\n---\nbody\n")
	r := Parse(input)
	if r.Title != "First Draft" {
		t.Errorf("title = %q, want First Draft", r.Title)
	}
	found := false
	for _, d := range r.Diagnostics {
		if d.Field == "title" && strings.Contains(d.Message, "duplicate") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected duplicate-key diagnostic, got %v", r.Diagnostics)
	}
}

func TestParse_DraftVariants(t *testing.T) {
	cases := []struct {
		value string
		want  bool
		bad   bool
	}{
		{"true", true, false},
		{"TRUE", true, false},
		{"Yes", true, false},
		{"false", false, false},
		{"no", false, false},
		{"\"true\"", true, false},
		{"maybe", false, true},
		{"", false, false},
	}
	for _, tc := range cases {
		r := Parse([]byte("---\ndraft: " + tc.value + "\n---\n"))
		if r.Draft != tc.want {
			t.Errorf("draft %q = %v, want %v", tc.value, r.Draft, tc.want)
		}
		if tc.bad && r.Fields.Draft.Status != StatusMalformed {
			t.Errorf("draft %q status = %v, want malformed", tc.value, r.Fields.Draft.Status)
		}
	}
}

func TestParse_DraftDefaultsFalse(t *testing.T) {
	r := Parse([]byte("---\ntitle: T\n---\n"))
	if r.Draft {
		t.Error("draft should default to false when absent")
	}
	if r.Fields.Draft.Status != StatusMissing {
		t.Errorf("draft status = %v, want missing", r.Fields.Draft.Status)
	}
}

func TestParse_BlockSequenceTags(t *testing.T) {
	input := []byte("---\ntags:\n  - \" go \"\n  - servers\n  -\n  - distributed-systems\n---\n")
	r := Parse(input)
	want := []string{"go", "servers", "distributed-systems"}
	if !reflect.DeepEqual(r.Tags, want) {
		t.Errorf("tags = %v, want %v", r.Tags, want)
	}
}

func TestParse_TagsOrderPreserved(t *testing.T) {
	r := Parse([]byte("---\ntags: [z, a, m, a]\n---\n"))
	want := []string{"z", "a", "m", "a"}
	if !reflect.DeepEqual(r.Tags, want) {
		t.Errorf("tags = %v, want %v (source order, no dedup)", r.Tags, want)
	}
}

func TestParse_MissingTitleWarns(t *testing.T) {
	r := Parse([]byte("---\ndate: 2025-01-01\n---\nbody"))
	if r.Title != "" {
		t.Errorf("title = %q, want empty", r.Title)
	}
	if r.Fields.Title.Status != StatusMissing {
		t.Errorf("title status = %v, want missing", r.Fields.Title.Status)
	}
	if len(r.Diagnostics) == 0 {
		t.Error("expected a missing-title diagnostic")
	}
}

func TestParse_BodyHorizontalRulePreserved(t *testing.T) {
	input := []byte("---\ntitle: T\n---\nbefore\n\n---\n\nafter\n")
	r := Parse(input)
	if !strings.Contains(r.Body, "\n---\n") {
		t.Errorf("horizontal rule should stay in body, got %q", r.Body)
	}
	if r.Title != "T" {
		t.Errorf("title = %q", r.Title)
	}
}

func TestRoundTrip_Serialize(t *testing.T) {
	cases := []struct {
		title string
		date  string
		draft bool
		tags  []string
	}{
		{"Hello", "2025-01-01", false, []string{"a", "b"}},
		{"Go: The Basics", "2025-12-05T10:30:00.123Z", true, nil},
		{"", "", false, []string{"one"}},
	}
	for _, tc := range cases {
		out := Compose(tc.title, tc.date, tc.draft, tc.tags, "The body.\n")
		r := Parse(out)
		if r.Title != tc.title {
			t.Errorf("round-trip title = %q, want %q", r.Title, tc.title)
		}
		if r.Date != tc.date {
			t.Errorf("round-trip date = %q, want %q", r.Date, tc.date)
		}
		if r.Draft != tc.draft {
			t.Errorf("round-trip draft = %v, want %v", r.Draft, tc.draft)
		}
		wantTags := tc.tags
		if wantTags == nil {
			wantTags = []string{}
		}
		gotTags := r.Tags
		if gotTags == nil {
			gotTags = []string{}
		}
		if !reflect.DeepEqual(gotTags, wantTags) {
			t.Errorf("round-trip tags = %v, want %v", gotTags, wantTags)
		}
		if r.Body != "The body.\n" {
			t.Errorf("round-trip body = %q", r.Body)
		}
	}
}

func TestFirstHeading(t *testing.T) {
	if got := FirstHeading("para\n# My Post\nmore"); got != "My Post" {
		t.Errorf("FirstHeading = %q, want My Post", got)
	}
	if got := FirstHeading("no heading here"); got != "" {
		t.Errorf("FirstHeading = %q, want empty", got)
	}
}
