// Package feed produces an Atom feed of published posts for external readers.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/index"
	"github.com/harlowe/plume/internal/render"
	"github.com/harlowe/plume/internal/storage"
)

const maxFeedItems = 100

// dateLayouts covers the date shapes observed in real front matter: RFC 3339
// with and without fractional seconds, date-only, and space-separated.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Generator builds the Atom document from the index and the content root.
type Generator struct {
	store    storage.Provider
	db       *index.DB
	renderer *render.Renderer

	title   string
	baseURL string
}

// NewGenerator creates a feed generator. baseURL is the site root the feed
// links against, without a trailing slash.
func NewGenerator(store storage.Provider, db *index.DB, renderer *render.Renderer, title, baseURL string) *Generator {
	return &Generator{
		store:    store,
		db:       db,
		renderer: renderer,
		title:    title,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Xmlns   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Links   []atomLink  `xml:"link"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomEntry struct {
	Title   string      `xml:"title"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Link    atomLink    `xml:"link"`
	Content atomContent `xml:"content"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// Build renders the Atom feed for published posts, newest first. Per-post
// failures (unreadable file, render error) skip the entry rather than failing
// the whole feed.
func (g *Generator) Build() ([]byte, error) {
	rows, _, err := g.db.ListPosts(index.ListOptions{Limit: maxFeedItems, Sort: "date"})
	if err != nil {
		return nil, fmt.Errorf("feed: list posts: %w", err)
	}

	doc := atomFeed{
		Xmlns: "http://www.w3.org/2005/Atom",
		Title: g.title,
		ID:    g.baseURL + "/",
		Links: []atomLink{
			{Href: g.baseURL + "/feed.xml", Rel: "self"},
			{Href: g.baseURL + "/"},
		},
	}

	var newest time.Time
	for _, row := range rows {
		data, err := g.store.Read(row.Path)
		if err != nil {
			continue
		}
		res := frontmatter.Parse(data)
		html, err := g.renderer.HTML([]byte(res.Body))
		if err != nil {
			continue
		}

		published := PublishedAt(row)
		if published.After(newest) {
			newest = published
		}

		link := g.baseURL + "/" + postSlug(row.Path)
		doc.Entries = append(doc.Entries, atomEntry{
			Title:   row.Title,
			ID:      link,
			Updated: published.UTC().Format(time.RFC3339),
			Link:    atomLink{Href: link},
			Content: atomContent{Type: "html", Body: string(html)},
		})
	}

	if newest.IsZero() {
		newest = time.Now()
	}
	doc.Updated = newest.UTC().Format(time.RFC3339)

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("feed: marshal: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

// PublishedAt resolves a post's publication time from its opaque date string,
// falling back to the index's updated time when the date is absent or does
// not parse. Front-matter dates are never validated at parse time; this is
// the lazy, failure-tolerant consumer the parser contract calls for.
func PublishedAt(row index.PostRow) time.Time {
	if t, ok := ParseDate(row.Date); ok {
		return t
	}
	return row.UpdatedAt
}

// ParseDate tries the known date layouts against an opaque front-matter date
// string, normalizing irregular fractional seconds along the way.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// postSlug maps a content path to a URL path: strip the .md extension, keep
// the directory structure. Metadata never comes from the filename; the slug
// is only an address.
func postSlug(path string) string {
	return strings.TrimSuffix(path, ".md")
}
