// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Plume tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/harlowe/plume/internal/checksum"
	"github.com/harlowe/plume/internal/frontmatter"
	"github.com/harlowe/plume/internal/index"
	"github.com/harlowe/plume/internal/storage"
)

// Server wraps the MCP server with Plume tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    *index.DB
}

// New creates a new MCP server with all Plume tools registered.
func New(store storage.Provider, db *index.DB) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Plume",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through post bodies and titles. Drafts are excluded."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the full content of a Markdown post, front matter included."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the post (e.g. posts/hello.md)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("create_post",
		mcp.WithDescription("Create a new Markdown post at the specified path. "+
			"Content SHOULD follow the canonical post format (YAML front matter with "+
			"title, date, optional draft and tags, then the Markdown body). Read the "+
			"contract first via the get_front_matter_contract tool or the "+
			"plume://front-matter resource."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new post (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the Plume front-matter contract")),
	), s.createPost)

	s.mcp.AddTool(mcp.NewTool("get_front_matter_contract",
		mcp.WithDescription("Returns the canonical Plume front-matter contract. "+
			"Call this before creating or updating posts to ensure correct structure."),
	), s.getFrontMatterContract)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all posts or posts in a specific folder, drafts included."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List every tag in use together with its post count."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("upload_asset",
		mcp.WithDescription("Download an image or document from a URL (or data URI) and "+
			"store it in the attachments directory. Returns a markdownImage field ready "+
			"to paste into a post body."),
		mcp.WithString("url", mcp.Required(), mcp.Description("HTTP(S) URL or base64 data URI of the asset")),
		mcp.WithString("filename", mcp.Description("Optional filename override")),
	), s.uploadAsset)

	// Resource: front-matter contract.
	s.mcp.AddResource(
		mcp.NewResource("plume://front-matter", "Front Matter Contract",
			mcp.WithResourceDescription("Canonical front-matter format for Plume blog posts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFrontMatterResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20, false)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := s.store.Read(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) createPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Check existence.
	if _, readErr := s.store.Read(path); readErr == nil {
		return mcp.NewToolResultError(fmt.Sprintf("post already exists: %s", path)), nil
	}

	data := []byte(content)
	if err := s.store.Write(path, data); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Index the new post. The parser tolerates anything, so sloppy front
	// matter from a model still lands in the index; warnings are reported
	// back to the caller instead of failing the write.
	res := frontmatter.Parse(data)
	title := res.Title
	if title == "" {
		title = frontmatter.FirstHeading(res.Body)
	}
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	_ = s.db.UpsertPost(index.PostRow{
		Path:      path,
		Title:     title,
		Date:      res.Date,
		Draft:     res.Draft,
		Checksum:  checksum.Sum(data),
		Tags:      tags,
		UpdatedAt: time.Now(),
	}, res.Body)

	msg := fmt.Sprintf("created: %s", path)
	if len(res.Diagnostics) > 0 {
		var warnings []string
		for _, d := range res.Diagnostics {
			warnings = append(warnings, fmt.Sprintf("%s: %s", d.Field, d.Message))
		}
		msg += "\nfront-matter warnings:\n" + strings.Join(warnings, "\n")
	}
	return mcp.NewToolResultText(msg), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := ""
	if f, err := req.RequireString("folder"); err == nil {
		folder = f
	}

	metas, failures, err := s.store.List(folder)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, m := range metas {
		lines = append(lines, m.Path)
	}
	for _, f := range failures {
		lines = append(lines, fmt.Sprintf("(unreadable) %s", f.Path))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.db.ListTags()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tags, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getFrontMatterContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(FrontMatterContract), nil
}

func (s *Server) readFrontMatterResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "plume://front-matter",
			MIMEType: "text/markdown",
			Text:     FrontMatterContract,
		},
	}, nil
}
