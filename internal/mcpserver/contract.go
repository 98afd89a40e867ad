package mcpserver

// FrontMatterContract describes the canonical post format that LLM consumers
// should follow when creating or updating posts.
const FrontMatterContract = `# Plume Front Matter Contract

Every Markdown post stored in Plume SHOULD follow this structure.

## Structure

` + "```" + `markdown
---
title: Human-readable title         # display title; used in lists, search, feed
date: "2025-01-15T10:00:00Z"        # publication date; quote it to keep it a string
draft: false                        # OPTIONAL - true hides the post from listings
tags:                               # OPTIONAL - YAML list; used for filtering
  - tag-one
  - tag-two
---

Body text in standard Markdown (GFM tables, task lists, and autolinks work).
` + "```" + `

## Rules

1. **Front matter opens the file.** The first ` + "`" + `---` + "`" + ` fence must be the first
   non-blank line; the block ends at the next ` + "`" + `---` + "`" + ` line.
2. **` + "`" + `title` + "`" + ` should be present.** Posts without one fall back to the first
   ` + "`" + `# heading` + "`" + ` in the body for display.
3. **` + "`" + `date` + "`" + ` is stored as written.** Prefer ISO-8601; quote the value so YAML
   tooling does not reinterpret it.
4. **` + "`" + `draft` + "`" + ` accepts** true/false, yes/no, on/off, 1/0. Anything else is
   treated as false with a warning. Omitted means published.
5. **` + "`" + `tags` + "`" + ` may be inline** (` + "`" + `tags: [a, b]` + "`" + `) or a block list. Order is
   preserved; empty entries are dropped.
6. **File paths** end with ` + "`" + `.md` + "`" + ` and use forward slashes.
7. **Encoding** is UTF-8 with a trailing newline.

Plume's parser is deliberately forgiving: curly quotes, duplicate keys, a
missing opening fence, or a malformed value never reject a post. The parser
keeps the first value it sees, reports a warning, and serves the post anyway.
Still, new content should follow the structure above so no warnings fire.

## Assets & Images

- Upload assets via the ` + "`" + `upload_asset` + "`" + ` tool. It returns a ` + "`" + `markdownImage` + "`" + ` field ready to paste into the post body.
- Assets are stored in the shared ` + "`" + `attachments/` + "`" + ` directory (flat, no sub-folders).
- Reference in posts using the absolute path: ` + "`" + `![description](/attachments/filename.png)` + "`" + `
- Supported formats: png, jpg, jpeg, gif, webp, svg, pdf.
- Do **not** use relative paths like ` + "`" + `./attachments/...` + "`" + ` - always use ` + "`" + `/attachments/filename` + "`" + `.

## Example

` + "```" + `markdown
---
title: Shipping the new search
date: "2025-01-20"
tags:
  - engineering
  - search
---

# Shipping the new search

We rebuilt search on SQLite FTS5.

![Query latency chart](/attachments/search-latency.png)

## What changed

- Snippets now come from the body, not the title
- Drafts are excluded from public queries
` + "```" + `
`
