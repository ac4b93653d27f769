package mcpserver

// DocFormatContract describes the Markdown document format that Cortex
// indexes, for LLM consumers writing new documents.
const DocFormatContract = `# Cortex Document Format Contract

Cortex indexes Markdown files (` + "`" + `.md` + "`" + `) that start with a YAML frontmatter block.
Files without frontmatter are skipped silently.

## Structure

` + "```" + `markdown
---
title: Auth token rotation          # OPTIONAL – falls back to the file name
type: research                      # OPTIONAL – research, brainstorm, plan, decision, meeting, diagram
project: cortex                     # OPTIONAL – free-form project name
status: draft                       # OPTIONAL – draft, reviewed, final, archived
tags: [auth, security]              # OPTIONAL – YAML list of strings
created: 2026-01-31                 # OPTIONAL – YYYY-MM-DD
updated: 2026-02-02                 # OPTIONAL – YYYY-MM-DD
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. **The ` + "`" + `---` + "`" + ` fence must be the first line.** A leading blank line means the file
   has no frontmatter and is not indexed.
2. **Dates** are ` + "`" + `YYYY-MM-DD` + "`" + `. Timestamps are truncated to their date; anything
   else is kept as written and reported as malformed.
3. **Tags** are a list. A single scalar is treated as a one-element list.
4. **Other keys** are kept verbatim and can be requested with ` + "`" + `fields` + "`" + `.
5. **Identity** is the file path. The file name without ` + "`" + `.md` + "`" + ` (the stem) is what
   ` + "`" + `read_doc` + "`" + ` and ` + "`" + `cortex open` + "`" + ` match against, so keep stems unique and kebab-case.
6. **Size**: files over 1 MiB are skipped.
7. **Placement**: save global documents under the docs root in one of
   ` + "`" + `research/` + "`" + `, ` + "`" + `brainstorms/` + "`" + `, ` + "`" + `plans/` + "`" + `, ` + "`" + `decisions/` + "`" + `, ` + "`" + `meetings/` + "`" + `, ` + "`" + `diagrams/` + "`" + `.
   Directories named ` + "`" + `.git` + "`" + `, ` + "`" + `node_modules` + "`" + `, ` + "`" + `dist` + "`" + `, ` + "`" + `build` + "`" + ` and the like are never scanned.

## Example

` + "```" + `markdown
---
title: Weekly standup 2026-01-20
type: meeting
project: cortex
status: final
tags:
  - standup
created: 2026-01-20
---

# Weekly standup 2026-01-20

- Decided to keep the index in memory.
` + "```" + `
`
