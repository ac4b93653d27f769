package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/nathanvale/cortex/internal/apperr"
	"github.com/nathanvale/cortex/internal/docservice"
	"github.com/nathanvale/cortex/internal/output"
	"github.com/nathanvale/cortex/internal/query"
	"github.com/nathanvale/cortex/internal/viewer"
)

func (a *app) listCommand() *cli.Command {
	return &cli.Command{
		Name:         "list",
		Aliases:      []string{"ls"},
		Usage:        "List documents, newest first",
		OnUsageError: usageError,
		Flags: append(commonFlags(),
			&cli.StringFlag{Name: "type", Usage: "Filter by doc type (research, brainstorm, plan, ...)"},
			&cli.StringFlag{Name: "tags", Usage: "Filter by tags (comma-separated, OR semantics)"},
			&cli.StringFlag{Name: "project", Usage: "Filter by project"},
			&cli.StringFlag{Name: "status", Usage: "Filter by status (draft, reviewed, final, archived)"},
		),
		Action: a.list,
	}
}

func (a *app) list(ctx context.Context, cmd *cli.Command) error {
	_, svc, err := a.service(cmd)
	if err != nil {
		return err
	}
	page, err := svc.List(ctx, query.Filters{
		Type:    cmd.String("type"),
		Status:  cmd.String("status"),
		Project: cmd.String("project"),
		Tags:    query.ParseList(cmd.String("tags")),
	})
	if err != nil {
		return err
	}
	return a.writeDocs(cmd, page, "")
}

func (a *app) searchCommand() *cli.Command {
	return &cli.Command{
		Name:         "search",
		Aliases:      []string{"s"},
		Usage:        "Search documents by case-insensitive substring",
		ArgsUsage:    `"query"`,
		OnUsageError: usageError,
		Flags: append(commonFlags(),
			&cli.StringFlag{Name: "limit", Usage: "Max results (default: 20)"},
		),
		Action: a.search,
	}
}

func (a *app) search(ctx context.Context, cmd *cli.Command) error {
	a.setup(cmd)
	q := cmd.Args().First()
	if q == "" {
		return apperr.Usage(`Search requires a query. Usage: cortex search "query"`)
	}
	limit, err := query.ParseLimit(cmd.String("limit"))
	if err != nil {
		return err
	}
	_, svc, err := a.service(cmd)
	if err != nil {
		return err
	}
	page, err := svc.Search(ctx, q, limit)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Found %d %s", page.Total, plural(page.Total, "result"))
	if page.Total > limit {
		header += fmt.Sprintf(" (showing first %d)", limit)
	}
	return a.writeDocs(cmd, page, header+":\n\n")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// writeDocs emits a page as projected fields, JSON documents, or a table
// preceded by header.
func (a *app) writeDocs(cmd *cli.Command, page docservice.Page, header string) error {
	p := a.printer
	if p.Quiet {
		return nil
	}
	fields := query.ParseList(cmd.String(flagFields))
	if len(fields) > 0 || p.Structured() {
		return p.Success(output.Docs(page.Docs, fields),
			output.WithCount(len(page.Docs)),
			output.WithWarnings(page.Warnings))
	}
	p.Text(header + output.Table(a.stdout, page.Docs) + "\n")
	return nil
}

func (a *app) openCommand() *cli.Command {
	return &cli.Command{
		Name:         "open",
		Aliases:      []string{"o"},
		Usage:        "Open a document in the configured viewer",
		ArgsUsage:    `"identifier"`,
		OnUsageError: usageError,
		Flags:        commonFlags(),
		Action:       a.open,
	}
}

type openResult struct {
	Path   string   `json:"path"`
	Stem   string   `json:"stem"`
	Viewer []string `json:"viewer"`
}

func (a *app) open(ctx context.Context, cmd *cli.Command) error {
	a.setup(cmd)
	id := cmd.Args().First()
	if id == "" {
		return apperr.Usage(`Open requires an identifier. Usage: cortex open "doc-name"`)
	}
	cfg, svc, err := a.service(cmd)
	if err != nil {
		return err
	}
	page, err := svc.Resolve(ctx, id)
	if err != nil {
		return err
	}
	doc := page.Docs[0]

	tokens := cfg.Viewer.Tokens()
	if err := viewer.Open(ctx, tokens, doc.Path, a.stdout, a.stderr); err != nil {
		return err
	}

	if err := a.printer.Success(openResult{Path: doc.Path, Stem: doc.Stem, Viewer: tokens},
		output.WithCount(1),
		output.WithWarnings(page.Warnings)); err != nil {
		return err
	}
	a.printer.Info("Opened: %s", doc.Path)
	return nil
}
