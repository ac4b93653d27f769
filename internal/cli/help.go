package cli

import (
	"github.com/urfave/cli/v3"
)

type helpCommand struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
}

type helpFlag struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Commands    []string `json:"commands"`
}

type helpData struct {
	Commands []helpCommand `json:"commands"`
	Flags    []helpFlag    `json:"flags"`
}

var machineHelp = helpData{
	Commands: []helpCommand{
		{Name: "list", Aliases: []string{"ls"}, Description: "List documents with optional filters"},
		{Name: "search", Aliases: []string{"s"}, Description: "Search documents with substring matching"},
		{Name: "open", Aliases: []string{"o"}, Description: "Open document in configured viewer"},
		{Name: "serve", Aliases: []string{}, Description: "Serve the read-only HTTP API"},
		{Name: "mcp", Aliases: []string{}, Description: "Serve MCP tools over stdio"},
		{Name: "init", Aliases: []string{}, Description: "Create the default config and docs directories"},
		{Name: "help", Aliases: []string{}, Description: "Show help information"},
	},
	Flags: []helpFlag{
		{Name: "--type", Type: "string", Description: "Filter by doc type", Commands: []string{"list"}},
		{Name: "--tags", Type: "string", Description: "Filter by tags (comma-separated, OR)", Commands: []string{"list"}},
		{Name: "--project", Type: "string", Description: "Filter by project", Commands: []string{"list"}},
		{Name: "--status", Type: "string", Description: "Filter by status", Commands: []string{"list"}},
		{Name: "--limit", Type: "string", Description: "Max results (default: 20)", Commands: []string{"search"}},
		{Name: "--docs-path", Type: "string", Description: "Docs root to create", Commands: []string{"init"}},
		{Name: "--config", Type: "string", Description: "Path to config file", Commands: []string{"all"}},
		{Name: "--json", Type: "boolean", Description: "Force JSON output", Commands: []string{"all"}},
		{Name: "--fields", Type: "string", Description: "Project specific fields", Commands: []string{"list", "search"}},
		{Name: "--debug", Type: "boolean", Description: "Show debug diagnostics", Commands: []string{"all"}},
		{Name: "--quiet", Type: "boolean", Description: "Suppress non-error output", Commands: []string{"all"}},
	},
}

// help prints usage text on a terminal and a machine-readable envelope
// otherwise.
func (a *app) help(cmd *cli.Command) error {
	if a.printer.Structured() {
		return a.printer.Success(machineHelp)
	}
	return cli.ShowAppHelp(cmd)
}
