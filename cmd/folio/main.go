package main

import (
	"os"
	"strings"

	"folio-cli/internal/cli"

	"github.com/spf13/cobra"
)

// commandNames lists the root's subcommands (and aliases) plus the ones cobra
// adds at execution time.
func commandNames(root *cobra.Command) map[string]bool {
	names := map[string]bool{"help": true, "completion": true}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		for _, a := range c.Aliases {
			names[a] = true
		}
	}
	return names
}

func rewriteDirectProjectLookupArgs(argv []string, commands map[string]bool) []string {
	// Convenience: `folio <project-id>` works like `folio projects show <project-id>`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first
	// (`folio --dir ... <project-id>`), so look for the first positional token.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":     true,
		"--content": true,
		"--format":  true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
		"--debug":  true,
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "projects", "show")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}

		if strings.HasPrefix(a, "-") {
			// --flag=value form
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
				continue
			}
			continue
		}

		// First positional token.
		if commands[a] {
			return argv
		}
		return insert(i)
	}

	return argv
}

func main() {
	cmd := cli.NewRootCmd()
	os.Args = rewriteDirectProjectLookupArgs(os.Args, commandNames(cmd))
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
