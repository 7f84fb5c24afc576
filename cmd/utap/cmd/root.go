package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "utap",
	Short: "Semantic checker for timed-automata models",
	Long: `go-utap is a Go implementation of the semantic-analysis core for
the UPPAAL timed-automata modeling language.

The checker validates a built system: well-formedness of declared types
and prefixes, type correctness of every expression, the guard/invariant/
constraint/formula discipline, side-effect rules, clock-rate
decomposition of invariants, and property validation including
statistical (SMC) queries.`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
