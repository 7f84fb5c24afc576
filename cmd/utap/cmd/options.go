package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelchk/go-utap/internal/config"
)

var optionsCmd = &cobra.Command{
	Use:   "options [file]",
	Short: "Print the effective checker options",
	Long: `Resolves the checker options, optionally merging a YAML preset,
and prints the result. Useful to verify what a driver tool will hand to
the checker.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := config.Default()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				exitWithError("%v", err)
			}
			defer f.Close()
			opts, err = config.Load(f)
			if err != nil {
				exitWithError("%v", err)
			}
		}
		fmt.Printf("refinement:  %v\n", opts.Refinement)
		fmt.Printf("probability: %v\n", opts.Probability)
		fmt.Printf("hints:       %s\n", opts.Hints)
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}
