package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/modelchk/go-utap/internal/semantic"
)

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Print the diagnostic-identifier catalog",
	Long: `Prints every diagnostic identifier the checker can emit, with its
severity. The identifiers are a stable contract; localization tables and
test suites match them literally.`,
	Run: func(cmd *cobra.Command, args []string) {
		color := isatty.IsTerminal(os.Stdout.Fd())
		for _, m := range semantic.Messages() {
			severity := string(m.Severity)
			if color {
				c := colorRed
				if m.Severity == semantic.SeverityWarning {
					c = colorYellow
				}
				severity = c + severity + colorReset
			}
			fmt.Printf("%-8s %s\n", severity, m.ID)
		}
	},
}

func init() {
	rootCmd.AddCommand(messagesCmd)
}
