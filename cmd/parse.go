package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kasuboski/renamez/pkg/parser"
	"github.com/kasuboski/renamez/pkg/prompt"
	"github.com/spf13/cobra"
)

const parseFailure = "✗ could not parse"

var exitWords = map[string]struct{}{
	"exit":  {},
	"quit":  {},
	"salir": {},
}

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse [NAME...]",
	Short: "print the canonical name of each argument, or of each line read from stdin",
	Long: `print the canonical name of each argument.
With no arguments names are read one per line until exit, quit, salir or end of input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) > 0 {
			for _, name := range args {
				printParsed(out, name)
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runREPL(ctx, prompt.New(cmd.InOrStdin(), out), out, prompt.IsTerminal(os.Stdin))
	},
}

func printParsed(out io.Writer, raw string) {
	name, ok := parser.Name(raw)
	if !ok {
		fmt.Fprintln(out, parseFailure)
		return
	}

	fmt.Fprintln(out, "→", name)
}

// runREPL parses one name per line. Prompts are only written when interactive.
func runREPL(ctx context.Context, term *prompt.Terminal, out io.Writer, interactive bool) error {
	label := ""
	if interactive {
		fmt.Fprintln(out, "Movie renamer test mode")
		fmt.Fprintln(out, "Type 'exit' to quit")
		fmt.Fprintln(out)
		label = "Original name: "
	}

	for {
		input, err := term.ReadLine(ctx, label)
		if err != nil {
			return exitQuietly(err)
		}

		if _, ok := exitWords[strings.ToLower(input)]; ok {
			return nil
		}

		if input == "" {
			continue
		}

		printParsed(out, input)
		if interactive {
			fmt.Fprintln(out)
		}
	}
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
