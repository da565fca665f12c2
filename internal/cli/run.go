package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

// NewRunCmd creates the 'run' command that applies a tool action.
func NewRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <tool-id> <action> [input]",
		Short: "Apply a tool action to input",
		Long: `Apply one action of a tool to input text and print the result.

Input is taken from the third argument, or from stdin when omitted.
Successful runs are appended to history.`,
		Example: `  dev-tools-hub run base64 encode "hello world"
  echo '{"a":1}' | dev-tools-hub run json-formatter format
  dev-tools-hub run url-encoder decode "a%20b"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, 2)
			if err != nil {
				return err
			}

			output, err := app.Runner.Run(args[0], args[1], input)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	return cmd
}

// NewConvertCmd creates the 'convert' command: decimal to 64-bit binary.
func NewConvertCmd(app *App) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "convert <decimal>",
		Short: "Show the 64-bit binary breakdown of a decimal number",
		Example: `  dev-tools-hub convert 42
  dev-tools-hub convert 18446744073709551615 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := tools.NewBitSession(app.Store, bitvector.Empty())
			v, err := session.SetDecimal(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				return printJSON(out, map[string]any{
					"decimal": v.DecimalText(),
					"binary":  v.BinaryText(),
					"hex":     v.HexText(),
					"ones":    v.OnesCount(),
				})
			}
			printBits(out, v)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	return cmd
}

// readInput returns args[pos] or all of stdin with one trailing newline
// removed.
func readInput(cmd *cobra.Command, args []string, pos int) (string, error) {
	if len(args) > pos {
		return args[pos], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r"), nil
}
