package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
	"github.com/khanglvm/dev-tools-hub/internal/tools"
)

// NewBitsCmd creates the interactive bit editor.
func NewBitsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits [decimal]",
		Short: "Interactive 64-bit decimal/binary editor",
		Long: `Edit a 64-bit unsigned value interactively.

Commands:
  <decimal> | set <decimal>   set the value from decimal text
  bin <binary>                set the value from binary text
  t <pos> [pos...]            toggle bits (0 = least significant, 63 = most)
  reset                       set the value back to 0
  show                        print the bit grid
  help                        show this help
  quit | exit                 leave

Every change is recorded in history. When stdin is not a terminal, commands
are read line by line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := &bitsShell{
				session: tools.NewBitSession(app.Store, bitvector.Zero()),
				out:     cmd.OutOrStdout(),
			}
			if len(args) == 1 {
				if _, err := shell.session.SetDecimal(args[0]); err != nil {
					return err
				}
			}
			shell.show()

			if cmd.InOrStdin() == os.Stdin && readline.DefaultIsTerminal() {
				return shell.runInteractive(app)
			}
			return shell.runScripted(cmd.InOrStdin())
		},
	}

	return cmd
}

type bitsShell struct {
	session *tools.BitSession
	out     io.Writer
}

var errQuit = errors.New("quit")

var bitsCommands = []string{"set", "bin", "t", "toggle", "reset", "show", "help", "quit", "exit"}

func bitsCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, len(bitsCommands))
	for i, c := range bitsCommands {
		items[i] = readline.PcItem(c)
	}
	return readline.NewPrefixCompleter(items...)
}

func bitsHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	dir := filepath.Join(home, ".dev-tools-hub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "bits_history")
}

func (b *bitsShell) runInteractive(app *App) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "bits❯ ",
		HistoryFile:     bitsHistoryFile(),
		AutoComplete:    bitsCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		if err := b.handle(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			app.Logger.Debug().Err(err).Str("input", line).Msg("bits command rejected")
			yellow.Fprintf(b.out, "! %v\n", err)
		}
	}
}

func (b *bitsShell) runScripted(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := b.handle(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			yellow.Fprintf(b.out, "! %v\n", err)
		}
	}
	return scanner.Err()
}

// handle runs one editor command. Rejected input leaves the value unchanged.
func (b *bitsShell) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, rest := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(b.out, "set <decimal> | bin <binary> | t <pos>... | reset | show | quit")
		return nil
	case "show":
	case "reset":
		b.session.Reset()
	case "set":
		if len(rest) != 1 {
			return fmt.Errorf("usage: set <decimal>")
		}
		if _, err := b.session.SetDecimal(rest[0]); err != nil {
			return err
		}
	case "bin":
		if _, err := b.session.SetBinary(strings.Join(rest, "")); err != nil {
			return err
		}
	case "t", "toggle":
		if len(rest) == 0 {
			return fmt.Errorf("usage: t <pos> [pos...]")
		}
		for _, arg := range rest {
			pos, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("%q: %w", arg, bitvector.ErrBitPosition)
			}
			if _, err := b.session.Toggle(pos); err != nil {
				return err
			}
		}
	default:
		if !looksNumeric(fields[0]) {
			return fmt.Errorf("unknown command %q (try help)", fields[0])
		}
		if _, err := b.session.SetDecimal(fields[0]); err != nil {
			return err
		}
	}

	b.show()
	return nil
}

// looksNumeric reports whether a bare word is meant as a decimal value.
func looksNumeric(word string) bool {
	switch c := word[0]; {
	case c >= '0' && c <= '9', c == '-', c == '+':
		return true
	}
	return false
}

func (b *bitsShell) show() {
	printBits(b.out, b.session.Current())
}
