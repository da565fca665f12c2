package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/khanglvm/dev-tools-hub/internal/bitvector"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	faint  = color.New(color.Faint)
	bold   = color.New(color.Bold)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// truncate shortens s to n runes for table output.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// printBits renders the 64 bits as eight byte rows, most significant first,
// with set bits highlighted.
func printBits(w io.Writer, v bitvector.BitVector) {
	bytes := v.Bytes()
	for i := bitvector.ByteCount - 1; i >= 0; i-- {
		b := bytes[i]
		hi := b.Index*8 + 7
		lo := b.Index * 8
		faint.Fprintf(w, "  byte %d [%2d..%2d]  ", b.Index, hi, lo)
		for j := 7; j >= 0; j-- {
			if b.Bits[j].Value == 1 {
				green.Fprint(w, "1")
			} else {
				faint.Fprint(w, "0")
			}
			if j == 4 {
				fmt.Fprint(w, " ")
			}
		}
		fmt.Fprintln(w)
	}

	dec := v.DecimalText()
	if dec == "" {
		dec = "(empty)"
	}
	fmt.Fprintf(w, "  %s %s  %s 0x%s  %s %d\n",
		cyan.Sprint("decimal"), dec,
		cyan.Sprint("hex"), v.HexText(),
		cyan.Sprint("ones"), v.OnesCount())
}
