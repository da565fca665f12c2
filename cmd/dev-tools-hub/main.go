/*
Package main is the entry point for the dev-tools-hub CLI.

dev-tools-hub bundles small developer utilities (decimal/binary with bit
toggling, Base64, URL encoding, JSON formatting, text to JSON, HTML viewing)
behind one command with a shared usage history and a fuzzy tool finder.

Usage:
  dev-tools-hub [command]

Available Commands:
  tools       Browse the tool catalog
  search      Fuzzy-find tools by name, keyword or abbreviation
  run         Apply a tool action to input
  convert     Show the 64-bit binary breakdown of a decimal number
  bits        Interactive 64-bit decimal/binary editor
  history     Inspect or clear the usage history
  route       Resolve an application path to its view
  serve       Run the MCP server (stdio transport)
  config      Create or show the configuration file
  version     Show version information

Examples:
  # Find a tool
  dev-tools-hub search b64

  # Encode text
  dev-tools-hub run base64 encode "hello"

  # Run as MCP server
  dev-tools-hub serve
*/
package main

import (
	"fmt"
	"os"

	"github.com/khanglvm/dev-tools-hub/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
