package main

import (
	"os"

	"github.com/qtmops/coco-cloner/internal/pkg/cli"
	"github.com/qtmops/coco-cloner/internal/pkg/interaction"
)

func main() {
	// Run command
	prompt := interaction.NewPrompt(os.Stdin, os.Stdout, os.Stderr)
	cmd := cli.NewRootCommand(os.Stdin, os.Stdout, os.Stderr, prompt)
	os.Exit(cmd.Execute())
}
