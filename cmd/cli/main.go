package main

import (
	"fmt"
	"os"

	"github.com/bi-tools/reportsmith/pkg/runtime/terminal"
	"github.com/bi-tools/reportsmith/pkg/services/assembler"
	"github.com/bi-tools/reportsmith/pkg/services/render"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: render.NewRegistry(map[string]render.RendererFactory{
			"markdown": assembler.Factory,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
