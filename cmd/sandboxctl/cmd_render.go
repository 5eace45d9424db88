package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akulearn/sandbox/runtime"
)

var renderCmd = &cobra.Command{
	Use:   "render <graph-file>",
	Short: "Render a workflow graph as GraphViz DOT",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	nodes, err := readGraphFile(args[0])
	if err != nil {
		return err
	}

	fmt.Print(runtime.RenderDOT(nodes, nil))
	return nil
}
