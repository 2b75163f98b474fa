package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/voxtune/internal/editor"
)

var showCmd = &cobra.Command{
	Use:   "show <project>...",
	Short: "Print the lines and parameters of one or more projects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := editor.NewWorkspace()
		for _, path := range args {
			if _, ok := ws.Get(path); ok {
				continue
			}
			s, err := openSession(path)
			if err != nil {
				return err
			}
			ws.Open(s)
		}

		out := cmd.OutOrStdout()
		for i, s := range ws.All() {
			if i > 0 {
				fmt.Fprintln(out)
			}
			renderLines(out, s)
		}
		logger.Debug("projects shown", "count", ws.Count())
		return nil
	},
}
