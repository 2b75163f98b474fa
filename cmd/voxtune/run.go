package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/voxtune/internal/project"
	"github.com/dshills/voxtune/internal/script"
)

var (
	outPath   string
	inPlace   bool
	indent    bool
	showLines bool
)

var runCmd = &cobra.Command{
	Use:   "run <project> <script.lua>",
	Short: "Apply a Lua edit script to a project",
	Long: "run opens the project, executes the script against it and prints the\n" +
		"resulting undo history. Use --out or --write to save the result.",
	Args: cobra.ExactArgs(2),
	RunE: runScript,
}

func init() {
	runCmd.Flags().StringVarP(&outPath, "out", "o", "", "write the edited project to this path")
	runCmd.Flags().BoolVarP(&inPlace, "write", "w", false, "overwrite the input project")
	runCmd.Flags().BoolVar(&indent, "indent", false, "indent the written JSON")
	runCmd.Flags().BoolVar(&showLines, "lines", false, "print the edited lines")
	runCmd.MarkFlagsMutuallyExclusive("out", "write")
}

func runScript(cmd *cobra.Command, args []string) error {
	projectPath, scriptPath := args[0], args[1]

	s, err := openSession(projectPath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	r := script.NewRunner(s,
		script.WithTimeout(cfg.Script.Timeout),
		script.WithMaxEdits(cfg.Script.MaxEdits),
		script.WithPrintOutput(out),
		script.WithLogger(logger.WithPrefix("script")),
	)
	defer r.Close()

	if err := r.RunFile(ctx, scriptPath); err != nil {
		return fmt.Errorf("%s: %w", scriptPath, err)
	}
	logger.Info("script applied", "script", scriptPath, "edits", r.Edits(), "undo", s.History().UndoCount())

	if showLines {
		renderLines(out, s)
	}
	renderHistory(out, s.History())

	dest := outPath
	if inPlace {
		dest = projectPath
	}
	if dest == "" {
		return nil
	}

	var opts []project.EncodeOption
	if indent {
		opts = append(opts, project.WithIndent())
	}
	data, err := s.Save(opts...)
	if err != nil {
		return err
	}
	if err := project.WriteFile(dest, data); err != nil {
		return err
	}
	logger.Info("project written", "path", dest)
	return nil
}
