package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/32bitkid/retroboy/internal/logging"
	"github.com/spf13/cobra"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	var logFile io.Closer
	cmd := &cobra.Command{
		Use:   "retroboy",
		Short: "retro photo effects",
		Long:  "retroboy turns photos and raw camera frames into pictures in the style of old handheld consoles, home computers and print.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logPath, _ := cmd.Flags().GetString("log-file")
			logJSON, _ := cmd.Flags().GetBool("log-json")

			var level slog.Level
			levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
			if levelErr != nil {
				level = slog.LevelInfo
			}

			var w io.Writer = os.Stderr
			if logPath != "" {
				f := logging.File(logPath)
				w, logFile = f, f
			}
			slog.SetDefault(logging.Logger(w, logJSON, level))

			if levelErr != nil {
				slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd.OutOrStdout(), cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewFiltersCmd(ctx),
		NewProcessCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "write logs to this file, rotated by size")
	pf.Bool("log-json", false, "log as JSON")
	return cmd
}

func printCommandTree(w io.Writer, cmd *cobra.Command, indent int) {
	fmt.Fprintln(w, strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(w, subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}
