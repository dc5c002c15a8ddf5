package main

import (
	"log/slog"
	"os"

	"github.com/jobshell/jsh/internal/config"
	"github.com/jobshell/jsh/internal/jobtable"
	"github.com/jobshell/jsh/internal/shell"
	"github.com/jobshell/jsh/internal/supervisor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

type cliConfig struct {
	configPath string
	noPrompt   bool
	verbose    bool
}

func rootCmd() *cobra.Command {
	cfg := &cliConfig{}

	c := &cobra.Command{
		Use:          "jsh",
		Short:        "Interactive command shell with job control",
		Example:      "  jsh --no-prompt < commands.txt",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cfg, cmd.Flags())
		},
	}

	c.Flags().StringVar(&cfg.configPath, "config", "", "Path to shell config file")

	c.Flags().
		BoolVarP(&cfg.noPrompt, "no-prompt", "p", false, "Do not emit a command prompt")

	c.Flags().
		BoolVarP(&cfg.verbose, "verbose", "v", false, "Print additional diagnostic information")

	c.CompletionOptions.HiddenDefaultCmd = true

	return c
}

func runShell(cli *cliConfig, flags *pflag.FlagSet) error {
	path := cli.configPath
	explicit := flags.Changed("config")
	if path == "" {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}

	if cli.verbose {
		cfg.Debug = true
	}

	logger := newLogger(cfg.Debug)

	sup := supervisor.New(jobtable.New(cfg.MaxJobs), os.Stdout, logger)
	sup.Start()
	defer sup.Stop()

	// The prompt is only useful on an interactive terminal; when input is a
	// pipe or file it would just litter the output.
	emitPrompt := !cli.noPrompt && term.IsTerminal(int(os.Stdin.Fd()))

	sh := shell.New(sup, os.Stdin, os.Stdout, logger, shell.Options{
		Prompt:     cfg.Prompt,
		EmitPrompt: emitPrompt,
	})

	return sh.Run()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	)
}
