// Package shell implements the interactive read-eval loop on top of the
// supervisor: prompt emission, command line tokenization and the built-in
// job-control commands (quit, jobs, bg, fg).
package shell

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/jobshell/jsh/internal/supervisor"
)

// Options configures a Shell.
type Options struct {
	// Prompt is printed before each command line when EmitPrompt is set.
	Prompt string

	// EmitPrompt controls prompt emission. Callers turn it off when stdin
	// is not an interactive terminal or the user asked for no prompt.
	EmitPrompt bool
}

// Shell is the interactive command loop.
type Shell struct {
	sup    *supervisor.Supervisor
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
	opts   Options

	quit bool
}

// New creates a Shell reading command lines from in and writing prompt and
// builtin output to out.
func New(
	sup *supervisor.Supervisor,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
	opts Options,
) *Shell {
	return &Shell{
		sup:    sup,
		in:     in,
		out:    out,
		logger: logger,
		opts:   opts,
	}
}

// Run reads and evaluates command lines until end of input or the quit
// builtin. End of input is a normal exit, matching interactive ^D.
func (sh *Shell) Run() error {
	scanner := bufio.NewScanner(sh.in)

	for {
		if sh.opts.EmitPrompt {
			fmt.Fprint(sh.out, sh.opts.Prompt)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read command line: %w", err)
			}

			return nil
		}

		sh.Eval(scanner.Text())

		if sh.quit {
			return nil
		}
	}
}

// Eval evaluates one command line: empty lines are ignored, builtins are
// executed immediately, anything else is launched as a job.
func (sh *Shell) Eval(line string) {
	argv, background := Tokenize(line)
	if len(argv) == 0 {
		return
	}

	if sh.RunBuiltin(argv[0], argv[1:]) {
		return
	}

	if err := sh.sup.Launch(argv, background); err != nil {
		// The supervisor already printed the user-facing notice.
		sh.logger.Debug("launch failed", "command", argv[0], "err", err)
	}
}
