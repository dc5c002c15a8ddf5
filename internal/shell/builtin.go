package shell

import (
	"errors"
	"fmt"

	"github.com/jobshell/jsh/internal/jobtable"
	"github.com/jobshell/jsh/internal/supervisor"
)

// RunBuiltin executes name immediately if it is a built-in command and
// reports whether it was handled.
func (sh *Shell) RunBuiltin(name string, args []string) bool {
	switch name {
	case "quit":
		sh.quit = true
		return true

	case "jobs":
		sh.listJobs()
		return true

	case "bg":
		sh.continueJob(name, args, false)
		return true

	case "fg":
		sh.continueJob(name, args, true)
		return true
	}

	return false
}

func (sh *Shell) listJobs() {
	for _, job := range sh.sup.Jobs() {
		fmt.Fprintf(
			sh.out,
			"[%d] (%d) %s %s\n",
			job.ID,
			job.PID,
			displayState(job.State),
			job.Command,
		)
	}
}

// displayState translates job states to the wording used by the jobs
// listing.
func displayState(state jobtable.JobState) string {
	switch state {
	case jobtable.StateForeground:
		return "Foreground"
	case jobtable.StateBackground:
		return "Running"
	case jobtable.StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("Unknown(%d)", state)
	}
}

// continueJob implements the bg and fg builtins. The supervisor's typed
// errors are mapped to the user-facing wording here, one distinct message
// per failure mode.
func (sh *Shell) continueJob(name string, args []string, foreground bool) {
	if len(args) == 0 {
		fmt.Fprintf(sh.out, "%s command requires PID or %%jobid argument\n", name)
		return
	}

	ref, err := supervisor.ParseRef(args[0])
	switch {
	case errors.Is(err, supervisor.ErrBadJobID):
		fmt.Fprintf(sh.out, "%s: argument must be a positive integer\n", name)
		return
	case err != nil:
		fmt.Fprintf(sh.out, "%s: argument must be a PID or %%jobid\n", name)
		return
	}

	err = sh.sup.Continue(ref, foreground)
	if errors.Is(err, jobtable.ErrJobNotFound) {
		if ref.Kind == supervisor.RefJobID {
			fmt.Fprintf(sh.out, "%s: No such job\n", args[0])
		} else {
			fmt.Fprintf(sh.out, "(%d): No such process\n", ref.N)
		}

		return
	}

	if err != nil {
		fmt.Fprintf(sh.out, "%s: %s\n", name, err)
	}
}
