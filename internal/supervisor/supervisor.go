package supervisor

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/jobshell/jsh/internal/jobtable"
	"golang.org/x/sys/unix"
)

// signalBuffer is the channel buffer for incoming signal notifications.
// Overflow is fine: a dropped SIGCHLD is recovered by the drain loop of an
// earlier delivery, matching kernel signal coalescing.
const signalBuffer = 16

// Supervisor tracks child processes in a job table and keeps it consistent
// with asynchronously delivered child status changes.
type Supervisor struct {
	mu    sync.Mutex
	cond  *sync.Cond
	table *jobtable.Table

	// out receives user-visible console notices. Diagnostics go to logger.
	out    io.Writer
	logger *slog.Logger

	signals chan os.Signal
	done    chan struct{}

	// exit terminates the whole shell on SIGQUIT. Swapped out in tests.
	exit func(code int)
}

// New creates a Supervisor over the given job table. Console notices are
// written to out. The relay is not running until Start is called.
func New(table *jobtable.Table, out io.Writer, logger *slog.Logger) *Supervisor {
	s := &Supervisor{
		table:  table,
		out:    out,
		logger: logger,
		exit:   os.Exit,
	}

	s.cond = sync.NewCond(&s.mu)

	return s
}

// Start subscribes to the job-control signal set and launches the relay
// goroutine.
func (s *Supervisor) Start() {
	s.signals = make(chan os.Signal, signalBuffer)
	s.done = make(chan struct{})

	signal.Notify(
		s.signals,
		unix.SIGCHLD,
		unix.SIGINT,
		unix.SIGTSTP,
		unix.SIGQUIT,
	)

	go s.relay()
}

// Stop unsubscribes from signal delivery and waits for the relay goroutine
// to drain and exit. Tracked children are left running; the shell exiting is
// not their concern.
func (s *Supervisor) Stop() {
	signal.Stop(s.signals)
	close(s.signals)
	<-s.done
}

// Jobs returns a snapshot of all tracked jobs in table slot order.
func (s *Supervisor) Jobs() []jobtable.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.table.List()
}

// waitForeground blocks until pid is no longer the foreground job: it has
// been reaped out of the table, stopped by a signal, or retagged. The caller
// must hold s.mu; the wait releases it so the relay can run, mirroring a
// blocking wait entered with signals unblocked.
//
// The condition variable is broadcast for every table mutation, so wakeups
// for unrelated jobs are routine. The specific job is re-checked on each
// iteration and nothing is ever assumed about which child changed state.
func (s *Supervisor) waitForeground(pid int) {
	// Entering the wait with a pid that was never registered is a caller
	// bug; diagnose it rather than wait for a wakeup that can't come.
	if _, ok := s.table.FindByPID(pid); !ok {
		s.logger.Debug("foreground wait for untracked pid", "pid", pid)
		return
	}

	for {
		job, ok := s.table.FindByPID(pid)
		if !ok || job.State != jobtable.StateForeground {
			return
		}

		s.cond.Wait()
	}
}
