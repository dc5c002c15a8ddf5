package supervisor

import (
	"errors"
	"fmt"

	"github.com/jobshell/jsh/internal/jobtable"
	"golang.org/x/sys/unix"
)

// relay drains the signal channel until Stop closes it. It is the only
// goroutine that reaps children, so wait statuses are never consumed behind
// the job table's back.
func (s *Supervisor) relay() {
	defer close(s.done)

	for sig := range s.signals {
		switch sig {
		case unix.SIGCHLD:
			s.reapChildren()
		case unix.SIGINT:
			s.signalForeground(unix.SIGINT)
		case unix.SIGTSTP:
			s.stopForeground()
		case unix.SIGQUIT:
			fmt.Fprintln(s.out, "Terminating after receipt of SIGQUIT signal")
			s.exit(1)
		}
	}
}

// reapChildren collects every currently reapable child. One SIGCHLD
// notification may stand for several pending status changes, so it loops
// with WNOHANG until the kernel has nothing left to report. WUNTRACED and
// WCONTINUED are set so stopped and resumed children are observed, not just
// terminated ones.
func (s *Supervisor) reapChildren() {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.cond.Broadcast()

	for {
		var status unix.WaitStatus

		pid, err := unix.Wait4(
			-1,
			&status,
			unix.WNOHANG|unix.WUNTRACED|unix.WCONTINUED,
			nil,
		)
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			// ECHILD just means there are no children left to wait for.
			if !errors.Is(err, unix.ECHILD) {
				s.logger.Warn("wait for children", "err", err)
			}

			return
		}

		if pid <= 0 {
			return
		}

		s.applyStatus(pid, status)
	}
}

// applyStatus translates one reaped wait status into a job table mutation
// and the matching console notice. Caller must hold s.mu.
func (s *Supervisor) applyStatus(pid int, status unix.WaitStatus) {
	job, ok := s.table.FindByPID(pid)
	if !ok {
		// Not one of ours. Log and move on; an unknown pid must never take
		// the relay down.
		s.logger.Warn("status change for untracked process", "pid", pid)
		return
	}

	switch {
	case status.Exited():
		s.logger.Debug(
			"job exited",
			"job", job.ID,
			"pid", pid,
			"status", status.ExitStatus(),
		)
		s.table.Remove(pid)

	case status.Signaled():
		fmt.Fprintf(
			s.out,
			"Job [%d] (%d) terminated by signal %d\n",
			job.ID, pid, int(status.Signal()),
		)
		s.table.Remove(pid)

	case status.Stopped():
		job.State = jobtable.StateStopped
		fmt.Fprintf(
			s.out,
			"Job [%d] (%d) stopped by signal %d\n",
			job.ID, pid, int(status.StopSignal()),
		)

	case status.Continued():
		// Only a stopped job is retagged. The bg and fg builtins retag
		// before the kernel reports WCONTINUED, so this path must neither
		// demote a foreground job nor repeat the background notice.
		if job.State == jobtable.StateStopped {
			job.State = jobtable.StateBackground
			fmt.Fprintf(s.out, "[%d] (%d) %s\n", job.ID, pid, job.Command)
		}
	}
}

// signalForeground delivers sig to the foreground job's entire process
// group. No table mutation happens here: the resulting status change comes
// back through reapChildren.
func (s *Supervisor) signalForeground(sig unix.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid, ok := s.table.ForegroundPID()
	if !ok {
		return
	}

	if err := unix.Kill(-pid, sig); err != nil && !errors.Is(err, unix.ESRCH) {
		s.logger.Warn(
			"signal foreground process group",
			"pid", pid,
			"signal", sig,
			"err", err,
		)
	}
}

// stopForeground delivers SIGTSTP to the foreground job's process group and
// marks the job stopped immediately, so the prompt comes back without
// waiting for the next reap cycle. The reap path applies the same
// transition when it observes the stop; both are idempotent.
func (s *Supervisor) stopForeground() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid, ok := s.table.ForegroundPID()
	if !ok {
		return
	}

	if err := unix.Kill(-pid, unix.SIGTSTP); err != nil && !errors.Is(err, unix.ESRCH) {
		s.logger.Warn(
			"stop foreground process group",
			"pid", pid,
			"err", err,
		)
		return
	}

	if job, ok := s.table.FindByPID(pid); ok {
		job.State = jobtable.StateStopped
	}

	s.cond.Broadcast()
}
