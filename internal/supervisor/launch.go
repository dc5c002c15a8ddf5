package supervisor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/jobshell/jsh/internal/jobtable"
)

// Launch starts argv as a new job. With background set, the job is
// registered as Background, the launch notice is printed and Launch returns
// immediately; otherwise the job is registered as Foreground and Launch
// blocks until it leaves the foreground.
//
// The table lock is held from before the child is started until it is
// registered. The relay takes the same lock to reap, so a SIGCHLD delivered
// mid-launch cannot observe the child before its table entry exists.
func (s *Supervisor) Launch(argv []string, background bool) error {
	if len(argv) == 0 {
		return errors.New("empty argument vector")
	}

	command := strings.Join(argv, " ")

	s.mu.Lock()
	defer s.mu.Unlock()

	// Capacity is checked before spawning. Registering first is impossible
	// (the pid doesn't exist yet), so this is the only ordering that never
	// leaves an untracked, unsignalable child behind.
	if s.table.FreeID() == 0 {
		fmt.Fprintln(s.out, "Tried to create too many jobs")
		return jobtable.ErrTableFull
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// The child leads a new process group whose id equals its own pid, so
	// the whole subtree can be signalled as one unit via -pid.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			fmt.Fprintf(s.out, "%s: Command not found\n", argv[0])
		} else {
			fmt.Fprintf(s.out, "%s: %s\n", argv[0], err)
		}

		return fmt.Errorf("start %s: %w", argv[0], err)
	}

	pid := cmd.Process.Pid

	state := jobtable.StateForeground
	if background {
		state = jobtable.StateBackground
	}

	id, err := s.table.Register(pid, state, command)
	if err != nil {
		// Capacity was verified above, so only a bogus pid could land here.
		s.logger.Error("register job", "pid", pid, "err", err)
		return fmt.Errorf("register job for pid %d: %w", pid, err)
	}

	s.logger.Debug("added job", "job", id, "pid", pid, "command", command)

	if background {
		fmt.Fprintf(s.out, "[%d] (%d) %s\n", id, pid, command)
		return nil
	}

	s.waitForeground(pid)

	return nil
}
