package supervisor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jobshell/jsh/internal/jobtable"
	"golang.org/x/sys/unix"
)

var (
	// ErrMissingRef is returned when a job-control command is given no job
	// reference at all.
	ErrMissingRef = errors.New("missing job reference")

	// ErrBadJobID is returned for a %jobid reference that is not a positive
	// integer.
	ErrBadJobID = errors.New("job id must be a positive integer")

	// ErrBadPID is returned for a bare reference that is not a positive
	// integer pid.
	ErrBadPID = errors.New("argument must be a pid or %jobid")
)

// RefKind discriminates the two textual job reference forms.
type RefKind int

const (
	// RefJobID references a job by its shell-assigned id, written %N.
	RefJobID RefKind = iota

	// RefPID references a job by the pid of its group leader.
	RefPID
)

// Ref is a parsed job reference.
type Ref struct {
	Kind RefKind
	N    int
}

// ParseRef parses a textual job reference: %N for a job id or a bare
// positive integer for a pid. The three failure modes are distinct so
// callers can word their rejections separately.
func ParseRef(arg string) (Ref, error) {
	if arg == "" {
		return Ref{}, ErrMissingRef
	}

	if rest, ok := strings.CutPrefix(arg, "%"); ok {
		id, err := strconv.Atoi(rest)
		if err != nil || id < 1 {
			return Ref{}, ErrBadJobID
		}

		return Ref{Kind: RefJobID, N: id}, nil
	}

	pid, err := strconv.Atoi(arg)
	if err != nil || pid < 1 {
		return Ref{}, ErrBadPID
	}

	return Ref{Kind: RefPID, N: pid}, nil
}

// Continue resumes the referenced job by sending SIGCONT to its process
// group. With foreground set, the job is retagged Foreground and Continue
// blocks until it leaves the foreground again; otherwise it is retagged
// Background and the background notice is printed.
//
// Continuing a job that isn't actually stopped is harmless: the kernel
// delivers SIGCONT to a running group without effect and the retag is a
// no-op.
func (s *Supervisor) Continue(ref Ref, foreground bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		job *jobtable.Job
		ok  bool
	)

	switch ref.Kind {
	case RefJobID:
		job, ok = s.table.FindByJobID(ref.N)
	case RefPID:
		job, ok = s.table.FindByPID(ref.N)
	}

	if !ok {
		return jobtable.ErrJobNotFound
	}

	if err := unix.Kill(-job.PID, unix.SIGCONT); err != nil && !errors.Is(err, unix.ESRCH) {
		return fmt.Errorf("continue job [%d]: %w", job.ID, err)
	}

	if foreground {
		job.State = jobtable.StateForeground
		s.waitForeground(job.PID)
		return nil
	}

	job.State = jobtable.StateBackground
	fmt.Fprintf(s.out, "[%d] (%d) %s\n", job.ID, job.PID, job.Command)

	return nil
}
