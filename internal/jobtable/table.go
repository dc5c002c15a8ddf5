// Package jobtable provides the fixed-capacity registry of jobs tracked by
// the shell.
//
// A Job is addressed by two stable small-integer keys: the pid of its process
// group leader and a shell-assigned job id. Job ids are always the smallest
// positive integer not currently in use and are released for reuse when the
// job is removed.
//
// The Table performs no locking of its own. The supervisor owns the table and
// serializes every access, including those made on behalf of asynchronous
// signal notifications, behind a single mutex. Pointers returned by the
// lookup methods are only valid while that lock is held.
package jobtable

const (
	// DefaultCapacity is the number of jobs tracked at any point in time
	// when no explicit capacity is configured.
	DefaultCapacity = 16

	// MaxCommandLen bounds the command text retained for display. Longer
	// command lines are truncated on registration.
	MaxCommandLen = 1024
)

// Job is one tracked process group.
type Job struct {
	// PID is the pid of the process group leader. 0 marks a free slot.
	PID int

	// ID is the shell-assigned job id. 0 means unassigned.
	ID int

	State JobState

	// Command is the command line the job was launched with, retained for
	// display.
	Command string
}

// Table is a fixed-capacity registry of jobs. Slots are scanned linearly;
// with at most a handful of concurrent jobs there's nothing to be gained
// from an index.
type Table struct {
	slots []Job
}

// New creates a Table that tracks at most capacity jobs. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Table {
	if capacity < 1 {
		capacity = DefaultCapacity
	}

	return &Table{slots: make([]Job, capacity)}
}

// Reset clears every slot back to free/Undefined.
func (t *Table) Reset() {
	for i := range t.slots {
		t.slots[i] = Job{}
	}
}

// Capacity returns the fixed number of slots in the table.
func (t *Table) Capacity() int {
	return len(t.slots)
}

// FreeID returns the smallest positive job id not assigned to a live job, or
// 0 if the table is at capacity.
func (t *Table) FreeID() int {
	taken := make([]bool, len(t.slots)+1)

	for _, job := range t.slots {
		if job.ID > 0 && job.ID <= len(t.slots) {
			taken[job.ID] = true
		}
	}

	for id := 1; id <= len(t.slots); id++ {
		if !taken[id] {
			return id
		}
	}

	return 0
}

// Register occupies the first free slot with a new job and returns its
// freshly assigned job id. It returns ErrInvalidPID for a non-positive pid
// and ErrTableFull when no id is available; in both cases the table is left
// unchanged.
func (t *Table) Register(pid int, state JobState, command string) (int, error) {
	if pid < 1 {
		return 0, ErrInvalidPID
	}

	id := t.FreeID()
	if id == 0 {
		return 0, ErrTableFull
	}

	if len(command) > MaxCommandLen {
		command = command[:MaxCommandLen]
	}

	for i := range t.slots {
		if t.slots[i].PID == 0 {
			t.slots[i] = Job{
				PID:     pid,
				ID:      id,
				State:   state,
				Command: command,
			}

			return id, nil
		}
	}

	// A free id implies a free slot, so this is unreachable.
	return 0, ErrTableFull
}

// Remove frees the slot owned by pid, releasing its job id, and reports
// whether a matching job existed.
func (t *Table) Remove(pid int) bool {
	if pid < 1 {
		return false
	}

	for i := range t.slots {
		if t.slots[i].PID == pid {
			t.slots[i] = Job{}
			return true
		}
	}

	return false
}

// FindByPID returns the live job whose group leader is pid. The returned
// pointer is only valid while the caller holds the supervisor's lock.
func (t *Table) FindByPID(pid int) (*Job, bool) {
	if pid < 1 {
		return nil, false
	}

	for i := range t.slots {
		if t.slots[i].PID == pid {
			return &t.slots[i], true
		}
	}

	return nil, false
}

// FindByJobID returns the live job with the given job id. The returned
// pointer is only valid while the caller holds the supervisor's lock.
func (t *Table) FindByJobID(id int) (*Job, bool) {
	if id < 1 {
		return nil, false
	}

	for i := range t.slots {
		if t.slots[i].PID != 0 && t.slots[i].ID == id {
			return &t.slots[i], true
		}
	}

	return nil, false
}

// ForegroundPID returns the pid of the unique foreground job, if any.
func (t *Table) ForegroundPID() (int, bool) {
	for i := range t.slots {
		if t.slots[i].PID != 0 && t.slots[i].State == StateForeground {
			return t.slots[i].PID, true
		}
	}

	return 0, false
}

// List returns a snapshot of all live jobs in slot order. Slot order is
// stable for the lifetime of a job, it is not sorted by job id.
func (t *Table) List() []Job {
	var jobs []Job

	for i := range t.slots {
		if t.slots[i].PID != 0 {
			jobs = append(jobs, t.slots[i])
		}
	}

	return jobs
}
