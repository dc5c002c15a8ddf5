package jobtable

type JobState int

const (
	// StateUndefined marks a free table slot. It's used as the zero value
	// and is never the state of a live job.
	StateUndefined JobState = iota

	// StateForeground indicates the job holds the terminal's attention and
	// the shell is blocked on it. At most one job is ever in this state.
	StateForeground

	// StateBackground indicates the job is running without blocking the
	// prompt loop.
	StateBackground

	// StateStopped indicates the job's process group has been stopped by a
	// signal and can be resumed with bg or fg.
	StateStopped
)

// NOTE: This slice needs to be kept in sync with any changes to the JobState
// values.
var jobStates = []string{
	"Undefined",
	"Foreground",
	"Background",
	"Stopped",
}

// String implements the Stringer interface for JobState and returns a string
// representation of the JobState by using the int value to index into a slice.
func (s JobState) String() string {
	if int(s) < 0 || int(s) >= len(jobStates) {
		return jobStates[0]
	}

	return jobStates[s]
}
