// Package supervisor launches child processes as jobs and routes job-control
// signals to them.
//
// Each job runs as the leader of its own process group, so interrupt, stop
// and continue signals are always delivered to the whole group (-pid) and a
// multi-process job stops or resumes as a unit.
//
// Kernel notifications (SIGCHLD, SIGINT, SIGTSTP, SIGQUIT) arrive on a single
// buffered channel drained by one relay goroutine. Channel delivery coalesces
// the same way signal delivery does, so the SIGCHLD path reaps every pending
// child status change before returning. All job table access, from the relay
// and from the launch/continue entry points alike, is serialized behind one
// mutex; a condition variable wakes the foreground waiter after every table
// mutation.
package supervisor
