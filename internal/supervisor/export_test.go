package supervisor

// SetExit replaces the process-exit function so tests can observe the
// SIGQUIT path without terminating the test binary. Call before Start.
func (s *Supervisor) SetExit(fn func(code int)) {
	s.exit = fn
}

// WaitForeground enters the foreground wait for pid, taking the table lock
// the way the launch and continue paths do.
func (s *Supervisor) WaitForeground(pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.waitForeground(pid)
}
