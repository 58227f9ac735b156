package gfx

// SetExit replaces the process exit used by ExitReporter and returns a func
// restoring the previous one.
func SetExit(f func(int)) (restore func()) {
	prev := exit
	exit = f
	return func() { exit = prev }
}

// ClearDriver uninstalls the driver so tests can observe the missing-Init
// panic.
func ClearDriver() {
	state.driver = nil
}
