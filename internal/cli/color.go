package cli

// ANSI escape codes for terminal feedback. Mirrors the palette of the
// historical console application.
const (
	reset  = "[0m"
	red    = "[31m"
	green  = "[32m"
	yellow = "[33m"
	cyan   = "[36m"
)
