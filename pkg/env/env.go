// Package env keeps names of environment variables with special significance to
// synterm.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
package env

// Environment variables with special significance to synterm.
const (
	HOME                    = "HOME"
	SYNTERM_TEST_TIME_SCALE = "SYNTERM_TEST_TIME_SCALE"
	XDG_CONFIG_HOME         = "XDG_CONFIG_HOME"
)
