package confloader

import "time"

// Recorder receives load events from a Store.
type Recorder interface {
	// FileLoaded is called after a successful Add. driver is "none" when
	// the file produced no keys.
	FileLoaded(driver string, keys int, d time.Duration)
	// ParseFailed is called when a driver rejects a file.
	ParseFailed(format string)
}

type nopRecorder struct{}

func (nopRecorder) FileLoaded(string, int, time.Duration) {}
func (nopRecorder) ParseFailed(string)                    {}
