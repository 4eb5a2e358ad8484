package model

import "fmt"

// ConfigurationError is fatal: the round cannot be built with the given
// settings. It is surfaced once to the player as a load failure.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

func configErrorf(format string, v ...interface{}) error {
	return &ConfigurationError{Reason: fmt.Sprintf(format, v...)}
}

// AssetLoadError reports a resource that could not be loaded. Images fall
// back to placeholders; audio slots stay silent.
type AssetLoadError struct {
	ID   string
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s (%s): %v", e.ID, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// PlaybackError reports a clip that failed to start or stopped with an
// error. It never blocks further playback.
type PlaybackError struct {
	ID  string
	Err error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("play %s: %v", e.ID, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }
