package cachekit

import "github.com/rs/zerolog"

// ResolveLogger returns *l, or a silent zerolog.Nop() logger if l is nil.
// Every policy's Config carries an optional *zerolog.Logger; this is the
// single place that substitutes the silent default, matching the teacher's
// "zero values are safe" contract for Options.
func ResolveLogger(l *zerolog.Logger) zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return *l
}
