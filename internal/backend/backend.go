// Package backend provides the key/value persistence layer behind the
// preference manager. Implementations absorb their own I/O failures (logged,
// never surfaced): preference reads and writes are defined to be
// synchronous-and-immediate, with no error channel back to callers.
package backend

// Backend is the persistence contract the preference manager depends on.
//
// A key has up to two entries: a recorded default (the value shipped with
// the application) and a live override written by the user. GetString and
// GetInt resolve override, then recorded default, then the caller-supplied
// fallback. DefaultString consults only the recorded default.
type Backend interface {
	GetString(key, fallback string) string
	PutString(key, value string)
	Remove(key string)
	GetInt(key string, fallback int) int
	PutInt(key string, value int)
	DefaultString(key, fallback string) string
}
