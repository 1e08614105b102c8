// Package config loads and watches editor engine options.
//
// Options are stored as TOML. Load reads and validates a file,
// falling back to defaults for anything left unset. Watcher follows
// a loaded file with fsnotify and delivers debounced reload
// callbacks, letting a host apply option changes live.
package config
