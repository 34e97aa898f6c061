// Package confloader loads keyline-server configuration.
//
// Sources are merged with the precedence Env > File > Default. The file
// format is YAML; environment variables use the KEYLINE_ prefix with
// underscores mapping to section separators.
//
// A Watcher built on fsnotify observes the configuration file and
// notifies callbacks on change, which the server uses to hot-reload the
// log level.
package confloader
