// Package config defines the typed configuration for keyline-server.
//
// Configuration is loaded by internal/infra/confloader with the
// precedence Env > File > Default. Defaults live in default.go and
// validation in verify.go.
package config
