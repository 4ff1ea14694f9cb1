// Package file provides the TOML-backed configuration store.
// A missing file yields the built-in defaults, which reproduce the
// etcd schema vendoring set.
package file
