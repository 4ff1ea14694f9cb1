// Package sanitisers provides implementations of the Sanitiser
// interface for schema languages that need vendor-only syntax removed
// before they can be vendored. Each sanitiser knows the extension
// syntax of one schema language.
package sanitisers
