// Package deps reports whether the external binaries Play Beat shells out to
// can be found.
package deps
