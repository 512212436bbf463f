// Package catalog holds the compiled-in track list and the pure filters that
// run over it.
package catalog
