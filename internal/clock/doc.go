// Package clock formats the live date and time widget.
package clock
