package site

import "strings"

// Greeting returns the welcome line for name.
func Greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Welcome to Play Beat!"
	}
	return "Hello, " + name + "! 👋 Welcome to Play Beat."
}
