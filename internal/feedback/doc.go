// Package feedback acknowledges user actions with an audible tone and a
// visual bump on the affected page region. Cue failures are never reported.
package feedback
