// Package notifications forwards Play Beat events to ntfy.
//
// The ntfy implementation posts to the topic URL configured in config.toml
// and degrades to a no-op when no topic is set. Callers depend only on the
// Service interface.
package notifications
