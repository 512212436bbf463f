// Package rating implements the five-star control attached to catalog items.
//
// A Widget shows exactly one of two values: the persisted rating, or a hover
// preview while one is active. Only Click (or its keyboard equivalent)
// persists.
package rating
