// Package store persists Play Beat state as JSON values in a key-value table.
//
// A Backend holds raw bytes; the SQLite backend is the durable default and
// the memory backend serves tests and throwaway sessions. KV layers JSON
// encoding on top and implements the load-with-default contract: absent keys,
// JSON null, undecodable payloads, and backend read failures all yield the
// caller's default so every page stays renderable.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package store
