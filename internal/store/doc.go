// Package store is the durable key-value port behind the notebook. Values
// are opaque byte strings keyed by name. Backends: memory, file (one JSON
// file per key), sqlite and redis.
package store
