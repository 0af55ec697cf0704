// Package model holds the in-memory representation of one side of a
// semantic-model comparison: tables with their columns, measures, hierarchies
// and partitions, plus relationships, perspectives, cultures, roles and
// provider connections.
//
// Cross-entity references are resolved through name-scoped lookups on the
// owning Model (table name, then child name), never cached as direct
// pointers. "Does this referent still exist" is therefore always a cheap
// lookup, and structural edits cannot leave dangling references behind.
//
// A Model is built from an external store's current state, mutated in place
// by the synchronizer and validator, and finally serialized to a single
// create-or-replace apply script.
package model
