// Package id generates identifiers for entries created by nasdeck.
//
// Folder ids are random UUIDs with a short type prefix so that they never
// collide with resource ids reported by a provider, which are usually
// container or share names.
package id
