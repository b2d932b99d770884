// Package storage provides user persistence for WireHTTP.
//
// Two implementations of service.UserRepository are available:
//
//   - BadgerStore: durable storage on Badger v3, used by the server
//   - MemoryStore: in-memory map, used for tests and ephemeral runs
package storage
