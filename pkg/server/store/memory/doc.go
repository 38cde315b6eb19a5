// Package memory provides in-process implementations of the store
// interfaces defined in the parent store package.
//
// Records live only for the lifetime of the process. Each store guards its
// state with its own lock and hands out copies, so callers never share
// memory with the store.
package memory
