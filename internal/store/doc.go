// Package store is the plain text-file store behind the settings engine.
//
// It provides the small collaborator surface the engine needs (exists,
// read-all, write-all, ensure-directory) plus secure deletion for wiping
// settings that contained secrets.
//
// Writes are plain, non-atomic writes: a crash mid-write can leave a
// truncated file. The engine documents this; there is no cross-process
// coordination.
package store
