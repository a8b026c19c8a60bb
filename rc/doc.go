// Package rc implements shared and weak reference-counted handles over a
// control block.
//
// A Shared handle owns one unit of the block's shared count and a Weak handle
// one unit of its weak count. When the shared count reaches zero the managed
// object is torn down, and when both counts are zero the block's storage is
// returned to its allocator. Each happens exactly once.
//
// Go copies structs bitwise, so handles must be duplicated with Clone and
// dropped with Release. Assigning a handle with = aliases it without
// counting.
//
// Counts are plain integers. Handles that share a block must not be used from
// more than one goroutine without external synchronization.
//
// Ownership cycles are never collected: an object that holds a Shared handle
// to itself, directly or through other objects, stays alive forever. Use Weak
// handles for back references.
package rc
