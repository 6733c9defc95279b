// Package reconcile keeps a live topology graph converged with successive
// snapshots while preserving the node objects that persist between them.
//
// The live graph is owned by a GraphState. Its first snapshot is taken
// wholesale by Initialize; every later snapshot goes through Reconcile,
// which adds and removes only what differs and rewrites group and link type
// attributes in place. Renderer-owned node state (position, pinning) is never
// touched by reconciliation.
//
// Nodes are matched by name and links by their ordered endpoint names.
// Link indices are local to the graph that holds them: snapshot indices are
// only ever dereferenced against the snapshot's own node list, and live
// indices are recomputed from endpoint names after every reconcile.
//
// GraphState is not safe for concurrent use; the owner serializes access.
package reconcile
