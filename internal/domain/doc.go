// Package domain defines the core types of the sdntopo topology viewer.
//
// # Snapshots
//
// Snapshot is one momentary read of the controller cluster: the switch list,
// the link list, the switch-to-controller registry and, optionally, the list
// of controllers that are currently up. Snapshots are produced by adapters
// and never mutated afterwards.
//
// # Graphs
//
// Graph is the normalized form of a snapshot. Nodes are identified by switch
// name (DPID) and links by the ordered pair of their endpoint names. Links
// also carry positional indices into the node list of the graph that owns
// them; those indices are only meaningful inside that graph.
//
// Node carries renderer-owned state (X, Y, Fixed) next to the attributes
// derived from the controller registry. Reconciliation preserves the node
// object, and with it that state, for as long as the switch stays present.
//
// # Controller status
//
// ControllerStatus reports whether each known controller is up, in display
// order.
package domain
