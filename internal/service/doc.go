// Package service owns the live topology and coordinates the poll cycle.
//
// TopologyService turns each snapshot delivered by an adapter into a graph,
// folds it into the live GraphState and publishes the result. The whole
// build, reconcile and publish sequence runs under one lock, so HTTP readers
// and SSE subscribers only ever see a fully reconciled graph. Readers get
// deep copies.
//
// # Event System
//
// Changes are published on an EventBus and fanned out to browsers over
// Server-Sent Events: topology_initialized after the first successful poll,
// topology_changed when a reconcile mutates the graph, controllers_updated
// when the controller status list changes and position_updated when a
// renderer pins or moves a node.
package service
