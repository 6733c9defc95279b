// Package adapter implements snapshot sources for sdntopo.
//
// An adapter produces complete controller snapshots (switches, links,
// mastership registry and optionally controller liveness). The Registry
// owns adapter lifecycle, runs one polling loop per polling adapter and
// hands every successful snapshot to a ReconcileFunc.
//
// # Adapters
//
// ONOSAdapter polls the ONOS REST API, fetching all endpoints of a cycle
// concurrently. FileAdapter replays a YAML fixture, for demos and offline
// rendering.
//
// # Cycles
//
// Each sync runs under a deadline equal to the adapter's poll interval.
// Cycles of one adapter never overlap: ticks that arrive during a slow
// cycle are dropped, and manual triggers wait for the running cycle. A
// failed cycle is logged and skipped; the live graph is left as it was.
package adapter
