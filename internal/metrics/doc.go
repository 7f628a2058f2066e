// Package metrics defines the Recorder used by the Ticketmaster client and
// the tracker, with a no-op implementation and a Prometheus-backed one.
//
// The Prometheus recorder owns its own registry. A one-shot run can export
// it to a node_exporter textfile with WriteTextfile.
package metrics
