// Package stats keeps a local history of benchmark runs. Each run is
// appended as one NDJSON line and the history can be summarized overall or
// per day.
package stats
