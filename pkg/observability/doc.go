/*
Package observability provides Prometheus instrumentation for flow assembly.

Metrics are registered on a dedicated registry so several assemblers (and
tests) can coexist in one process; expose them with Metrics.Handler.
*/
package observability
