/*
Package observability exposes Prometheus collectors for the submission flow
and the verdict service.

Collectors are registered on an injected prometheus.Registerer so tests and
embedders can keep them off the global registry.
*/
package observability
