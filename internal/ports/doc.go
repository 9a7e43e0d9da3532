// Package ports defines interfaces between layers in the hexagonal architecture.
// The storage port is implemented by the durable slot adapters and consumed by
// the persistence layer. The store ports are implemented by the domain stores
// in internal/app and consumed by the HTTP handlers. The health ports are
// implemented by components that can report their own health and consumed by
// the readiness endpoint.
package ports
