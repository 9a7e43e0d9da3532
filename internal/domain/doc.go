// Package domain contains shared domain types used across entity sub-packages.
// Entity types live in sub-packages (domain/task, domain/user, domain/product).
// This root package holds the sentinel errors and the validation error type
// shared by storage adapters and the HTTP boundary.
package domain
