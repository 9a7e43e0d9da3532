// Package app holds the domain stores (tasks, users, products) and the Stores
// bundle that builds them at startup and hydrates them exactly once.
//
// Every action follows the same rule: it derives a new state from the current
// one and never writes into a slice it did not allocate, so snapshots handed
// out by State stay valid forever.
package app
