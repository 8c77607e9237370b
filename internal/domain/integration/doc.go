// Package integration contains the marketplace integration bounded context.
// It covers the Ginee marketplace today, behind a provider-neutral port.
//
// Key concepts:
//   - MarketplaceGateway: port to the external marketplace (push/pull products, stock, orders)
//   - SyncLog: append-only record of one synchronization attempt
//   - MarketplaceLink: per-product external id plus the badge projection
//   - Lease: time-bounded guard that keeps sync-all runs from overlapping
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
