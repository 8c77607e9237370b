// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
// - base.go: shared aggregate columns (AggregateModel)
// - order.go: orders and their line items
// - catalog.go: products and variants
// - integration.go: marketplace links, sync logs and leases
package models
