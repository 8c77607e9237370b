package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField maps an API sort key onto a column from the whitelist.
// Returns defaultColumn if the key is empty or not allowed.
func ValidateSortField(sortField string, allowedFields map[string]string, defaultColumn string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultColumn
	}
	if column, ok := allowedFields[trimmed]; ok {
		return column
	}
	return defaultColumn
}

// OrderSortFields maps the admin order list sort keys to columns
var OrderSortFields = map[string]string{
	"createdAt":   "created_at",
	"total":       "total",
	"orderNumber": "order_number",
	"status":      "status",
	"created_at":  "created_at",
}

// SyncLogSortFields maps sync log sort keys to columns
var SyncLogSortFields = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"id":         "id",
}

// ProductSortFields maps product sort keys to columns
var ProductSortFields = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"name":       "name",
}

// likePattern builds a case-insensitive LIKE pattern. LOWER(...) LIKE works on
// both postgres and sqlite.
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
