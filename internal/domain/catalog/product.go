package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Variant is a sellable SKU of a product (one size/color combination)
type Variant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SKU       string
	Size      string
	Color     string
	Price     decimal.Decimal
	Stock     int
	UpdatedAt time.Time
}

// Product is the local catalog entry that marketplace syncs read and write.
// Catalog CRUD lives elsewhere; this aggregate only carries what sync needs.
type Product struct {
	shared.BaseAggregateRoot
	Name      string
	Slug      string
	BasePrice decimal.Decimal
	IsActive  bool
	Variants  []Variant
}

// VariantUpdate is the marketplace view of a single SKU.
// Nil fields are left untouched.
type VariantUpdate struct {
	SKU   string
	Price *decimal.Decimal
	Stock *int
}

// VariantChange records one field that differs between local and remote.
type VariantChange struct {
	SKU   string `json:"sku"`
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// NewProduct creates an active product
func NewProduct(name, slug string, basePrice decimal.Decimal) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		BasePrice:         basePrice,
		IsActive:          true,
	}, nil
}

// AddVariant appends a SKU to the product
func (p *Product) AddVariant(sku, size, color string, price decimal.Decimal, stock int) (*Variant, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if p.VariantBySKU(sku) != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "SKU already exists on this product")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Variants = append(p.Variants, Variant{
		ID:        uuid.New(),
		ProductID: p.ID,
		SKU:       sku,
		Size:      size,
		Color:     color,
		Price:     price,
		Stock:     stock,
		UpdatedAt: time.Now(),
	})
	return &p.Variants[len(p.Variants)-1], nil
}

// VariantBySKU returns the variant with the given SKU, or nil
func (p *Product) VariantBySKU(sku string) *Variant {
	for i := range p.Variants {
		if strings.EqualFold(p.Variants[i].SKU, sku) {
			return &p.Variants[i]
		}
	}
	return nil
}

// SKUs returns every variant SKU
func (p *Product) SKUs() []string {
	skus := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		skus = append(skus, v.SKU)
	}
	return skus
}

// TotalStock sums stock across variants
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// Diff lists what Apply would change. It never mutates the product.
// Updates for SKUs the product does not have are ignored.
func (p *Product) Diff(updates []VariantUpdate) []VariantChange {
	var changes []VariantChange
	for _, u := range updates {
		v := p.VariantBySKU(u.SKU)
		if v == nil {
			continue
		}
		if u.Stock != nil && *u.Stock != v.Stock {
			changes = append(changes, VariantChange{
				SKU: v.SKU, Field: "stock",
				From: strconv.Itoa(v.Stock), To: strconv.Itoa(*u.Stock),
			})
		}
		if u.Price != nil && !u.Price.Equal(v.Price) {
			changes = append(changes, VariantChange{
				SKU: v.SKU, Field: "price",
				From: v.Price.String(), To: u.Price.String(),
			})
		}
	}
	return changes
}

// Apply overwrites variant stock and price from updates and returns the changes made.
// Negative remote stock is clamped to zero.
func (p *Product) Apply(updates []VariantUpdate) []VariantChange {
	changes := p.Diff(updates)
	if len(changes) == 0 {
		return nil
	}
	now := time.Now()
	for _, u := range updates {
		v := p.VariantBySKU(u.SKU)
		if v == nil {
			continue
		}
		if u.Stock != nil {
			v.Stock = max(*u.Stock, 0)
		}
		if u.Price != nil {
			v.Price = *u.Price
		}
		v.UpdatedAt = now
	}
	p.recalculateBasePrice()
	p.Touch(now)
	return changes
}

// recalculateBasePrice keeps BasePrice at the cheapest variant price
func (p *Product) recalculateBasePrice() {
	if len(p.Variants) == 0 {
		return
	}
	lowest := p.Variants[0].Price
	for _, v := range p.Variants[1:] {
		if v.Price.LessThan(lowest) {
			lowest = v.Price
		}
	}
	p.BasePrice = lowest
}
