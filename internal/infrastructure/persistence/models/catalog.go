package models

import (
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name      string                `gorm:"type:varchar(255);not null"`
	Slug      string                `gorm:"type:varchar(255);uniqueIndex"`
	BasePrice decimal.Decimal       `gorm:"type:decimal(14,2);not null;default:0"`
	IsActive  bool                  `gorm:"not null;default:true;index"`
	Variants  []ProductVariantModel `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		BasePrice:         m.BasePrice,
		IsActive:          m.IsActive,
		Variants:          make([]catalog.Variant, len(m.Variants)),
	}
	for i := range m.Variants {
		p.Variants[i] = m.Variants[i].ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Slug = p.Slug
	m.BasePrice = p.BasePrice
	m.IsActive = p.IsActive
	m.Variants = make([]ProductVariantModel, len(p.Variants))
	for i, v := range p.Variants {
		m.Variants[i].FromDomain(p.ID, v)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductVariantModel is the persistence model for a product variant.
type ProductVariantModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU       string          `gorm:"column:sku;type:varchar(100);not null;uniqueIndex"`
	Size      string          `gorm:"type:varchar(20)"`
	Color     string          `gorm:"type:varchar(50)"`
	Price     decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Stock     int             `gorm:"not null;default:0"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain Variant.
func (m *ProductVariantModel) ToDomain() catalog.Variant {
	return catalog.Variant{
		ID:        m.ID,
		ProductID: m.ProductID,
		SKU:       m.SKU,
		Size:      m.Size,
		Color:     m.Color,
		Price:     m.Price,
		Stock:     m.Stock,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Variant.
func (m *ProductVariantModel) FromDomain(productID uuid.UUID, v catalog.Variant) {
	m.ID = v.ID
	m.ProductID = productID
	m.SKU = v.SKU
	m.Size = v.Size
	m.Color = v.Color
	m.Price = v.Price
	m.Stock = v.Stock
	m.UpdatedAt = v.UpdatedAt
}
