package models

import (
	"encoding/json"
	"time"

	"github.com/SneakersFlash/SneakersFlash2.0-Admin/internal/domain/integration"
	"github.com/google/uuid"
)

// MarketplaceLinkModel is the persistence model for a product's marketplace link.
// It doubles as the sync badge projection.
type MarketplaceLinkModel struct {
	ProductID         uuid.UUID                  `gorm:"type:uuid;primary_key"`
	ExternalProductID *string                    `gorm:"type:varchar(100);uniqueIndex"`
	SyncStatus        integration.LinkSyncStatus `gorm:"type:varchar(20)"`
	LastSyncedAt      *time.Time
	LastError         *string   `gorm:"type:text"`
	Version           int       `gorm:"not null;default:1"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MarketplaceLinkModel) TableName() string {
	return "marketplace_links"
}

// ToDomain converts the persistence model to a domain MarketplaceLink.
func (m *MarketplaceLinkModel) ToDomain() *integration.MarketplaceLink {
	return &integration.MarketplaceLink{
		ProductID:         m.ProductID,
		ExternalProductID: m.ExternalProductID,
		SyncStatus:        m.SyncStatus,
		LastSyncedAt:      m.LastSyncedAt,
		LastError:         m.LastError,
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain MarketplaceLink.
func (m *MarketplaceLinkModel) FromDomain(l *integration.MarketplaceLink) {
	m.ProductID = l.ProductID
	m.ExternalProductID = l.ExternalProductID
	m.SyncStatus = l.SyncStatus
	m.LastSyncedAt = l.LastSyncedAt
	m.LastError = l.LastError
	m.Version = l.Version
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// SyncLogModel is the persistence model for a sync log entry.
// Payload and response are stored as JSON text.
type SyncLogModel struct {
	ID               int64                     `gorm:"primaryKey;autoIncrement"`
	Type             integration.SyncLogType   `gorm:"type:varchar(20);not null;index"`
	Status           integration.SyncLogStatus `gorm:"type:varchar(20);not null;index"`
	ErrorMessage     *string                   `gorm:"type:text"`
	PayloadSent      *string                   `gorm:"type:text"`
	ResponseReceived *string                   `gorm:"type:text"`
	CreatedAt        time.Time                 `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SyncLogModel) TableName() string {
	return "ginee_sync_logs"
}

// ToDomain converts the persistence model to a domain SyncLog.
func (m *SyncLogModel) ToDomain() *integration.SyncLog {
	return &integration.SyncLog{
		ID:               m.ID,
		Type:             m.Type,
		Status:           m.Status,
		ErrorMessage:     m.ErrorMessage,
		PayloadSent:      rawOrNil(m.PayloadSent),
		ResponseReceived: rawOrNil(m.ResponseReceived),
		CreatedAt:        m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain SyncLog.
func (m *SyncLogModel) FromDomain(l *integration.SyncLog) {
	m.ID = l.ID
	m.Type = l.Type
	m.Status = l.Status
	m.ErrorMessage = l.ErrorMessage
	m.PayloadSent = textOrNil(l.PayloadSent)
	m.ResponseReceived = textOrNil(l.ResponseReceived)
	m.CreatedAt = l.CreatedAt
}

// SyncLeaseModel is a named lease row. Expired rows are reclaimed on acquire.
type SyncLeaseModel struct {
	Name       string    `gorm:"type:varchar(100);primary_key"`
	Holder     string    `gorm:"type:varchar(100);not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	AcquiredAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SyncLeaseModel) TableName() string {
	return "sync_leases"
}

// ToDomain converts the persistence model to a domain Lease.
func (m *SyncLeaseModel) ToDomain() *integration.Lease {
	return &integration.Lease{
		Name:      m.Name,
		Holder:    m.Holder,
		ExpiresAt: m.ExpiresAt,
	}
}

func rawOrNil(s *string) json.RawMessage {
	if s == nil || *s == "" {
		return nil
	}
	return json.RawMessage(*s)
}

func textOrNil(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	s := string(raw)
	return &s
}
