package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Clinic struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"not null" json:"name"`
	Subdomain    string `gorm:"uniqueIndex;not null" json:"subdomain"`
	ContactEmail string `json:"contact_email"`
	Status       string `gorm:"default:'active'" json:"status"`

	Site *SiteRecord `gorm:"foreignKey:ClinicID" json:"site,omitempty"`
}

// SiteRecord holds one clinic's microsite: the working draft document, its
// monotonically increasing revision, and the frozen copy serving the public
// site. The document itself is opaque jsonb; the server never edits inside it.
type SiteRecord struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ClinicID uint   `gorm:"uniqueIndex;not null" json:"clinic_id"`
	Clinic   Clinic `gorm:"foreignKey:ClinicID" json:"-"`

	Revision int64        `gorm:"not null;default:1" json:"revision"`
	Document SiteDocument `gorm:"type:jsonb" json:"document"`

	PublishedDocument SiteDocument `gorm:"type:jsonb" json:"published_document,omitempty"`
	PublishedRevision int64        `json:"published_revision"`
	PublishedAt       *time.Time   `gorm:"index" json:"published_at,omitempty"`
}

// SiteDocument is a raw JSON site document stored as jsonb.
type SiteDocument json.RawMessage

func (d SiteDocument) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return []byte(d), nil
}

func (d *SiteDocument) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		*d = append(SiteDocument(nil), v...)
	case string:
		*d = SiteDocument(v)
	default:
		return errors.New("failed to scan SiteDocument")
	}
	return nil
}

func (d SiteDocument) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *SiteDocument) UnmarshalJSON(data []byte) error {
	if d == nil {
		return errors.New("SiteDocument: UnmarshalJSON on nil pointer")
	}
	*d = append((*d)[0:0], data...)
	return nil
}

type CreateClinicRequest struct {
	Name         string `json:"name" binding:"required"`
	Subdomain    string `json:"subdomain" binding:"required,slug"`
	ContactEmail string `json:"contact_email"`
}

// SaveSiteRequest carries a full draft document with the revision the client
// last saw. A mismatched revision is rejected with a conflict.
type SaveSiteRequest struct {
	Revision int64           `json:"revision"`
	Document json.RawMessage `json:"document" binding:"required"`
}

type SiteResponse struct {
	ClinicID    uint            `json:"clinic_id"`
	Revision    int64           `json:"revision"`
	Document    json.RawMessage `json:"document"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
}

type PublishResponse struct {
	ClinicID    uint       `json:"clinic_id"`
	Revision    int64      `json:"revision"`
	PublishedAt *time.Time `json:"published_at"`
}
