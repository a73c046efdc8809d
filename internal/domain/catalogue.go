package domain

import (
	"time"
)

// Catalogue is the aggregate root owning a set of catalogue lines. A
// catalogue is identified externally by its UUID and scoped to the party
// that provides it.
type Catalogue struct {
	InternalID int64     `json:"-"`
	ID         string    `json:"id"`
	UUID       string    `json:"uuid"`
	ProviderID string    `json:"provider_id"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CatalogueLine is a single sellable entry in a catalogue. The internal
// numeric id is a storage concern and never leaves the service; callers
// address lines by the manufacturer-scoped line ID.
type CatalogueLine struct {
	InternalID          int64  `json:"-"`
	ID                  string `json:"id"`
	CatalogueUUID       string `json:"catalogue_uuid"`
	ManufacturerItemID  string `json:"manufacturer_item_id"`
	ManufacturerPartyID string `json:"manufacturer_party_id"`
	Name                string `json:"name"`

	// PriceAmount is the numeric price in minor units. A nil amount means
	// the line has no price set.
	PriceAmount *int64 `json:"price_amount"`
	Currency    string `json:"currency,omitempty"`

	Classifications []Classification `json:"classifications"`
	Texts           []LocalizedText  `json:"texts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Classification assigns a line to a category of a classification scheme.
type Classification struct {
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// LocalizedText is a translated text value attached to a line field, such
// as its name or description.
type LocalizedText struct {
	LanguageID string `json:"language_id"`
	Field      string `json:"field"`
	Value      string `json:"value"`
}

// CataloguePage is the result of a catalogue line query. TotalSize and
// CategoryNames always describe the whole catalogue regardless of any
// filters applied to Lines. CatalogueUUID is nil when the catalogue does
// not exist.
type CataloguePage struct {
	TotalSize     int64           `json:"total_size"`
	CatalogueUUID *string         `json:"catalogue_uuid"`
	CategoryNames []string        `json:"category_names"`
	Lines         []CatalogueLine `json:"lines"`
}

// EmptyPage is returned when the requested catalogue does not exist for
// the given party.
func EmptyPage() CataloguePage {
	return CataloguePage{
		TotalSize:     0,
		CatalogueUUID: nil,
		CategoryNames: []string{},
		Lines:         []CatalogueLine{},
	}
}
