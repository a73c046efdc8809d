// Package validation implements the field-presence checks applied to
// catalogue lines before they are persisted. Checks accumulate messages
// rather than failing fast, so a caller sees every problem at once.
package validation

import (
	"fmt"

	"github.com/Kolanot/catalog-service/internal/domain"
)

// LineValidator validates a catalogue line against its owning catalogue.
type LineValidator struct {
	catalogue *domain.Catalogue
	line      *domain.CatalogueLine

	// effectiveID is the line id used in messages: the line's own id, or
	// its manufacturer item id when the line id is empty.
	effectiveID string
	messages    []string
}

// NewLineValidator creates a validator for one line of the given catalogue.
func NewLineValidator(catalogue *domain.Catalogue, line *domain.CatalogueLine) *LineValidator {
	return &LineValidator{catalogue: catalogue, line: line}
}

// Validate runs all checks in order and returns the accumulated messages.
// An empty result means the line is valid.
func (v *LineValidator) Validate() []string {
	v.effectiveID = v.line.ID
	if v.effectiveID == "" {
		v.effectiveID = v.line.ManufacturerItemID
	}

	v.idExists()
	v.manufacturerPartyIDExists()
	v.lineIDMatchesItemID()
	v.nameExists()
	v.classificationExists()
	v.partyIDsMatch()

	return v.messages
}

func (v *LineValidator) addf(format string, args ...any) {
	v.messages = append(v.messages, fmt.Sprintf(format, args...))
}

func (v *LineValidator) idExists() {
	if v.effectiveID == "" {
		v.addf("no id set for catalogue line")
	}
}

func (v *LineValidator) manufacturerPartyIDExists() {
	if v.line.ManufacturerPartyID == "" {
		v.addf("no manufacturer party id set for catalogue line: %s", v.effectiveID)
	}
}

func (v *LineValidator) lineIDMatchesItemID() {
	if v.line.ID == "" || v.line.ManufacturerItemID == "" {
		return
	}
	if v.line.ID != v.line.ManufacturerItemID {
		v.addf("catalogue line id and manufacturer item id do not match. line id: %s, manufacturer item id: %s",
			v.effectiveID, v.line.ManufacturerItemID)
	}
}

func (v *LineValidator) nameExists() {
	if v.line.Name == "" {
		v.addf("no name set for catalogue line. id: %s", v.effectiveID)
	}
}

func (v *LineValidator) classificationExists() {
	if len(v.line.Classifications) == 0 {
		v.addf("no commodity classification is set for catalogue line. id: %s", v.effectiveID)
	}
}

func (v *LineValidator) partyIDsMatch() {
	if v.catalogue.ProviderID != v.line.ManufacturerPartyID {
		v.addf("catalogue provider party and manufacturer party ids do not match for catalogue line. id: %s, provider party id: %s, manufacturer party id: %s",
			v.effectiveID, v.catalogue.ProviderID, v.line.ManufacturerPartyID)
	}
}
