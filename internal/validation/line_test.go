package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kolanot/catalog-service/internal/domain"
)

func validCatalogue() *domain.Catalogue {
	return &domain.Catalogue{ID: "C1", UUID: "u-1", ProviderID: "P1"}
}

func validLine() *domain.CatalogueLine {
	return &domain.CatalogueLine{
		ID:                  "L1",
		ManufacturerItemID:  "L1",
		ManufacturerPartyID: "P1",
		Name:                "Cordless Drill",
		Classifications:     []domain.Classification{{Name: "Tools"}},
	}
}

func TestValidateAcceptsValidLine(t *testing.T) {
	msgs := NewLineValidator(validCatalogue(), validLine()).Validate()
	assert.Empty(t, msgs)
}

func TestValidateMissingID(t *testing.T) {
	line := validLine()
	line.ID = ""
	line.ManufacturerItemID = ""

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0], "no id set")
}

func TestValidateFallsBackToManufacturerItemID(t *testing.T) {
	line := validLine()
	line.ID = ""
	line.Name = ""

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "no name set")
	assert.Contains(t, msgs[0], "L1")
}

func TestValidateMissingManufacturerPartyID(t *testing.T) {
	line := validLine()
	line.ManufacturerPartyID = ""

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	// Both the missing party id and the provider mismatch are reported.
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "no manufacturer party id set")
}

func TestValidateLineIDMismatch(t *testing.T) {
	line := validLine()
	line.ManufacturerItemID = "OTHER"

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "do not match")
}

func TestValidateMismatchSkippedWhenItemIDEmpty(t *testing.T) {
	line := validLine()
	line.ManufacturerItemID = ""

	msgs := NewLineValidator(validCatalogue(), line).Validate()
	assert.Empty(t, msgs)
}

func TestValidateMissingClassification(t *testing.T) {
	line := validLine()
	line.Classifications = nil

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "no commodity classification")
}

func TestValidatePartyMismatch(t *testing.T) {
	line := validLine()
	line.ManufacturerPartyID = "P2"

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "provider party and manufacturer party ids do not match")
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	line := &domain.CatalogueLine{}

	msgs := NewLineValidator(validCatalogue(), line).Validate()

	// id, manufacturer party id, name, classification, party match.
	assert.Len(t, msgs, 5)
}
