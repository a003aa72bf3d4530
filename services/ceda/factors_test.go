package ceda

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCanonical(t *testing.T) {
	factor, err := Lookup("United States", "Air transportation")
	require.NoError(t, err)
	assert.Equal(t, "United States", factor.Country)
	assert.Equal(t, "Air transportation", factor.Category)
	assert.Greater(t, factor.Factor, 0.0)
}

func TestLookupCaseInsensitive(t *testing.T) {
	canonical, err := Lookup("United States", "Air transportation")
	require.NoError(t, err)

	mixed, err := Lookup("united states", "AIR TRANSPORTATION")
	require.NoError(t, err)

	assert.Equal(t, canonical, mixed)
	// Canonical casing comes back regardless of the input casing
	assert.Equal(t, "United States", mixed.Country)
	assert.Equal(t, "Air transportation", mixed.Category)
}

func TestLookupTrimsWhitespace(t *testing.T) {
	canonical, err := Lookup("United States", "Air transportation")
	require.NoError(t, err)

	padded, err := Lookup("  United States ", " Air transportation ")
	require.NoError(t, err)
	assert.Equal(t, canonical, padded)
}

func TestLookupMiss(t *testing.T) {
	_, err := Lookup("Atlantis", "Air transportation")
	assert.ErrorIs(t, err, ErrNoEmissionFactor)

	_, err = Lookup("United States", "Dragon ranching")
	assert.ErrorIs(t, err, ErrNoEmissionFactor)
}

func TestCategories(t *testing.T) {
	categories := Categories()
	assert.NotEmpty(t, categories)
	assert.Contains(t, categories, "Air transportation")
}
