package main

import (
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KillerxG/RPG-YGO-Delta/internal/app"
	"github.com/KillerxG/RPG-YGO-Delta/internal/domain"
)

func TestCardRows(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	rows := cardRows([]domain.DrawnCard{
		{Card: domain.Card{ID: "7", Path: "sr/7.jpg"}, Tier: domain.TierSuperRare, Position: 1, Bonus: true},
		{Card: domain.Card{ID: "marca", Path: "backgrounds/marca.jpg"}, Tier: domain.TierMarker, Position: 2},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "7", "Super Rare (bonus)", "sr/7.jpg"}, rows[1])
	assert.Equal(t, []string{"2", "marca", "", "backgrounds/marca.jpg"}, rows[2])
}

func TestListingRows(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	rows := listingRows([]app.Listing{
		{Name: "RPG_Series_1", HasCover: true, Cover: domain.Card{Path: "capa/RPG_Series_1.jpg"}},
		{Name: "RPG_Series_2"},
	})

	assert.Equal(t, []string{"RPG_Series_1", "capa/RPG_Series_1.jpg"}, rows[1])
	assert.Equal(t, []string{"RPG_Series_2", "none"}, rows[2])
}

func TestPtermLevel(t *testing.T) {
	assert.Equal(t, pterm.LogLevelDebug, ptermLevel(-4))
	assert.Equal(t, pterm.LogLevelInfo, ptermLevel(0))
	assert.Equal(t, pterm.LogLevelWarn, ptermLevel(4))
	assert.Equal(t, pterm.LogLevelError, ptermLevel(8))
}
