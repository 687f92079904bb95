package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_RequiresPriceSelection(t *testing.T) {
	c := NewComposer().
		SetQuantity(2).
		SetSchedule("2026-09-01", "10:00").
		SetAddress("Baneshwor, Kathmandu")

	_, err := c.Confirm()
	assert.ErrorIs(t, err, ErrNoPriceSelected)
}

func TestTotal_IsDiscountedPriceTimesQuantity(t *testing.T) {
	c := NewComposer().
		SelectPrice(PriceSelection{ServiceID: 1, ProfessionalID: 2, UnitPrice: 1500, DiscountedPrice: 1200}).
		SetQuantity(3)

	assert.Equal(t, 3600.0, c.Total())
}

func TestQuantity_ClampsToOne(t *testing.T) {
	c := NewComposer().
		SelectPrice(PriceSelection{ServiceID: 1, DiscountedPrice: 500}).
		SetQuantity(0)

	assert.Equal(t, 500.0, c.Total())
}

func TestConfirm_AssemblesAllFields(t *testing.T) {
	details, err := NewComposer().
		SelectPrice(PriceSelection{ServiceID: 9, ProfessionalID: 4, UnitPrice: 1000, DiscountedPrice: 800}).
		SetQuantity(2).
		SetSchedule("2026-09-01", "14:00").
		SetAddress("Patan").
		SetNotes("ring the bell").
		Confirm()
	require.NoError(t, err)

	assert.Equal(t, int64(9), details.ProfessionalServiceID)
	assert.Equal(t, int64(4), details.ProfessionalID)
	assert.Equal(t, 2, details.Quantity)
	assert.Equal(t, "2026-09-01", details.ScheduledDate)
	assert.Equal(t, "14:00", details.ScheduledTime)
	assert.Equal(t, "Patan", details.Address)
	assert.Equal(t, "ring the bell", details.Notes)
	assert.Equal(t, 1600.0, details.TotalPrice)
}

func TestComposersGetDistinctIDs(t *testing.T) {
	assert.NotEqual(t, NewComposer().ID(), NewComposer().ID())
}
