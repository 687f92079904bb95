package booking

import (
	"errors"

	"github.com/google/uuid"

	"doorsteps/internal/domain"
)

var ErrNoPriceSelected = errors.New("a price item must be selected before confirming")

// PriceSelection is the chosen service price card.
type PriceSelection struct {
	ServiceID       int64
	ProfessionalID  int64
	UnitPrice       float64
	DiscountedPrice float64
}

// Composer accumulates a booking form into a single BookingDetails
// before one confirm call. It is plain form state, not a cached
// store. The total computed here is for display; the backend
// recomputes and is authoritative.
type Composer struct {
	id        string
	selection *PriceSelection
	quantity  int
	date      string
	timeslot  string
	address   string
	notes     string
}

func NewComposer() *Composer {
	return &Composer{id: uuid.NewString(), quantity: 1}
}

func (c *Composer) ID() string { return c.id }

func (c *Composer) SelectPrice(sel PriceSelection) *Composer {
	c.selection = &sel
	return c
}

// SetQuantity clamps to a minimum of one.
func (c *Composer) SetQuantity(q int) *Composer {
	if q < 1 {
		q = 1
	}
	c.quantity = q
	return c
}

func (c *Composer) SetSchedule(date, timeslot string) *Composer {
	c.date = date
	c.timeslot = timeslot
	return c
}

func (c *Composer) SetAddress(address string) *Composer {
	c.address = address
	return c
}

func (c *Composer) SetNotes(notes string) *Composer {
	c.notes = notes
	return c
}

// Total is the display price: discounted unit price times quantity.
func (c *Composer) Total() float64 {
	if c.selection == nil {
		return 0
	}
	return c.selection.DiscountedPrice * float64(c.quantity)
}

// Confirm assembles the accumulated fields. Only a missing price
// selection blocks confirmation; everything else is the backend's
// call to accept or reject.
func (c *Composer) Confirm() (*domain.BookingDetails, error) {
	if c.selection == nil {
		return nil, ErrNoPriceSelected
	}
	return &domain.BookingDetails{
		ProfessionalServiceID: c.selection.ServiceID,
		ProfessionalID:        c.selection.ProfessionalID,
		Quantity:              c.quantity,
		ScheduledDate:         c.date,
		ScheduledTime:         c.timeslot,
		Address:               c.address,
		Notes:                 c.notes,
		UnitPrice:             c.selection.UnitPrice,
		DiscountedPrice:       c.selection.DiscountedPrice,
		TotalPrice:            c.Total(),
	}, nil
}
