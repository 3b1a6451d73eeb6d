package model

import "fmt"

// MaxSlots is the number of atomic weekly slots a Mask can address
const MaxSlots = 64

// SlotIndexer gives a unique mask bit to a (day, period) pair and vice versa
type SlotIndexer interface {
	// Returns the bit index of the period within the day
	Index(day, period uint64) uint64
	// Returns the day and period encoded by a bit index
	Attributes(index uint64) (day, period uint64)
	// Returns a mask with only the bit of (day, period) set
	Slot(day, period uint64) Mask
	// Returns every (day, period) pair occupied by the mask in ascending bit order
	Occupied(mask Mask) [][2]uint64
	// Returns a human readable rendering of the mask such as "Mon#0 Wed#3"
	Describe(mask Mask) string
}

// NewSlotIndexer builds an indexer over a week of days with periods slots each.
// The week must fit into a Mask.
func NewSlotIndexer(days, periods uint64) (SlotIndexer, error) {
	if days == 0 || periods == 0 {
		return nil, fmt.Errorf("a week needs at least one day and one period: days=%v, periods=%v", days, periods)
	} else if days*periods > MaxSlots {
		return nil, fmt.Errorf("a week of %v days with %v periods needs %v slots, but a mask holds %v", days, periods, days*periods, MaxSlots)
	}
	return &slotIndexerImplementation{
		days:    days,
		periods: periods,
	}, nil
}
