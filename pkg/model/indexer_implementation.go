package model

import (
	"fmt"
	"math/bits"
	"strings"
)

var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type slotIndexerImplementation struct {
	days    uint64
	periods uint64
}

func (indexer *slotIndexerImplementation) Index(day, period uint64) uint64 {
	return period + indexer.periods*day
}

func (indexer *slotIndexerImplementation) Attributes(index uint64) (day, period uint64) {
	period = index % indexer.periods
	day = index / indexer.periods
	return day, period
}

func (indexer *slotIndexerImplementation) Slot(day, period uint64) Mask {
	return Mask(1) << indexer.Index(day, period)
}

func (indexer *slotIndexerImplementation) Occupied(mask Mask) [][2]uint64 {
	occupied := make([][2]uint64, 0, mask.Slots())
	for rest := uint64(mask); rest != 0; rest &= rest - 1 {
		day, period := indexer.Attributes(uint64(bits.TrailingZeros64(rest)))
		occupied = append(occupied, [2]uint64{day, period})
	}
	return occupied
}

func (indexer *slotIndexerImplementation) Describe(mask Mask) string {
	var builder strings.Builder
	for i, slot := range indexer.Occupied(mask) {
		if i > 0 {
			builder.WriteByte(' ')
		}
		day, period := slot[0], slot[1]
		// Bits past the configured week are still shown, just without a day name
		if day < uint64(len(dayNames)) && day < indexer.days {
			fmt.Fprintf(&builder, "%v#%v", dayNames[day], period)
		} else {
			fmt.Fprintf(&builder, "D%v#%v", day, period)
		}
	}
	return builder.String()
}
