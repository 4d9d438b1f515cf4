package parser

import "fmt"

// Positional label tables keyed by seats-after-button offset. Which table
// applies depends on table size: heads-up has no small blind seat label
// distinct from the button, short-handed tables skip the early positions.
var (
	headsUpLabels = map[int]string{
		0: "BTN",
		1: "BB",
	}
	sixMaxLabels = map[int]string{
		0: "BTN",
		1: "SB",
		2: "BB",
		3: "UTG",
		4: "MP",
		5: "CO",
	}
	fullRingLabels = map[int]string{
		0: "BTN",
		1: "SB",
		2: "BB",
		3: "UTG",
		4: "UTG+1",
		5: "MP",
		6: "LJ",
		7: "HJ",
		8: "CO",
	}
)

// PositionLabel computes the canonical positional label for a hero seat
// given the button seat and table size. Unmapped offsets fall back to a
// generic SEAT{n} label rather than failing.
func PositionLabel(heroSeat, buttonSeat, tableSize int) string {
	if tableSize <= 0 || heroSeat <= 0 || buttonSeat <= 0 {
		return ""
	}

	offset := ((heroSeat - buttonSeat) % tableSize + tableSize) % tableSize

	var labels map[int]string
	switch {
	case tableSize == 2:
		labels = headsUpLabels
	case tableSize <= 6:
		labels = sixMaxLabels
	default:
		labels = fullRingLabels
	}

	if label, ok := labels[offset]; ok {
		return label
	}
	return fmt.Sprintf("SEAT%d", offset)
}
