package booking

// Pricing lives in exactly one place.  The booking preview, the enriched
// reservation listings and the monthly revenue metric all call SlotPrice so
// the numbers can never drift apart.

// nightStartMin is the minute of day from which the night surcharge
// applies (18:00).
const nightStartMin = 18 * 60

// nightSurcharge multiplies the hourly price when any part of the slot
// falls at or after 18:00.
const nightSurcharge = 1.2

// DurationHours returns the length of [start, end) in fractional hours.
// Invalid or inverted inputs yield 0.
func DurationHours(start, end string) float64 {
	cs, ce, err := slotRange(start, end)
	if err != nil {
		return 0
	}
	return float64(ce-cs) / 60.0
}

// SlotPrice computes the total price of a slot: duration in fractional
// hours times the hourly price, with a 20% surcharge when any part of the
// slot is at or after 18:00.  Invalid slots price at 0.
func SlotPrice(start, end string, pricePerHour float64) float64 {
	cs, ce, err := slotRange(start, end)
	if err != nil {
		return 0
	}
	price := float64(ce-cs) / 60.0 * pricePerHour
	if ce > nightStartMin {
		price *= nightSurcharge
	}
	return price
}
