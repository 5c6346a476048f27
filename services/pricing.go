package services

import (
	"math"
)

// GST brackets are selected by the nightly rate, not by the subtotal.
const (
	gstLowerBound = 1000.0
	gstUpperBound = 7500.0

	gstRateMid  = 0.12
	gstRateHigh = 0.18
)

// AddonSelection is one chosen add-on with its pricing flags resolved.
type AddonSelection struct {
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	PerDay      bool    `json:"perDay"`
	PerPerson   bool    `json:"perPerson"`
	PersonCount int     `json:"personCount,omitempty"`
}

type GuestCounts struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

func (g GuestCounts) Total() int {
	total := g.Adults + g.Children
	if total < 1 {
		return 1
	}
	return total
}

// Quote is the full price breakdown shown to the guest before checkout.
type Quote struct {
	Nights         int     `json:"nights"`
	RoomBaseAmount float64 `json:"roomBaseAmount"`
	AddonsTotal    float64 `json:"addonsTotal"`
	Subtotal       float64 `json:"subtotal"`
	GSTRate        float64 `json:"gstRate"`
	CGST           float64 `json:"cgst"`
	SGST           float64 `json:"sgst"`
	TotalGST       float64 `json:"totalGst"`
	BookingTotal   float64 `json:"bookingTotal"`
}

// SafeNights floors the stay length at one night so a same-day or inverted
// date pair never produces a zero-priced stay.
func SafeNights(nights int) int {
	if nights < 1 {
		return 1
	}
	return nights
}

// GSTRateFor picks the tax bracket from the nightly rate:
// below 1000 no GST, 1000-7500 inclusive 12%, above 7500 18%.
func GSTRateFor(nightlyRate float64) float64 {
	switch {
	case nightlyRate < gstLowerBound:
		return 0
	case nightlyRate <= gstUpperBound:
		return gstRateMid
	default:
		return gstRateHigh
	}
}

// AddonAmount computes one add-on line: per-day lines recur every night,
// per-person lines multiply by the person count bounded to [1, totalGuests].
func AddonAmount(sel AddonSelection, safeNights int, totalGuests int) float64 {
	price := sel.Price
	if price < 0 {
		price = 0
	}
	qty := sel.Quantity
	if qty < 1 {
		qty = 1
	}

	amount := price * float64(qty)
	if sel.PerDay {
		amount *= float64(safeNights)
	}
	if sel.PerPerson {
		persons := sel.PersonCount
		if persons < 1 {
			persons = 1
		}
		if totalGuests >= 1 && persons > totalGuests {
			persons = totalGuests
		}
		amount *= float64(persons)
	}
	return amount
}

// ComputeQuote is a pure function of its inputs. TotalGST is rounded first
// and each half rounded independently; for odd totals CGST+SGST may differ
// from TotalGST by one unit, which matches the figures shown downstream.
func ComputeQuote(nightlyRate float64, nights int, addons []AddonSelection, guests GuestCounts) Quote {
	safeNights := SafeNights(nights)
	if nightlyRate < 0 {
		nightlyRate = 0
	}

	roomBase := nightlyRate * float64(safeNights)

	addonsTotal := 0.0
	for _, sel := range addons {
		addonsTotal += AddonAmount(sel, safeNights, guests.Total())
	}

	subtotal := roomBase + addonsTotal
	rate := GSTRateFor(nightlyRate)
	totalGST := math.Round(subtotal * rate)
	half := math.Round(totalGST / 2)

	return Quote{
		Nights:         safeNights,
		RoomBaseAmount: roomBase,
		AddonsTotal:    addonsTotal,
		Subtotal:       subtotal,
		GSTRate:        rate,
		CGST:           half,
		SGST:           half,
		TotalGST:       totalGST,
		BookingTotal:   subtotal + totalGST,
	}
}
