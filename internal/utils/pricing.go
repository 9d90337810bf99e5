package utils

import (
	"fmt"
	"time"

	"roomdesk-backend/internal/domain"
)

// PricingSettings holds nightly rates in cents. The double rate covers the
// first two adults.
type PricingSettings struct {
	DoubleRateCents  int32
	ThirdAdultCents  int32
	FourthAdultCents int32
	ChildCents       int32
}

// TouristTaxRates are per person per night, in cents.
type TouristTaxRates struct {
	// HighSeasonCents applies to stays starting May to December.
	HighSeasonCents int32
	// LowSeasonCents applies to stays starting January to April.
	LowSeasonCents int32
}

// StayQuote is the price breakdown shown on the booking form
type StayQuote struct {
	Nights          int   `json:"nights"`
	NightlyCents    int32 `json:"nightly_cents"`
	PriceCents      int32 `json:"price_cents"`
	TouristTaxCents int32 `json:"tourist_tax_cents"`
	TotalCents      int32 `json:"total_cents"`
}

func DefaultPricingSettings() PricingSettings {
	return PricingSettings{DoubleRateCents: 4500, ThirdAdultCents: 1500, FourthAdultCents: 1500, ChildCents: 0}
}

func DefaultTouristTaxRates() TouristTaxRates {
	return TouristTaxRates{HighSeasonCents: 200, LowSeasonCents: 150}
}

// NightsBetween counts the nights of a stay. Check-out must follow check-in.
func NightsBetween(checkIn, checkOut time.Time) (int, error) {
	nights := domain.DaysBetween(checkIn, checkOut)
	if nights < 1 {
		return 0, fmt.Errorf("check-out %s must be after check-in %s",
			checkOut.Format(domain.DateLayout), checkIn.Format(domain.DateLayout))
	}
	return nights, nil
}

// NightlyRate prices one night for a party. Children are charged the child
// rate; adults past the fourth pay the fourth adult rate.
func NightlyRate(guests, children int32, settings PricingSettings) int32 {
	if children > guests {
		children = guests
	}
	if children < 0 {
		children = 0
	}
	adults := guests - children

	total := settings.DoubleRateCents
	if adults >= 3 {
		total += settings.ThirdAdultCents
	}
	if adults >= 4 {
		total += (adults - 3) * settings.FourthAdultCents
	}
	total += children * settings.ChildCents
	return total
}

// CalculateStayPrice returns the accommodation price for the whole stay.
// Stays sold through booking.com are settled by the portal and priced 0.
func CalculateStayPrice(guests, children int32, nights int, source domain.BookingSource, settings PricingSettings) int32 {
	if source == domain.BookingSourceBookingCom || guests < 1 || nights < 1 {
		return 0
	}
	return NightlyRate(guests, children, settings) * int32(nights)
}

// TouristTaxRate picks the season rate from the check-in month.
func TouristTaxRate(checkIn time.Time, rates TouristTaxRates) int32 {
	if checkIn.Month() >= time.May {
		return rates.HighSeasonCents
	}
	return rates.LowSeasonCents
}

// CalculateTouristTax charges every non-exempt guest for every night. The
// season is decided by the check-in month for the whole stay.
func CalculateTouristTax(guests int32, checkIn, checkOut time.Time, exemptions []domain.GuestExemption, rates TouristTaxRates) (int32, error) {
	nights, err := NightsBetween(checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	exempt := domain.ExemptIndexes(exemptions)
	rate := TouristTaxRate(checkIn, rates)

	var total int32
	for i := int32(0); i < guests; i++ {
		if exempt[i] {
			continue
		}
		total += rate * int32(nights)
	}
	return total, nil
}

// QuoteStay combines price and tourist tax. Children are the guests exempt
// as minors.
func QuoteStay(guests int32, checkIn, checkOut time.Time, source domain.BookingSource, exemptions []domain.GuestExemption, settings PricingSettings, rates TouristTaxRates) (StayQuote, error) {
	nights, err := NightsBetween(checkIn, checkOut)
	if err != nil {
		return StayQuote{}, err
	}
	tax, err := CalculateTouristTax(guests, checkIn, checkOut, exemptions, rates)
	if err != nil {
		return StayQuote{}, err
	}
	children := CountChildren(guests, exemptions)
	price := CalculateStayPrice(guests, children, nights, source, settings)
	var nightly int32
	if source != domain.BookingSourceBookingCom {
		nightly = NightlyRate(guests, children, settings)
	}
	return StayQuote{
		Nights:          nights,
		NightlyCents:    nightly,
		PriceCents:      price,
		TouristTaxCents: tax,
		TotalCents:      price + tax,
	}, nil
}

// CountChildren counts minors among the first guests of a party.
func CountChildren(guests int32, exemptions []domain.GuestExemption) int32 {
	var n int32
	for _, e := range exemptions {
		if e.Kind == domain.ExemptionMinor && e.GuestIndex >= 0 && e.GuestIndex < guests {
			n++
		}
	}
	return n
}
