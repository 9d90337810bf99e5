// Package export renders confirmed stays for the municipal tourist tax portal.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"roomdesk-backend/internal/domain"
)

const (
	// notAvailable fills guest registry fields the system does not collect.
	notAvailable = "N/D"
	italianDate  = "02/01/2006"
)

var payTouristHeader = []string{
	"ID Scheda",
	"Tipo Arrivo",
	"Data Arrivo",
	"Notti",
	"Camere",
	"Tassa Soggiorno",
	"Cognome Nome Intestatario",
	"Sesso",
	"Data Nascita",
	"Luogo Nascita",
	"Nazionalita",
	"Luogo Residenza",
	"Tipo Documento",
	"Numero Documento",
	"Luogo Rilascio Documento",
	"Altri Ospiti",
}

// WritePayTourist writes one semicolon separated row per confirmed booking.
// Other bookings are skipped.
func WritePayTourist(w io.Writer, bookings []domain.Booking) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(payTouristHeader); err != nil {
		return err
	}
	for i := range bookings {
		b := &bookings[i]
		if b.Status != domain.BookingStatusConfirmed {
			continue
		}
		if err := cw.Write(payTouristRow(b)); err != nil {
			return fmt.Errorf("booking %s: %w", b.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func payTouristRow(b *domain.Booking) []string {
	rooms := make([]string, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		rooms = append(rooms, fmt.Sprintf("Camera %d", r.RoomID))
	}
	others := b.TotalGuests() - 1
	if others < 0 {
		others = 0
	}
	return []string{
		b.ID,
		string(b.Source),
		b.CheckIn.Format(italianDate),
		strconv.Itoa(b.Nights()),
		strings.Join(rooms, ", "),
		FormatEuro(b.TouristTaxCents),
		b.GuestName,
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
		notAvailable,
		strconv.Itoa(int(others)),
	}
}

// FormatEuro renders cents with a decimal comma, e.g. 1250 -> "12,50".
func FormatEuro(cents int32) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d", sign, cents/100, cents%100)
}
