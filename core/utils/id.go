package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"

	"go-booking-api/core/constants"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateBookingReference returns the human-facing reference code printed
// on confirmation mail. Uppercase only so it survives being read aloud.
func GenerateBookingReference() string {
	ref, err := gonanoid.Generate("0123456789ABCDEFGHJKMNPQRSTUVWXYZ", constants.BookingReferenceLength)
	if err != nil {
		return ""
	}
	return ref
}
