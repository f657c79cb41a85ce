package auth

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is used when a phone number has no country prefix.
const defaultPhoneRegion = "SN"

// NormalizePhone validates a phone number and returns it in E.164 form.
// Numbers without a country prefix are interpreted as Senegalese.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("phone is required")
	}

	parsed, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil {
		return "", fmt.Errorf("phone is not a valid number")
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("phone is not a valid number")
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
