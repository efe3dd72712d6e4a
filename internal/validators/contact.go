package validators

import "regexp"

var telephoneRe = regexp.MustCompile(`^[0-9]{9,15}$`)

func IsTelephoneValid(tel string) bool {
	return telephoneRe.MatchString(tel)
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsTimeOfDayValid checks HH:MM opening/closing times.
func IsTimeOfDayValid(t string) bool {
	return timeOfDayRe.MatchString(t)
}
