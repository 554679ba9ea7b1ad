package srfax

import (
	"regexp"
	"strings"
)

// e164Pattern accepts a leading plus followed by 7 to 15 digits.
var e164Pattern = regexp.MustCompile(`^\+\d{7,15}$`)

const (
	nanpPrefix      = "+1"
	intlDialPrefix  = "011"
	numberSeparator = "|"
)

// normalizeDialable validates destinations as E.164 and rewrites each into
// the dialable form the service expects: NANP numbers keep their country
// code and lose only the plus, all other numbers are dialed with the 011
// international prefix. Input order is preserved.
func normalizeDialable(numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, configErr("no destination fax numbers given")
	}
	out := make([]string, len(numbers))
	for i, number := range numbers {
		if !e164Pattern.MatchString(number) {
			return nil, validationErr("invalid fax number, expected E.164 format: %q", number)
		}
		if strings.HasPrefix(number, nanpPrefix) {
			out[i] = number[1:]
		} else {
			out[i] = intlDialPrefix + number[1:]
		}
	}
	return out, nil
}
