package widget

import (
	"errors"
	"fmt"
)

// ErrInvalidExpiration is returned for expiration values outside the supported set.
var ErrInvalidExpiration = errors.New("invalid expiration option")

// Expiration is the retention policy label sent along with an upload.
// Enforcement happens on the server.
type Expiration string

const (
	ExpirationNever     Expiration = "never"
	ExpirationOneDay    Expiration = "1d"
	ExpirationSevenDays Expiration = "7d"
	ExpirationOneMonth  Expiration = "1m"
)

// DefaultExpiration ...
const DefaultExpiration = ExpirationNever

var expirations = []Expiration{ExpirationNever, ExpirationOneDay, ExpirationSevenDays, ExpirationOneMonth}

var expirationLabels = map[Expiration]string{
	ExpirationNever:     "Never",
	ExpirationOneDay:    "1 Day",
	ExpirationSevenDays: "7 Days",
	ExpirationOneMonth:  "1 Month",
}

// Expirations lists the supported options in display order.
func Expirations() []Expiration {
	return append([]Expiration(nil), expirations...)
}

// ParseExpiration ...
func ParseExpiration(s string) (Expiration, error) {
	e := Expiration(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q (allowed: never, 1d, 7d, 1m)", ErrInvalidExpiration, s)
	}
	return e, nil
}

// Valid ...
func (e Expiration) Valid() bool {
	_, ok := expirationLabels[e]
	return ok
}

// Label ...
func (e Expiration) Label() string {
	return expirationLabels[e]
}

// Next returns the following option, wrapping around.
func (e Expiration) Next() Expiration {
	return expirations[(e.index()+1)%len(expirations)]
}

// Prev returns the preceding option, wrapping around.
func (e Expiration) Prev() Expiration {
	return expirations[(e.index()+len(expirations)-1)%len(expirations)]
}

func (e Expiration) index() int {
	for i, o := range expirations {
		if o == e {
			return i
		}
	}
	return 0
}
