package intake

import (
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// DeriveAge computes whole years between dob and today using the
// has-the-birthday-occurred-this-year rule: the year difference, minus one
// when today's (month, day) precedes the birthday's (month, day).
func DeriveAge(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// RecomputeAge updates the profile's age from its date of birth. The derived
// value is applied only when it falls strictly inside (0, 120); out-of-range
// derivations leave the existing age untouched. A missing or unparseable DOB
// is a no-op.
//
// Callers invoke this whenever the DOB field changes; the age field is never
// edited independently while a DOB is present.
func RecomputeAge(p *ClientProfile, today time.Time) {
	if p.DateOfBirth == "" {
		return
	}
	dob, err := time.Parse(dateLayout, p.DateOfBirth)
	if err != nil {
		return
	}
	age := DeriveAge(dob, today)
	if age <= 0 || age >= 120 {
		return
	}
	p.Age = strconv.Itoa(age)
}
