package models

import "time"

// MaxAge is the oldest implied age an account birthday may yield.
const MaxAge = 120

// DateOf truncates t to midnight UTC of its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AgeOn returns the number of full years between birthday and now.
// A birthday in the future yields a negative age.
func AgeOn(birthday, now time.Time) int {
	b := DateOf(birthday)
	n := DateOf(now)

	age := n.Year() - b.Year()
	if b.AddDate(age, 0, 0).After(n) {
		age--
	}
	return age
}

// BirthdayThreshold returns the latest birthday whose holder is at least
// age years old on now. When now is Feb 29 and the target year is not a
// leap year the result is clamped to Feb 28 instead of rolling into March.
func BirthdayThreshold(age int, now time.Time) time.Time {
	d := DateOf(now)
	th := d.AddDate(-age, 0, 0)
	if th.Day() != d.Day() {
		th = th.AddDate(0, 0, -th.Day())
	}
	return th
}
