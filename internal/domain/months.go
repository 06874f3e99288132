package domain

import "time"

// MonthsBetween returns the whole-month offset from start to t using
// calendar month difference (year*12 + month). Day-of-month is ignored, so a
// payment on the 1st and one on the 28th of the same month land in the same
// bucket, and long-lived loans do not drift the way an average-month-length
// division would.
func MonthsBetween(start, t time.Time) int {
	return (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
}
