package model

import (
	"strconv"
	"time"
)

// Date is a day in yyyymmdd form, e.g. 20230415.
// Values are not checked against the calendar; 20231399 is a valid Date.
type Date int

// DateFromTime returns the yyyymmdd form of t in t's location.
func DateFromTime(t time.Time) Date {
	return Date(t.Year()*10000 + int(t.Month())*100 + t.Day())
}

// Month returns the yyyymm key by dropping the day digits.
func (d Date) Month() int {
	return int(d) / 100
}

// Year returns the yyyy key by dropping the month and day digits.
func (d Date) Year() int {
	return int(d) / 10000
}

func (d Date) String() string {
	return strconv.Itoa(int(d))
}
