package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ScheduleValidator normalizes appointment date/time strings.
//
// Listings order on the stored strings, so "2024-5-1" would sort after
// "2024-05-02". Normalization zero-pads anything that looks like a numeric
// date or time; everything else passes through untouched and keeps plain
// string ordering.
type ScheduleValidator struct{}

// NewScheduleValidator creates a new schedule validator.
func NewScheduleValidator() *ScheduleValidator {
	return &ScheduleValidator{}
}

var (
	dateShape = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	timeShape = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})$`)
)

// NormalizeDate zero-pads a numeric YYYY-M-D date to YYYY-MM-DD.
// Out-of-range or non-numeric input is returned unchanged.
func (v *ScheduleValidator) NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	m := dateShape.FindStringSubmatch(date)
	if m == nil {
		return date
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return date
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// NormalizeTime zero-pads a numeric H:M time to HH:MM.
// Out-of-range or non-numeric input is returned unchanged.
func (v *ScheduleValidator) NormalizeTime(t string) string {
	t = strings.TrimSpace(t)
	m := timeShape.FindStringSubmatch(t)
	if m == nil {
		return t
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return t
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
