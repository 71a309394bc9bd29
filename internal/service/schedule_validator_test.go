package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleValidator_NormalizeDate(t *testing.T) {
	v := NewScheduleValidator()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already padded", input: "2024-05-01", expected: "2024-05-01"},
		{name: "unpadded month and day", input: "2024-5-1", expected: "2024-05-01"},
		{name: "unpadded day only", input: "2024-12-3", expected: "2024-12-03"},
		{name: "surrounding whitespace", input: " 2024-5-1 ", expected: "2024-05-01"},
		{name: "month out of range passes through", input: "2024-13-01", expected: "2024-13-01"},
		{name: "day out of range passes through", input: "2024-01-32", expected: "2024-01-32"},
		{name: "non-numeric passes through", input: "next tuesday", expected: "next tuesday"},
		{name: "empty passes through", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.NormalizeDate(tt.input))
		})
	}
}

func TestScheduleValidator_NormalizeTime(t *testing.T) {
	v := NewScheduleValidator()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "already padded", input: "09:30", expected: "09:30"},
		{name: "unpadded hour", input: "9:30", expected: "09:30"},
		{name: "unpadded both", input: "9:5", expected: "09:05"},
		{name: "midnight", input: "0:0", expected: "00:00"},
		{name: "hour out of range passes through", input: "24:00", expected: "24:00"},
		{name: "minute out of range passes through", input: "10:61", expected: "10:61"},
		{name: "non-numeric passes through", input: "noonish", expected: "noonish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, v.NormalizeTime(tt.input))
		})
	}
}
