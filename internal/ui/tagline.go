package ui

import (
	"math/rand"
	"time"
)

const defaultTagline = "Hex, RGB and HSL in one place"

var taglines = []string{
	defaultTagline,
	"Every shade from a single hex",
	"Lightness, shifted in steps of twenty",
	"#FFF is just #FFFFFF in a hurry",
	"Round-trips you can count on",
	"Six digits, three bytes, one color",
}

// Date-specific taglines, keyed by month and day
var holidayTaglines = []taglineRule{
	{month: 12, day: 25, tagline: "hsl(0, 100%, 50%) and hsl(120, 100%, 25%) season"},
	{month: 10, day: 31, tagline: "#FF7518 all day"},
	{month: 1, day: 1, tagline: "A fresh palette for the new year"},
}

type taglineRule struct {
	month   int
	day     int
	tagline string
}

// PickTagline returns a random tagline, or a date-specific one on holidays
func PickTagline(now time.Time) string {
	for _, rule := range holidayTaglines {
		if rule.month == int(now.Month()) && rule.day == now.Day() {
			return rule.tagline
		}
	}

	r := rand.New(rand.NewSource(now.UnixNano()))
	return taglines[r.Intn(len(taglines))]
}

// FormatTagline styles a tagline when the terminal supports color
func FormatTagline(tagline string) string {
	if !IsRich() {
		return tagline
	}
	return Accent(tagline)
}
