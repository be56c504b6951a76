package util

import (
	"errors"
	"strings"
	"time"
)

// post dates arrive as display strings, day first
var postDateLayouts = []string{
	"02.01.2006",
	"2.1.2006",
	"2006-01-02",
	"02/01/2006",
	time.RFC3339,
}

// ParsePostDate parses a scraper display date
func ParsePostDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, &ParseError{Kind: "date", Input: s, Err: errors.New("empty")}
	}
	for _, layout := range postDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ParseError{Kind: "date", Input: s}
}

// DayOfWeek lowercase English weekday of a display date, e.g. "01.06.2025" -> "sunday"
func DayOfWeek(date string) (string, error) {
	t, err := ParsePostDate(date)
	if err != nil {
		return "", err
	}
	return strings.ToLower(t.Weekday().String()), nil
}
