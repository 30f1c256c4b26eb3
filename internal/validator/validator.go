// Package validator holds the pure predicates that check free-text
// arguments before they enter a conversation session. Every function
// is total: bad input yields ok=false, never a panic or error.
package validator

import (
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a day.month token (e.g. "23.04") and normalizes it
// to its next occurrence relative to now: this year if the date has
// not passed yet, otherwise next year. ok is false unless the token
// denotes a real calendar date.
func ParseDate(token string, now time.Time) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(token), ".")
	if len(parts) != 2 {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, false
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, now.Location())

	// time.Date normalizes overflow (31.04 becomes 01.05); reject
	// tokens that do not survive the round trip.
	if date.Day() != day || date.Month() != time.Month(month) {
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		date = time.Date(now.Year()+1, time.Month(month), day, 0, 0, 0, 0, now.Location())
		if date.Day() != day {
			// 29.02 in a year without a leap day
			return time.Time{}, false
		}
	}

	return date, true
}

// ParseFriendArgs parses "<name> <rating>". ok is false unless exactly
// two tokens are present and the second is a rating.
func ParseFriendArgs(text string) (string, float64, bool) {
	tokens := strings.Fields(text)
	if len(tokens) != 2 {
		return "", 0, false
	}

	rating, ok := parseRating(tokens[1])
	if !ok {
		return "", 0, false
	}

	return tokens[0], rating, true
}

// ParseDivisionArgs parses "<teamCount> <playersPerTeam>". ok is false
// unless both tokens are positive integers. Whether the request is
// satisfiable against the roster is the roster service's call.
func ParseDivisionArgs(text string) (int, int, bool) {
	tokens := strings.Fields(text)
	if len(tokens) != 2 {
		return 0, 0, false
	}

	teamCount, err := strconv.Atoi(tokens[0])
	if err != nil || teamCount <= 0 {
		return 0, 0, false
	}

	perTeam, err := strconv.Atoi(tokens[1])
	if err != nil || perTeam <= 0 {
		return 0, 0, false
	}

	return teamCount, perTeam, true
}

// ParseRatingArgs parses "<position> <rating>" where position is a
// 1-based roster position.
func ParseRatingArgs(text string) (int, float64, bool) {
	tokens := strings.Fields(text)
	if len(tokens) != 2 {
		return 0, 0, false
	}

	position, err := strconv.Atoi(tokens[0])
	if err != nil || position <= 0 {
		return 0, 0, false
	}

	rating, ok := parseRating(tokens[1])
	if !ok {
		return 0, 0, false
	}

	return position, rating, true
}

func parseRating(token string) (float64, bool) {
	rating, err := strconv.ParseFloat(token, 64)
	if err != nil || rating < 0 {
		return 0, false
	}
	return rating, true
}
