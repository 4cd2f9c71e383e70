package models

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ReservedUsername can never be claimed: it collides with the /users/me route.
const ReservedUsername = "me"

const (
	maxUsernameLen = 150
	maxSlugLen     = 50
	minScore       = 1
	maxScore       = 10
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// ValidateUsername checks the username charset, length and the reserved value.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username must not be empty")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must be at most %d characters", maxUsernameLen)
	}
	if username == ReservedUsername {
		return fmt.Errorf("username %q is reserved", ReservedUsername)
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits and . @ + - _")
	}
	return nil
}

// ValidateSlug checks the slug charset and length.
func ValidateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug must not be empty")
	}
	if len(slug) > maxSlugLen {
		return fmt.Errorf("slug must be at most %d characters", maxSlugLen)
	}
	if !slugRe.MatchString(slug) {
		return errors.New("slug may only contain letters, digits, hyphens and underscores")
	}
	return nil
}

// ValidateYear rejects years in the future. The current year is read per
// call, not cached, so the boundary moves at new year without a restart.
func ValidateYear(year int) error {
	if current := time.Now().Year(); year > current {
		return fmt.Errorf("year %d cannot be greater than the current year %d", year, current)
	}
	return nil
}

// ValidateScore checks the review score bounds.
func ValidateScore(score int) error {
	if score < minScore || score > maxScore {
		return fmt.Errorf("score must be between %d and %d", minScore, maxScore)
	}
	return nil
}
