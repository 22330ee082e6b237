package app

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"hotel_booking/internal/domain"
)

var (
	slugStrip = regexp.MustCompile(`[^a-z0-9_\s-]`)
	slugDash  = regexp.MustCompile(`[-\s]+`)
)

// Slugify folds s to lowercase ASCII words joined by single hyphens.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}
	out := slugStrip.ReplaceAllString(strings.ToLower(folded), "")
	out = slugDash.ReplaceAllString(strings.TrimSpace(out), "-")
	return strings.Trim(out, "-_")
}

// uniqueSlug appends -1, -2, ... to the slug of name until no other hotel uses it.
func uniqueSlug(ctx context.Context, repo domain.HotelRepository, name string, exceptID int64) (string, error) {
	base := Slugify(name)
	if base == "" {
		base = "hotel"
	}
	slug := base
	for counter := 1; ; counter++ {
		taken, err := repo.SlugTaken(ctx, slug, exceptID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}
