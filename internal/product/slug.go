package product

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

// Slugify builds a URL slug from a product name, prefixed with the first
// segment of the seller id so two sellers can list a product with the same
// name.
func Slugify(name, sellerID string) string {
	prefix := strings.Split(sellerID, "-")[0]

	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonAlnumRegex.ReplaceAllString(slug, "-")
	slug = multiDashRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	return prefix + "-" + slug
}
