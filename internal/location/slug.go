package location

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// PathSegment lowercases s and replaces every whitespace run with a single
// hyphen. Punctuation and non-ASCII letters are kept as they are.
func PathSegment(s string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(s), "-")
}

// CitySlug builds "{state}/{city}" where state is the full state name.
func CitySlug(city, state string) string {
	return PathSegment(ToFullName(state)) + "/" + PathSegment(city)
}

// NeighborhoodSlug builds "{state}/{city}/{neighborhood}".
func NeighborhoodSlug(city, state, neighborhood string) string {
	return CitySlug(city, state) + "/" + PathSegment(neighborhood)
}

// NormalizeSlug prepares a slug taken from a request path for comparison.
func NormalizeSlug(slug string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(slug)), "/")
}

// JoinSlug assembles a slug from request path segments.
func JoinSlug(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = NormalizeSlug(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "/")
}

// CityPath is the absolute URL path of a city hub page.
func CityPath(city, state string) string {
	return "/" + CitySlug(city, state)
}

// NeighborhoodPath is the absolute URL path of a neighborhood hub page.
func NeighborhoodPath(city, state, neighborhood string) string {
	return "/" + NeighborhoodSlug(city, state, neighborhood)
}

// ServicePath nests a service page under a location path. An empty
// location path yields the global service page.
func ServicePath(locationPath, serviceSlug string) string {
	return strings.TrimRight(locationPath, "/") + "/services/" + serviceSlug
}
