package cms

import "strings"

// Cache tags attached to CMS responses.
const (
	TagAll          = "cms"
	TagContact      = "contact"
	TagServices     = "services"
	TagThemeOptions = "theme-options"
	TagAbout        = "about"
	TagPosts        = "posts"
)

// PostTag scopes a single post.
func PostTag(slug string) string {
	return "post:" + slug
}

// TagsForContent maps a webhook content type to the tags it invalidates.
// Unknown types drop everything.
func TagsForContent(contentType, contentID string) []string {
	contentID = strings.TrimSpace(contentID)
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "contact", "contact_info", "location", "locations":
		return []string{TagContact}
	case "service", "services":
		return []string{TagServices}
	case "theme", "theme_options", "options":
		return []string{TagThemeOptions}
	case "about", "about_us":
		return []string{TagAbout}
	case "post", "posts":
		if contentID != "" {
			return []string{TagPosts, PostTag(contentID)}
		}
		return []string{TagPosts}
	default:
		return []string{TagAll}
	}
}
