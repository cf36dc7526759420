package template

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/location"
)

// SectionBuilder produces one section of a page. ok=false drops the section
// when the page has no data for it.
type SectionBuilder func(m *Manifest, data PageData) (Section, bool)

var titleCase = cases.Title(language.English)

// DisplayState returns the human form of a state, e.g. "CA" -> "California".
func DisplayState(state string) string {
	return titleCase.String(location.ToFullName(state))
}

// ContactFor returns the location whose phone, email and hours a page
// shows: the page's own contact location, else the main physical one.
func ContactFor(data PageData) *entity.ContactLocation {
	if data.ContactLocation != nil {
		return data.ContactLocation
	}
	return data.MainLocation
}

// pageAddress is the address a page is about, if any.
func pageAddress(data PageData) (entity.Address, bool) {
	switch {
	case data.SEOLocation != nil:
		return data.SEOLocation.Address, true
	case data.ContactLocation != nil:
		return data.ContactLocation.Address, true
	}
	return entity.Address{}, false
}

// locationPath is the URL of the location a page is scoped to, or "".
func locationPath(data PageData) string {
	addr, ok := pageAddress(data)
	if !ok {
		return ""
	}
	if data.SEOLocation != nil && addr.HasNeighborhood() &&
		(data.Kind == PageNeighborhood || data.Kind == PageNeighborhoodService) {
		return location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood)
	}
	return location.CityPath(addr.City, addr.State)
}

func placeholders(data PageData) *strings.Replacer {
	vals := map[string]string{}
	if data.Theme != nil {
		vals["{site}"] = data.Theme.SiteName
		vals["{tagline}"] = data.Theme.Tagline
	}
	if addr, ok := pageAddress(data); ok {
		vals["{city}"] = addr.City
		vals["{state}"] = DisplayState(addr.State)
		vals["{state_code}"] = strings.ToUpper(location.ToAbbreviation(location.ToFullName(addr.State)))
		vals["{neighborhood}"] = strings.TrimSpace(addr.Neighborhood)
	}
	if data.Service != nil {
		vals["{service}"] = data.Service.Title
		vals["{service_description}"] = data.Service.Description
	}
	if data.Post != nil {
		vals["{post}"] = stripTags(data.Post.Title)
		vals["{post_excerpt}"] = stripTags(data.Post.Excerpt)
	}
	if data.Posts != nil && data.Posts.Page > 1 {
		vals["{page}"] = "Page " + strconv.Itoa(data.Posts.Page)
	}
	if data.About != nil {
		vals["{about}"] = data.About.PageInfo.Description
	}
	if data.Contact != nil {
		vals["{contact}"] = data.Contact.PageInfo.Description
	}

	keys := []string{"{site}", "{tagline}", "{city}", "{state}", "{state_code}", "{neighborhood}",
		"{service}", "{service_description}", "{post}", "{post_excerpt}", "{page}", "{about}", "{contact}"}
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, vals[k])
	}
	return strings.NewReplacer(pairs...)
}

func pageImage(data PageData) string {
	switch {
	case data.Post != nil && data.Post.FeaturedImage != nil:
		return data.Post.FeaturedImage.URL
	case data.Service != nil && data.Service.FeaturedImage != nil:
		return data.Service.FeaturedImage.URL
	case data.Theme != nil && data.Theme.Logo != nil:
		return data.Theme.Logo.URL
	}
	return ""
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
