// Package schema builds schema.org JSON-LD blocks for pages.
package schema

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/location"
	tpl "github.com/octobees/sitegen/internal/template"
)

// Document is a single JSON-LD object.
type Document map[string]any

// Safe runs build and turns an error or panic into a logged omission.
func Safe(name string, build func() (Document, error)) (doc Document) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("schema: %s panicked: %v", name, r)
			doc = nil
		}
	}()
	doc, err := build()
	if err != nil {
		log.Printf("schema: %s omitted: %v", name, err)
		return nil
	}
	return doc
}

// ForPage returns every JSON-LD block that applies to the page. Blocks
// that fail to build are left out.
func ForPage(data tpl.PageData, businessType string) []Document {
	var docs []Document
	add := func(name string, build func() (Document, error)) {
		if doc := Safe(name, build); doc != nil {
			docs = append(docs, doc)
		}
	}

	switch data.Kind {
	case tpl.PageHome, tpl.PageContact, tpl.PageLocation, tpl.PageCity, tpl.PageNeighborhood:
		add("local_business", func() (Document, error) { return LocalBusiness(data, businessType) })
	case tpl.PageService, tpl.PageCityService, tpl.PageNeighborhoodService:
		add("service", func() (Document, error) { return Service(data, businessType) })
	case tpl.PagePost:
		add("article", func() (Document, error) { return Article(data) })
	}
	if data.Kind != tpl.PageHome {
		add("breadcrumbs", func() (Document, error) { return BreadcrumbList(data) })
	}
	return docs
}

// LocalBusiness describes the business at the page's location. Contact
// details come from the page's contact location or the main physical one.
func LocalBusiness(data tpl.PageData, businessType string) (Document, error) {
	if data.Theme == nil || data.Theme.SiteName == "" {
		return nil, fmt.Errorf("site name is not configured")
	}
	if businessType == "" {
		businessType = "LocalBusiness"
	}
	doc := Document{
		"@context": "https://schema.org",
		"@type":    businessType,
		"name":     data.Theme.SiteName,
		"url":      data.SiteURL + data.Path,
	}
	if data.Theme.Logo != nil {
		doc["image"] = data.Theme.Logo.URL
	}

	contact := tpl.ContactFor(data)
	if contact != nil {
		if contact.Phone != nil {
			doc["telephone"] = *contact.Phone
		}
		if contact.Email != nil {
			doc["email"] = *contact.Email
		}
		if urls := contact.Social.URLs(); len(urls) > 0 {
			doc["sameAs"] = urls
		}
		hours, err := OpeningHours(contact.Timetable)
		if err != nil {
			return nil, err
		}
		if len(hours) > 0 {
			doc["openingHoursSpecification"] = hours
		}
	}

	switch {
	case data.SEOLocation != nil:
		doc["areaServed"] = area(data.SEOLocation.Address)
		if contact != nil && contact.PhysicalLocation {
			doc["address"] = PostalAddress(contact.Address)
		}
	case contact != nil && contact.PhysicalLocation:
		doc["address"] = PostalAddress(contact.Address)
	}
	return doc, nil
}

// Service describes a service, scoped to the page location when present.
func Service(data tpl.PageData, businessType string) (Document, error) {
	if data.Service == nil {
		return nil, fmt.Errorf("page has no service")
	}
	doc := Document{
		"@context":    "https://schema.org",
		"@type":       "Service",
		"name":        data.Service.Title,
		"description": data.Service.Description,
		"url":         data.SiteURL + data.Path,
	}
	if data.Service.FeaturedImage != nil {
		doc["image"] = data.Service.FeaturedImage.URL
	}
	if data.Theme != nil && data.Theme.SiteName != "" {
		provider, err := LocalBusiness(tpl.PageData{
			Path:         "/",
			SiteURL:      data.SiteURL,
			Theme:        data.Theme,
			MainLocation: data.MainLocation,
		}, businessType)
		if err == nil {
			delete(provider, "@context")
			doc["provider"] = provider
		}
	}
	if data.SEOLocation != nil {
		doc["areaServed"] = area(data.SEOLocation.Address)
	}
	return doc, nil
}

// Article describes a blog post.
func Article(data tpl.PageData) (Document, error) {
	if data.Post == nil {
		return nil, fmt.Errorf("page has no post")
	}
	doc := Document{
		"@context":         "https://schema.org",
		"@type":            "BlogPosting",
		"headline":         strings.TrimSpace(data.Post.Title),
		"mainEntityOfPage": data.SiteURL + data.Path,
	}
	if !data.Post.Date.IsZero() {
		doc["datePublished"] = data.Post.Date.Format(time.RFC3339)
	}
	if !data.Post.Modified.IsZero() {
		doc["dateModified"] = data.Post.Modified.Format(time.RFC3339)
	}
	if data.Post.FeaturedImage != nil {
		doc["image"] = data.Post.FeaturedImage.URL
	}
	if data.Theme != nil && data.Theme.SiteName != "" {
		doc["publisher"] = Document{"@type": "Organization", "name": data.Theme.SiteName}
	}
	return doc, nil
}

// BreadcrumbList mirrors the page breadcrumbs.
func BreadcrumbList(data tpl.PageData) (Document, error) {
	crumbs := tpl.Breadcrumbs(data)
	items := make([]Document, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, Document{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     data.SiteURL + c.Path,
		})
	}
	return Document{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	}, nil
}

// PostalAddress converts an address. US states are given as their
// two-letter code; any other region is passed through.
func PostalAddress(a entity.Address) Document {
	region := strings.TrimSpace(a.State)
	if state, ok := location.LookupState(region); ok {
		region = strings.ToUpper(state.Code)
	}
	doc := Document{
		"@type":           "PostalAddress",
		"streetAddress":   a.Street,
		"addressLocality": a.City,
		"addressRegion":   region,
		"postalCode":      a.ZipCode,
	}
	if a.Country != "" {
		doc["addressCountry"] = a.Country
	}
	return doc
}

func area(a entity.Address) Document {
	name := a.City + ", " + tpl.DisplayState(a.State)
	typ := "City"
	if a.HasNeighborhood() {
		name = strings.TrimSpace(a.Neighborhood) + ", " + name
		typ = "Place"
	}
	return Document{"@type": typ, "name": name}
}

var dayNames = map[string]string{
	"monday": "Monday", "tuesday": "Tuesday", "wednesday": "Wednesday", "thursday": "Thursday",
	"friday": "Friday", "saturday": "Saturday", "sunday": "Sunday",
	"mon": "Monday", "tue": "Tuesday", "wed": "Wednesday", "thu": "Thursday",
	"fri": "Friday", "sat": "Saturday", "sun": "Sunday",
}

// OpeningHours converts the weekly timetable. Closed days are skipped;
// open days must carry valid HH:MM times.
func OpeningHours(days []entity.DayHours) ([]Document, error) {
	out := make([]Document, 0, len(days))
	for _, d := range days {
		if !d.IsOpen {
			continue
		}
		name, ok := dayNames[strings.ToLower(strings.TrimSpace(d.Day))]
		if !ok {
			return nil, fmt.Errorf("unknown day %q", d.Day)
		}
		if d.Open == nil || d.Close == nil {
			return nil, fmt.Errorf("%s is open without hours", name)
		}
		opens, err := clock(*d.Open)
		if err != nil {
			return nil, fmt.Errorf("%s opens: %w", name, err)
		}
		closes, err := clock(*d.Close)
		if err != nil {
			return nil, fmt.Errorf("%s closes: %w", name, err)
		}
		out = append(out, Document{
			"@type":     "OpeningHoursSpecification",
			"dayOfWeek": "https://schema.org/" + name,
			"opens":     opens,
			"closes":    closes,
		})
	}
	return out, nil
}

func clock(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time %q", s)
	}
	return t.Format("15:04"), nil
}
