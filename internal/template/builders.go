package template

import (
	"strings"

	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/location"
)

// CommonSections are the section builders shared by every template.
func CommonSections() map[string]SectionBuilder {
	return map[string]SectionBuilder{
		"hero":            heroSection,
		"page_header":     pageHeaderSection,
		"breadcrumbs":     breadcrumbsSection,
		"services_grid":   servicesGridSection,
		"service_detail":  serviceDetailSection,
		"gallery":         gallerySection,
		"location_info":   locationInfoSection,
		"hours":           hoursSection,
		"locations_list":  locationsListSection,
		"service_areas":   serviceAreasSection,
		"nearby_areas":    nearbyAreasSection,
		"about_body":      aboutBodySection,
		"blog_list":       blogListSection,
		"blog_teaser":     blogTeaserSection,
		"post_body":       postBodySection,
		"contact_form":    contactFormSection,
		"contact_details": contactDetailsSection,
	}
}

func heroSection(_ *Manifest, data PageData) (Section, bool) {
	props := map[string]any{}
	if data.Theme != nil {
		props["title"] = data.Theme.SiteName
		props["subtitle"] = data.Theme.Tagline
		if data.Theme.Logo != nil {
			props["logo"] = data.Theme.Logo
		}
	}
	if addr, ok := pageAddress(data); ok {
		props["location"] = locationLabel(addr)
	}
	if data.Service != nil {
		props["title"] = data.Service.Title
		props["subtitle"] = data.Service.Description
		if data.Service.FeaturedImage != nil {
			props["image"] = data.Service.FeaturedImage
		}
	}
	if c := ContactFor(data); c != nil && c.Phone != nil {
		props["phone"] = *c.Phone
	}
	return Section{Type: "hero", Props: props}, len(props) > 0
}

func pageHeaderSection(_ *Manifest, data PageData) (Section, bool) {
	var info *entity.PageInfo
	switch data.Kind {
	case PageAbout:
		if data.About != nil {
			info = &data.About.PageInfo
		}
	case PageContact, PageLocation:
		if data.Contact != nil {
			info = &data.Contact.PageInfo
		}
	}
	if info == nil {
		return Section{}, false
	}
	return Section{Type: "page_header", Props: map[string]any{
		"subtitle":    info.Subtitle,
		"title":       info.Title,
		"description": info.Description,
	}}, true
}

// Crumb is one breadcrumb entry.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Breadcrumbs lists the trail from the home page to data.Path.
func Breadcrumbs(data PageData) []Crumb {
	crumbs := []Crumb{{Name: "Home", Path: "/"}}
	addr, hasAddr := pageAddress(data)
	if hasAddr && data.Kind != PageLocation {
		crumbs = append(crumbs, Crumb{Name: addr.City + ", " + DisplayState(addr.State), Path: location.CityPath(addr.City, addr.State)})
		if addr.HasNeighborhood() && (data.Kind == PageNeighborhood || data.Kind == PageNeighborhoodService) {
			crumbs = append(crumbs, Crumb{Name: addr.Neighborhood, Path: location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood)})
		}
	}
	switch data.Kind {
	case PageService:
		crumbs = append(crumbs, Crumb{Name: "Services", Path: "/services"})
	case PagePost:
		crumbs = append(crumbs, Crumb{Name: "Blog", Path: "/blog"})
	case PageLocation:
		if hasAddr {
			crumbs = append(crumbs, Crumb{Name: locationLabel(addr), Path: data.Path})
		}
		return crumbs
	}
	if data.Service != nil {
		crumbs = append(crumbs, Crumb{Name: data.Service.Title, Path: data.Path})
	}
	if data.Post != nil {
		crumbs = append(crumbs, Crumb{Name: stripTags(data.Post.Title), Path: data.Path})
	}
	return crumbs
}

func breadcrumbsSection(_ *Manifest, data PageData) (Section, bool) {
	crumbs := Breadcrumbs(data)
	if len(crumbs) < 2 {
		return Section{}, false
	}
	return Section{Type: "breadcrumbs", Props: map[string]any{"items": crumbs}}, true
}

type serviceCard struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Href        string        `json:"href"`
	Image       *entity.Image `json:"image,omitempty"`
}

func serviceCards(data PageData) []serviceCard {
	base := locationPath(data)
	cards := make([]serviceCard, 0, len(data.Services))
	for _, svc := range data.Services {
		if data.Service != nil && svc.Slug == data.Service.Slug {
			continue
		}
		cards = append(cards, serviceCard{
			Title:       svc.Title,
			Description: svc.Description,
			Href:        location.ServicePath(base, svc.Slug),
			Image:       svc.FeaturedImage,
		})
	}
	return cards
}

func servicesGridSection(_ *Manifest, data PageData) (Section, bool) {
	cards := serviceCards(data)
	if len(cards) == 0 {
		return Section{}, false
	}
	return Section{Type: "services_grid", Props: map[string]any{"services": cards}}, true
}

func serviceDetailSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Service == nil {
		return Section{}, false
	}
	props := map[string]any{
		"title":       data.Service.Title,
		"description": data.Service.Description,
		"slug":        data.Service.Slug,
	}
	if data.Service.Content != nil {
		props["content_html"] = *data.Service.Content
	}
	if addr, ok := pageAddress(data); ok {
		props["location"] = locationLabel(addr)
	}
	return Section{Type: "service_detail", Props: props}, true
}

func gallerySection(_ *Manifest, data PageData) (Section, bool) {
	if data.Service == nil || len(data.Service.Gallery) == 0 {
		return Section{}, false
	}
	return Section{Type: "gallery", Props: map[string]any{"images": data.Service.Gallery}}, true
}

func locationInfoSection(_ *Manifest, data PageData) (Section, bool) {
	addr, ok := pageAddress(data)
	if !ok {
		return Section{}, false
	}
	props := map[string]any{
		"label":   locationLabel(addr),
		"address": addr,
	}
	if c := ContactFor(data); c != nil {
		if c.Phone != nil {
			props["phone"] = *c.Phone
		}
		if c.Email != nil {
			props["email"] = *c.Email
		}
		if urls := c.Social.URLs(); len(urls) > 0 {
			props["social"] = urls
		}
	}
	return Section{Type: "location_info", Props: props}, true
}

func hoursSection(_ *Manifest, data PageData) (Section, bool) {
	c := ContactFor(data)
	if c == nil || len(c.Timetable) == 0 {
		return Section{}, false
	}
	return Section{Type: "hours", Props: map[string]any{"timetable": c.Timetable}}, true
}

type locationLink struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Href  string `json:"href"`
}

func locationsListSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Contact == nil {
		return Section{}, false
	}
	physical := location.FilterPhysical(data.Contact.Locations)
	if len(physical) == 0 {
		return Section{}, false
	}
	links := make([]locationLink, 0, len(physical))
	for _, loc := range physical {
		links = append(links, locationLink{
			Name:  loc.Name,
			Label: loc.Address.Formatted(),
			Href:  "/locations/" + location.CitySlug(loc.Address.City, loc.Address.State),
		})
	}
	return Section{Type: "locations_list", Props: map[string]any{"locations": links}}, true
}

// serviceAreasSection links every SEO location page.
func serviceAreasSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Contact == nil || len(data.Contact.SEOLocations) == 0 {
		return Section{}, false
	}
	links := make([]locationLink, 0, len(data.Contact.SEOLocations))
	for _, loc := range data.Contact.SEOLocations {
		links = append(links, seoLink(loc))
	}
	virtual := location.FilterVirtual(data.Contact.Locations)
	names := make([]string, 0, len(virtual))
	for _, v := range virtual {
		names = append(names, v.Name)
	}
	props := map[string]any{"areas": links}
	if len(names) > 0 {
		props["virtual_locations"] = names
	}
	return Section{Type: "service_areas", Props: props}, true
}

// nearbyAreasSection links SEO locations in the same city as the page.
func nearbyAreasSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Contact == nil || data.SEOLocation == nil {
		return Section{}, false
	}
	here := data.SEOLocation.Address
	city := location.CitySlug(here.City, here.State)
	var links []locationLink
	for _, loc := range data.Contact.SEOLocations {
		if loc.ID == data.SEOLocation.ID {
			continue
		}
		if location.CitySlug(loc.Address.City, loc.Address.State) != city {
			continue
		}
		links = append(links, seoLink(loc))
	}
	if len(links) == 0 {
		return Section{}, false
	}
	return Section{Type: "nearby_areas", Props: map[string]any{"areas": links}}, true
}

func seoLink(loc entity.SEOLocation) locationLink {
	addr := loc.Address
	href := location.CityPath(addr.City, addr.State)
	if addr.HasNeighborhood() {
		href = location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood)
	}
	return locationLink{Name: loc.Name, Label: locationLabel(addr), Href: href}
}

func aboutBodySection(_ *Manifest, data PageData) (Section, bool) {
	if data.About == nil {
		return Section{}, false
	}
	props := map[string]any{"body_html": data.About.Body}
	if data.About.Image != nil {
		props["image"] = data.About.Image
	}
	if len(data.About.Values) > 0 {
		props["values"] = data.About.Values
	}
	return Section{Type: "about_body", Props: props}, true
}

type postCard struct {
	Title   string        `json:"title"`
	Excerpt string        `json:"excerpt"`
	Href    string        `json:"href"`
	Date    string        `json:"date,omitempty"`
	Image   *entity.Image `json:"image,omitempty"`
}

func postCards(posts []entity.Post, limit int) []postCard {
	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		card := postCard{Title: stripTags(p.Title), Excerpt: stripTags(p.Excerpt), Href: "/blog/" + p.Slug, Image: p.FeaturedImage}
		if !p.Date.IsZero() {
			card.Date = p.Date.Format("2006-01-02")
		}
		cards = append(cards, card)
	}
	return cards
}

func blogListSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Posts == nil {
		return Section{}, false
	}
	return Section{Type: "blog_list", Props: map[string]any{
		"posts":       postCards(data.Posts.Posts, 0),
		"page":        data.Posts.Page,
		"total_pages": data.Posts.TotalPages,
		"total":       data.Posts.Total,
	}}, true
}

func blogTeaserSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Posts == nil || len(data.Posts.Posts) == 0 {
		return Section{}, false
	}
	return Section{Type: "blog_teaser", Props: map[string]any{"posts": postCards(data.Posts.Posts, 3)}}, true
}

func postBodySection(_ *Manifest, data PageData) (Section, bool) {
	if data.Post == nil {
		return Section{}, false
	}
	props := map[string]any{
		"title":        stripTags(data.Post.Title),
		"content_html": data.Post.Content,
		"published":    data.Post.Date,
	}
	if data.Post.FeaturedImage != nil {
		props["image"] = data.Post.FeaturedImage
	}
	return Section{Type: "post_body", Props: props}, true
}

func contactFormSection(m *Manifest, data PageData) (Section, bool) {
	if m.ContactFormID == "" {
		return Section{}, false
	}
	props := map[string]any{"form_id": m.ContactFormID, "action": "/api/leads"}
	if data.Service != nil {
		props["service"] = data.Service.Slug
	}
	if addr, ok := pageAddress(data); ok {
		props["location"] = locationLabel(addr)
	}
	return Section{Type: "contact_form", Props: props}, true
}

func contactDetailsSection(_ *Manifest, data PageData) (Section, bool) {
	if data.Contact == nil || len(data.Contact.Locations) == 0 {
		return Section{}, false
	}
	return Section{Type: "contact_details", Props: map[string]any{
		"physical": location.FilterPhysical(data.Contact.Locations),
		"virtual":  location.FilterVirtual(data.Contact.Locations),
	}}, true
}

func locationLabel(addr entity.Address) string {
	label := addr.City + ", " + DisplayState(addr.State)
	if addr.HasNeighborhood() {
		label = strings.TrimSpace(addr.Neighborhood) + ", " + label
	}
	return label
}
