package service

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/location"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// sitemapPostLimit caps the posts listed; WordPress pages at 100.
const sitemapPostLimit = 100

// URLSet is the root element of sitemap.xml.
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// SitemapService lists every routable page.
type SitemapService struct {
	content ContentSource
	siteURL string
}

// NewSitemapService creates a sitemap service.
func NewSitemapService(content ContentSource, siteURL string) *SitemapService {
	return &SitemapService{content: content, siteURL: strings.TrimRight(siteURL, "/")}
}

// Build collects the static pages, posts, contact locations, SEO location
// hubs and their location-scoped service pages. A neighborhood record also
// makes its city hub routable, so both are listed.
func (s *SitemapService) Build(ctx context.Context) (*URLSet, error) {
	var (
		contact  *entity.ContactContent
		services *entity.ServicesContent
		posts    *entity.PostPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contact, err = s.content.Contact(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		services, err = s.content.Services(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.content.Posts(gctx, 1, sitemapPostLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &URLSet{XMLNS: sitemapNamespace}
	seen := map[string]struct{}{}
	add := func(path, lastMod, freq string, priority float64) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		set.URLs = append(set.URLs, SitemapURL{Loc: s.siteURL + path, LastMod: lastMod, ChangeFreq: freq, Priority: priority})
	}

	add("/", "", "weekly", 1.0)
	for _, path := range []string{"/about", "/contact", "/services", "/blog"} {
		add(path, "", "monthly", 0.6)
	}

	var items []entity.ServiceItem
	if services != nil {
		items = services.Services
	}
	for _, svc := range items {
		add(location.ServicePath("", svc.Slug), "", "monthly", 0.8)
	}

	if posts != nil {
		for _, post := range posts.Posts {
			add("/blog/"+post.Slug, formatLastMod(post.Modified), "yearly", 0.5)
		}
	}

	if contact != nil {
		for _, loc := range contact.Locations {
			add("/locations/"+location.CitySlug(loc.Address.City, loc.Address.State), "", "monthly", 0.7)
		}
		for _, loc := range contact.SEOLocations {
			addr := loc.Address
			hubs := []string{location.CityPath(addr.City, addr.State)}
			if addr.HasNeighborhood() {
				hubs = append(hubs, location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood))
			}
			for _, hub := range hubs {
				add(hub, "", "monthly", 0.8)
				for _, svc := range items {
					add(location.ServicePath(hub, svc.Slug), "", "monthly", 0.6)
				}
			}
		}
	}
	return set, nil
}

// Marshal renders the sitemap document with its XML header.
func (u *URLSet) Marshal() ([]byte, error) {
	body, err := xml.MarshalIndent(u, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func formatLastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
