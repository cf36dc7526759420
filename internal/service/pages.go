package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/entity"
	"github.com/octobees/sitegen/internal/location"
	"github.com/octobees/sitegen/internal/template"
)

// ErrNotFound is returned when a URL does not resolve to any content.
var ErrNotFound = errors.New("page not found")

const (
	teaserPostCount = 3
	blogPageSize    = 10
)

// ContentSource is the part of the CMS client page assembly reads from.
type ContentSource interface {
	Contact(ctx context.Context) (*entity.ContactContent, error)
	Services(ctx context.Context) (*entity.ServicesContent, error)
	ThemeOptions(ctx context.Context) (*entity.ThemeOptions, error)
	About(ctx context.Context) (*entity.AboutContent, error)
	Posts(ctx context.Context, page, perPage int) (*entity.PostPage, error)
	PostBySlug(ctx context.Context, slug string) (*entity.Post, error)
}

// PageService resolves a URL to the data a template needs.
type PageService struct {
	content ContentSource
	siteURL string
}

// NewPageService creates a page service.
func NewPageService(content ContentSource, siteURL string) *PageService {
	return &PageService{content: content, siteURL: strings.TrimRight(siteURL, "/")}
}

// shell is the content every page shares.
type shell struct {
	theme    *entity.ThemeOptions
	contact  *entity.ContactContent
	services []entity.ServiceItem
}

type extras struct {
	about  bool
	teaser bool
}

// load fetches the shared content concurrently. Theme options come from the
// request scope when the template was already resolved from them. The post
// teaser is optional: a failure there is logged and the page renders without
// it.
func (s *PageService) load(ctx context.Context, want extras) (shell, *entity.AboutContent, *entity.PostPage, error) {
	var (
		out   shell
		about *entity.AboutContent
		posts *entity.PostPage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		theme, err := template.ScopedThemeOptions(gctx, s.content)
		if err != nil {
			return err
		}
		out.theme = theme
		return nil
	})
	g.Go(func() error {
		contact, err := s.content.Contact(gctx)
		if err != nil {
			return err
		}
		out.contact = contact
		return nil
	})
	g.Go(func() error {
		services, err := s.content.Services(gctx)
		if err != nil {
			return err
		}
		if services != nil {
			out.services = services.Services
		}
		return nil
	})
	if want.about {
		g.Go(func() error {
			content, err := s.content.About(gctx)
			if err != nil {
				return err
			}
			about = content
			return nil
		})
	}
	if want.teaser {
		g.Go(func() error {
			page, err := s.content.Posts(gctx, 1, teaserPostCount)
			if err != nil {
				log.Printf("page_teaser_skipped error=%v", err)
				return nil
			}
			posts = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return shell{}, nil, nil, err
	}
	if out.contact == nil {
		out.contact = &entity.ContactContent{}
	}
	return out, about, posts, nil
}

func (s *PageService) base(kind template.PageKind, path string, sh shell) template.PageData {
	var main *entity.ContactLocation
	if sh.contact != nil {
		main = location.MainPhysical(sh.contact.Locations)
	}
	return template.PageData{
		Kind:         kind,
		Path:         path,
		SiteURL:      s.siteURL,
		Theme:        sh.theme,
		Contact:      sh.contact,
		MainLocation: main,
		Services:     sh.services,
	}
}

// Home builds the landing page.
func (s *PageService) Home(ctx context.Context) (template.PageData, error) {
	sh, _, posts, err := s.load(ctx, extras{teaser: true})
	if err != nil {
		return template.PageData{}, err
	}
	data := s.base(template.PageHome, "/", sh)
	data.Posts = posts
	return data, nil
}

// About builds the about page.
func (s *PageService) About(ctx context.Context) (template.PageData, error) {
	sh, about, _, err := s.load(ctx, extras{about: true})
	if err != nil {
		return template.PageData{}, err
	}
	data := s.base(template.PageAbout, "/about", sh)
	data.About = about
	return data, nil
}

// Contact builds the contact page.
func (s *PageService) Contact(ctx context.Context) (template.PageData, error) {
	return s.static(ctx, template.PageContact, "/contact")
}

// Services builds the service index.
func (s *PageService) Services(ctx context.Context) (template.PageData, error) {
	return s.static(ctx, template.PageServices, "/services")
}

func (s *PageService) static(ctx context.Context, kind template.PageKind, path string) (template.PageData, error) {
	sh, _, _, err := s.load(ctx, extras{})
	if err != nil {
		return template.PageData{}, err
	}
	return s.base(kind, path, sh), nil
}

// Service builds the page of a single service.
func (s *PageService) Service(ctx context.Context, serviceSlug string) (template.PageData, error) {
	sh, _, _, err := s.load(ctx, extras{})
	if err != nil {
		return template.PageData{}, err
	}
	svc := location.FindService(sh.services, serviceSlug)
	if svc == nil {
		return template.PageData{}, fmt.Errorf("service %q: %w", serviceSlug, ErrNotFound)
	}
	data := s.base(template.PageService, location.ServicePath("", svc.Slug), sh)
	data.Service = svc
	return data, nil
}

// Blog builds one page of the post index. Pages past the end are not found.
func (s *PageService) Blog(ctx context.Context, page int) (template.PageData, error) {
	if page <= 0 {
		page = 1
	}
	var (
		sh    shell
		posts *entity.PostPage
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sh, _, _, err = s.load(gctx, extras{})
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.content.Posts(gctx, page, blogPageSize)
		if err != nil && isOutOfRange(err) {
			return fmt.Errorf("blog page %d: %w", page, ErrNotFound)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return template.PageData{}, err
	}
	if page > 1 && page > posts.TotalPages {
		return template.PageData{}, fmt.Errorf("blog page %d: %w", page, ErrNotFound)
	}

	path := "/blog"
	if page > 1 {
		path = fmt.Sprintf("/blog?page=%d", page)
	}
	data := s.base(template.PageBlog, path, sh)
	data.Posts = posts
	return data, nil
}

// Post builds a blog post page with the latest posts as a teaser.
func (s *PageService) Post(ctx context.Context, slug string) (template.PageData, error) {
	var (
		sh    shell
		posts *entity.PostPage
		post  *entity.Post
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sh, _, posts, err = s.load(gctx, extras{teaser: true})
		return err
	})
	g.Go(func() error {
		var err error
		post, err = s.content.PostBySlug(gctx, location.NormalizeSlug(slug))
		if errors.Is(err, cms.ErrNotFound) {
			return fmt.Errorf("post %q: %w", slug, ErrNotFound)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return template.PageData{}, err
	}
	data := s.base(template.PagePost, "/blog/"+post.Slug, sh)
	data.Post = post
	data.Posts = withoutPost(posts, post.ID)
	return data, nil
}

// Location builds the page of a contact location addressed by its city slug.
func (s *PageService) Location(ctx context.Context, slug string) (template.PageData, error) {
	sh, _, _, err := s.load(ctx, extras{})
	if err != nil {
		return template.PageData{}, err
	}
	loc := location.FindBySlug(sh.contact.Locations, slug)
	if loc == nil {
		return template.PageData{}, fmt.Errorf("location %q: %w", slug, ErrNotFound)
	}
	data := s.base(template.PageLocation, "/locations/"+location.CitySlug(loc.Address.City, loc.Address.State), sh)
	data.ContactLocation = loc
	return data, nil
}

// City builds a city hub from an SEO location.
func (s *PageService) City(ctx context.Context, state, city string) (template.PageData, error) {
	sh, seo, err := s.city(ctx, state, city)
	if err != nil {
		return template.PageData{}, err
	}
	data := s.base(template.PageCity, location.CityPath(seo.Address.City, seo.Address.State), sh)
	data.SEOLocation = seo
	return data, nil
}

// Neighborhood builds a neighborhood hub from an SEO location.
func (s *PageService) Neighborhood(ctx context.Context, state, city, neighborhood string) (template.PageData, error) {
	sh, seo, err := s.neighborhood(ctx, state, city, neighborhood)
	if err != nil {
		return template.PageData{}, err
	}
	addr := seo.Address
	data := s.base(template.PageNeighborhood, location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood), sh)
	data.SEOLocation = seo
	return data, nil
}

// CityService builds a service page scoped to a city.
func (s *PageService) CityService(ctx context.Context, state, city, serviceSlug string) (template.PageData, error) {
	sh, seo, err := s.city(ctx, state, city)
	if err != nil {
		return template.PageData{}, err
	}
	svc := location.FindService(sh.services, serviceSlug)
	if svc == nil {
		return template.PageData{}, fmt.Errorf("service %q: %w", serviceSlug, ErrNotFound)
	}
	path := location.ServicePath(location.CityPath(seo.Address.City, seo.Address.State), svc.Slug)
	data := s.base(template.PageCityService, path, sh)
	data.SEOLocation = seo
	data.Service = svc
	return data, nil
}

// NeighborhoodService builds a service page scoped to a neighborhood.
func (s *PageService) NeighborhoodService(ctx context.Context, state, city, neighborhood, serviceSlug string) (template.PageData, error) {
	sh, seo, err := s.neighborhood(ctx, state, city, neighborhood)
	if err != nil {
		return template.PageData{}, err
	}
	svc := location.FindService(sh.services, serviceSlug)
	if svc == nil {
		return template.PageData{}, fmt.Errorf("service %q: %w", serviceSlug, ErrNotFound)
	}
	addr := seo.Address
	path := location.ServicePath(location.NeighborhoodPath(addr.City, addr.State, addr.Neighborhood), svc.Slug)
	data := s.base(template.PageNeighborhoodService, path, sh)
	data.SEOLocation = seo
	data.Service = svc
	return data, nil
}

func (s *PageService) city(ctx context.Context, state, city string) (shell, *entity.SEOLocation, error) {
	sh, _, _, err := s.load(ctx, extras{})
	if err != nil {
		return shell{}, nil, err
	}
	slug := location.JoinSlug(state, city)
	seo := location.FindSEOByCitySlug(sh.contact.SEOLocations, slug)
	if seo == nil {
		return shell{}, nil, fmt.Errorf("city %q: %w", slug, ErrNotFound)
	}
	return sh, seo, nil
}

func (s *PageService) neighborhood(ctx context.Context, state, city, neighborhood string) (shell, *entity.SEOLocation, error) {
	sh, _, _, err := s.load(ctx, extras{})
	if err != nil {
		return shell{}, nil, err
	}
	slug := location.JoinSlug(state, city, neighborhood)
	seo := location.FindSEOByNeighborhoodSlug(sh.contact.SEOLocations, slug)
	if seo == nil {
		return shell{}, nil, fmt.Errorf("neighborhood %q: %w", slug, ErrNotFound)
	}
	return sh, seo, nil
}

// isOutOfRange reports the WordPress answer for a page number past the end.
func isOutOfRange(err error) bool {
	if errors.Is(err, cms.ErrNotFound) {
		return true
	}
	var statusErr *cms.StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusBadRequest
}

func withoutPost(page *entity.PostPage, id int) *entity.PostPage {
	if page == nil {
		return nil
	}
	out := *page
	out.Posts = make([]entity.Post, 0, len(page.Posts))
	for _, p := range page.Posts {
		if p.ID != id {
			out.Posts = append(out.Posts, p)
		}
	}
	return &out
}
