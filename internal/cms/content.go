package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/octobees/sitegen/internal/entity"
)

// Endpoint paths relative to the wp-json root.
const (
	pathContact      = "/sitegen/v1/contact"
	pathServices     = "/sitegen/v1/services"
	pathThemeOptions = "/sitegen/v1/theme-options"
	pathAbout        = "/sitegen/v1/about"
	pathPosts        = "/wp/v2/posts"
	pathForms        = "/sitegen/v1/forms"
)

// wpDateLayout is the zone-less format of date_gmt/modified_gmt.
const wpDateLayout = "2006-01-02T15:04:05"

// Contact fetches the contact document with every contact and SEO location.
func (c *Client) Contact(ctx context.Context) (*entity.ContactContent, error) {
	var out entity.ContactContent
	if _, err := c.getJSON(ctx, pathContact, []string{TagContact}, &out); err != nil {
		return nil, fmt.Errorf("fetch contact: %w", err)
	}
	return &out, nil
}

// Services fetches the services document.
func (c *Client) Services(ctx context.Context) (*entity.ServicesContent, error) {
	var out entity.ServicesContent
	if _, err := c.getJSON(ctx, pathServices, []string{TagServices}, &out); err != nil {
		return nil, fmt.Errorf("fetch services: %w", err)
	}
	return &out, nil
}

// ThemeOptions fetches the site-wide theme options.
func (c *Client) ThemeOptions(ctx context.Context) (*entity.ThemeOptions, error) {
	var out entity.ThemeOptions
	if _, err := c.getJSON(ctx, pathThemeOptions, []string{TagThemeOptions}, &out); err != nil {
		return nil, fmt.Errorf("fetch theme options: %w", err)
	}
	return &out, nil
}

// About fetches the about-us document.
func (c *Client) About(ctx context.Context) (*entity.AboutContent, error) {
	var out entity.AboutContent
	if _, err := c.getJSON(ctx, pathAbout, []string{TagAbout}, &out); err != nil {
		return nil, fmt.Errorf("fetch about: %w", err)
	}
	return &out, nil
}

type wpRendered struct {
	Rendered string `json:"rendered"`
}

type wpPost struct {
	ID          int        `json:"id"`
	Slug        string     `json:"slug"`
	DateGMT     string     `json:"date_gmt"`
	ModifiedGMT string     `json:"modified_gmt"`
	Title       wpRendered `json:"title"`
	Excerpt     wpRendered `json:"excerpt"`
	Content     wpRendered `json:"content"`
	Embedded    struct {
		FeaturedMedia []struct {
			SourceURL    string `json:"source_url"`
			AltText      string `json:"alt_text"`
			MediaDetails struct {
				Width  int `json:"width"`
				Height int `json:"height"`
			} `json:"media_details"`
		} `json:"wp:featuredmedia"`
	} `json:"_embedded"`
}

func (p wpPost) toEntity() entity.Post {
	post := entity.Post{
		ID:      p.ID,
		Slug:    p.Slug,
		Title:   p.Title.Rendered,
		Excerpt: p.Excerpt.Rendered,
		Content: p.Content.Rendered,
	}
	if t, err := time.Parse(wpDateLayout, p.DateGMT); err == nil {
		post.Date = t.UTC()
	}
	if t, err := time.Parse(wpDateLayout, p.ModifiedGMT); err == nil {
		post.Modified = t.UTC()
	}
	if media := p.Embedded.FeaturedMedia; len(media) > 0 && media[0].SourceURL != "" {
		post.FeaturedImage = &entity.Image{
			URL:    media[0].SourceURL,
			Alt:    media[0].AltText,
			Width:  media[0].MediaDetails.Width,
			Height: media[0].MediaDetails.Height,
		}
	}
	return post
}

// Posts fetches one page of published posts, newest first.
func (c *Client) Posts(ctx context.Context, page, perPage int) (*entity.PostPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("_embed", "wp:featuredmedia")

	var raw []wpPost
	header, err := c.getJSON(ctx, pathPosts+"?"+q.Encode(), []string{TagPosts}, &raw)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}

	out := &entity.PostPage{
		Posts:      make([]entity.Post, 0, len(raw)),
		Page:       page,
		PerPage:    perPage,
		Total:      headerInt(header, "X-WP-Total", len(raw)),
		TotalPages: headerInt(header, "X-WP-TotalPages", 1),
	}
	for _, p := range raw {
		out.Posts = append(out.Posts, p.toEntity())
	}
	return out, nil
}

// PostBySlug fetches a single post. ErrNotFound is returned when no post has the slug.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	q := url.Values{}
	q.Set("slug", slug)
	q.Set("_embed", "wp:featuredmedia")

	var raw []wpPost
	if _, err := c.getJSON(ctx, pathPosts+"?"+q.Encode(), []string{TagPosts, PostTag(slug)}, &raw); err != nil {
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch post %q: %w", slug, ErrNotFound)
	}
	post := raw[0].toEntity()
	return &post, nil
}

// FormResult is the CMS answer to a form submission.
type FormResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitForm forwards a lead form to the CMS submission handler.
func (c *Client) SubmitForm(ctx context.Context, formID string, data map[string]any) (*FormResult, error) {
	var out FormResult
	path := pathForms + "/" + url.PathEscape(formID) + "/submit"
	if err := c.postJSON(ctx, path, map[string]any{"form_data": data}, &out); err != nil {
		return nil, fmt.Errorf("submit form %s: %w", formID, err)
	}
	return &out, nil
}

func headerInt(h http.Header, key string, fallback int) int {
	if h == nil {
		return fallback
	}
	v, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return fallback
	}
	return v
}
