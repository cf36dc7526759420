package entity

import "time"

// Image references a media library asset.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ServiceItem is a service offered by the business. Slug is unique within the list.
type ServiceItem struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Slug          string  `json:"slug"`
	FeaturedImage *Image  `json:"featured_image,omitempty"`
	Gallery       []Image `json:"gallery,omitempty"`
	Content       *string `json:"content,omitempty"`
}

// ServicesContent is the services page document.
type ServicesContent struct {
	PageInfo PageInfo      `json:"page_info"`
	Services []ServiceItem `json:"services"`
}

// ThemeOptions holds site-wide settings, including the active template selector.
type ThemeOptions struct {
	ActiveTemplate string `json:"active_template"`
	SiteName       string `json:"site_name"`
	Tagline        string `json:"tagline"`
	Logo           *Image `json:"logo,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	AnalyticsID    string `json:"analytics_id,omitempty"`
}

// AboutContent is the about-us page document.
type AboutContent struct {
	PageInfo PageInfo `json:"page_info"`
	Body     string   `json:"body"`
	Image    *Image   `json:"image,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// Post is a blog post as exposed by the WordPress posts endpoint.
type Post struct {
	ID            int       `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Date          time.Time `json:"date"`
	Modified      time.Time `json:"modified"`
	FeaturedImage *Image    `json:"featured_image,omitempty"`
}

// PostPage is one page of the paginated posts listing.
type PostPage struct {
	Posts      []Post `json:"posts"`
	Page       int    `json:"page"`
	PerPage    int    `json:"per_page"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
}
