package service

import (
	"context"
	"time"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/entity"
)

func strPtr(s string) *string { return &s }

type stubContent struct {
	contact    *entity.ContactContent
	services   []entity.ServiceItem
	theme      *entity.ThemeOptions
	about      *entity.AboutContent
	posts      []entity.Post
	postsErr   error
	contactErr error
	postBySlug map[string]*entity.Post
}

func (s *stubContent) Contact(context.Context) (*entity.ContactContent, error) {
	if s.contactErr != nil {
		return nil, s.contactErr
	}
	return s.contact, nil
}

func (s *stubContent) Services(context.Context) (*entity.ServicesContent, error) {
	return &entity.ServicesContent{Services: s.services}, nil
}

func (s *stubContent) ThemeOptions(context.Context) (*entity.ThemeOptions, error) {
	return s.theme, nil
}

func (s *stubContent) About(context.Context) (*entity.AboutContent, error) {
	return s.about, nil
}

func (s *stubContent) Posts(_ context.Context, page, perPage int) (*entity.PostPage, error) {
	if s.postsErr != nil {
		return nil, s.postsErr
	}
	total := len(s.posts)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return &entity.PostPage{
		Posts:      s.posts[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *stubContent) PostBySlug(_ context.Context, slug string) (*entity.Post, error) {
	if post, ok := s.postBySlug[slug]; ok {
		return post, nil
	}
	return nil, cms.ErrNotFound
}

func newStubContent() *stubContent {
	modified := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	posts := []entity.Post{
		{ID: 3, Slug: "summer-cuts", Title: "Summer cuts", Modified: modified},
		{ID: 2, Slug: "beard-care", Title: "Beard care"},
		{ID: 1, Slug: "opening", Title: "We are open"},
	}
	return &stubContent{
		theme: &entity.ThemeOptions{ActiveTemplate: "barbershop", SiteName: "Fade House", Tagline: "Sharp cuts"},
		contact: &entity.ContactContent{
			Locations: []entity.ContactLocation{
				{ID: "online", Name: "Online booking", PhysicalLocation: false,
					Address: entity.Address{City: "Austin", State: "TX"}},
				{ID: "la", Name: "Fade House LA", PhysicalLocation: true, Phone: strPtr("+13105550100"),
					Address: entity.Address{Street: "1 Sunset Blvd", City: "Los Angeles", State: "CA"}},
				{ID: "ny", Name: "Fade House NY", PhysicalLocation: true,
					Address: entity.Address{City: "New York", State: "NY"}},
			},
			SEOLocations: []entity.SEOLocation{
				{ID: "hollywood", Name: "Hollywood", Address: entity.Address{City: "Los Angeles", State: "CA", Neighborhood: "Hollywood"}},
				{ID: "la-hub", Name: "Los Angeles", Address: entity.Address{City: "Los Angeles", State: "CA"}},
				{ID: "brooklyn", Name: "Brooklyn", Address: entity.Address{City: "New York", State: "NY", Neighborhood: "Brooklyn"}},
			},
		},
		services: []entity.ServiceItem{
			{Title: "Skin Fade", Slug: "skin-fade", Description: "Clean fade"},
			{Title: "Beard Trim", Slug: "beard-trim"},
		},
		about:      &entity.AboutContent{Body: "<p>Since 2010</p>"},
		posts:      posts,
		postBySlug: map[string]*entity.Post{"beard-care": &posts[1]},
	}
}
