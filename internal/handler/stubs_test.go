package handler

import (
	"context"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/entity"
)

func strPtr(s string) *string { return &s }

type stubContent struct {
	contactErr error
}

func (s *stubContent) Contact(context.Context) (*entity.ContactContent, error) {
	if s.contactErr != nil {
		return nil, s.contactErr
	}
	return &entity.ContactContent{
		Locations: []entity.ContactLocation{
			{ID: "la", Name: "Fade House LA", PhysicalLocation: true, Phone: strPtr("+13105550100"),
				Address: entity.Address{Street: "1 Sunset Blvd", City: "Los Angeles", State: "CA"}},
		},
		SEOLocations: []entity.SEOLocation{
			{ID: "la-hub", Name: "Los Angeles", Address: entity.Address{City: "Los Angeles", State: "CA"}},
			{ID: "hollywood", Name: "Hollywood", Address: entity.Address{City: "Los Angeles", State: "CA", Neighborhood: "Hollywood"}},
		},
	}, nil
}

func (s *stubContent) Services(context.Context) (*entity.ServicesContent, error) {
	return &entity.ServicesContent{Services: []entity.ServiceItem{
		{Title: "Skin Fade", Slug: "skin-fade", Description: "Clean fade"},
	}}, nil
}

func (s *stubContent) ThemeOptions(context.Context) (*entity.ThemeOptions, error) {
	return &entity.ThemeOptions{SiteName: "Fade House", Tagline: "Sharp cuts"}, nil
}

func (s *stubContent) About(context.Context) (*entity.AboutContent, error) {
	return &entity.AboutContent{Body: "<p>Since 2010</p>"}, nil
}

func (s *stubContent) Posts(_ context.Context, page, perPage int) (*entity.PostPage, error) {
	return &entity.PostPage{Page: page, PerPage: perPage, TotalPages: 1}, nil
}

func (s *stubContent) PostBySlug(context.Context, string) (*entity.Post, error) {
	return nil, cms.ErrNotFound
}

type stubTheme struct {
	id string
}

func (s stubTheme) ThemeOptions(context.Context) (*entity.ThemeOptions, error) {
	return &entity.ThemeOptions{ActiveTemplate: s.id}, nil
}
