package service

import (
	"context"
	"errors"
	"testing"

	"github.com/octobees/sitegen/internal/cms"
	"github.com/octobees/sitegen/internal/template"
)

func TestPageService_Home(t *testing.T) {
	svc := NewPageService(newStubContent(), "https://fade.example/")

	data, err := svc.Home(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Kind != template.PageHome || data.Path != "/" || data.SiteURL != "https://fade.example" {
		t.Fatalf("unexpected page: %+v", data)
	}
	if data.MainLocation == nil || data.MainLocation.ID != "la" {
		t.Fatalf("expected first physical location as main, got %+v", data.MainLocation)
	}
	if data.Posts == nil || len(data.Posts.Posts) != teaserPostCount {
		t.Fatalf("expected teaser posts, got %+v", data.Posts)
	}
	if len(data.Services) != 2 {
		t.Fatalf("expected services, got %d", len(data.Services))
	}
}

func TestPageService_HomeSurvivesPostFailure(t *testing.T) {
	content := newStubContent()
	content.postsErr = errors.New("wp down")
	data, err := NewPageService(content, "").Home(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Posts != nil {
		t.Fatalf("expected no teaser, got %+v", data.Posts)
	}
}

func TestPageService_SharedContentFailure(t *testing.T) {
	content := newStubContent()
	content.contactErr = &cms.StatusError{Code: 500, Message: "boom"}
	if _, err := NewPageService(content, "").Contact(context.Background()); err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestPageService_City(t *testing.T) {
	svc := NewPageService(newStubContent(), "")

	data, err := svc.City(context.Background(), "California", "Los-Angeles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.SEOLocation == nil || data.SEOLocation.ID != "la-hub" {
		t.Fatalf("expected the record without neighborhood, got %+v", data.SEOLocation)
	}
	if data.Path != "/california/los-angeles" {
		t.Fatalf("unexpected path %q", data.Path)
	}

	if _, err := svc.City(context.Background(), "texas", "austin"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageService_CityFallsBackToNeighborhoodRecord(t *testing.T) {
	data, err := NewPageService(newStubContent(), "").City(context.Background(), "new-york", "new-york")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.SEOLocation.ID != "brooklyn" {
		t.Fatalf("expected first match overall, got %s", data.SEOLocation.ID)
	}
}

func TestPageService_NeighborhoodService(t *testing.T) {
	svc := NewPageService(newStubContent(), "")

	data, err := svc.NeighborhoodService(context.Background(), "california", "los-angeles", "hollywood", "skin-fade")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Kind != template.PageNeighborhoodService || data.SEOLocation.ID != "hollywood" || data.Service.Slug != "skin-fade" {
		t.Fatalf("unexpected page: %+v", data)
	}
	if data.Path != "/california/los-angeles/hollywood/services/skin-fade" {
		t.Fatalf("unexpected path %q", data.Path)
	}

	if _, err := svc.NeighborhoodService(context.Background(), "california", "los-angeles", "hollywood", "perm"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown service, got %v", err)
	}
	if _, err := svc.Neighborhood(context.Background(), "california", "los-angeles", "venice"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown neighborhood, got %v", err)
	}
}

func TestPageService_CityService(t *testing.T) {
	data, err := NewPageService(newStubContent(), "").CityService(context.Background(), "california", "los-angeles", "beard-trim")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Path != "/california/los-angeles/services/beard-trim" {
		t.Fatalf("unexpected path %q", data.Path)
	}
}

func TestPageService_Location(t *testing.T) {
	svc := NewPageService(newStubContent(), "")

	data, err := svc.Location(context.Background(), "/new-york/new-york/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.ContactLocation == nil || data.ContactLocation.ID != "ny" {
		t.Fatalf("unexpected location: %+v", data.ContactLocation)
	}
	if data.Path != "/locations/new-york/new-york" {
		t.Fatalf("unexpected path %q", data.Path)
	}

	if _, err := svc.Location(context.Background(), "ohio/columbus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageService_BlogAndPost(t *testing.T) {
	content := newStubContent()
	svc := NewPageService(content, "")

	data, err := svc.Blog(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Posts.Page != 1 || data.Path != "/blog" {
		t.Fatalf("unexpected blog page: %+v", data.Posts)
	}
	if _, err := svc.Blog(context.Background(), 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound past the last page, got %v", err)
	}

	post, err := svc.Post(context.Background(), "beard-care")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.Post.ID != 2 || post.Path != "/blog/beard-care" {
		t.Fatalf("unexpected post page: %+v", post)
	}
	for _, p := range post.Posts.Posts {
		if p.ID == 2 {
			t.Fatalf("teaser should not repeat the current post")
		}
	}
	if _, err := svc.Post(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageService_About(t *testing.T) {
	data, err := NewPageService(newStubContent(), "").About(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.About == nil || data.About.Body == "" {
		t.Fatalf("expected about content")
	}
}
