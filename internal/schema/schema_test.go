package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octobees/sitegen/internal/entity"
	tpl "github.com/octobees/sitegen/internal/template"
)

func strPtr(s string) *string { return &s }

func basePage(kind tpl.PageKind) tpl.PageData {
	main := &entity.ContactLocation{
		Name:             "Downtown",
		PhysicalLocation: true,
		Address:          entity.Address{Street: "1 Main St", City: "Austin", State: "texas", ZipCode: "78701", Country: "US"},
		Phone:            strPtr("+15125550100"),
		Social:           entity.SocialLinks{Instagram: strPtr("https://instagram.com/fadehouse")},
		Timetable: []entity.DayHours{
			{Day: "Monday", IsOpen: true, Open: strPtr("09:00"), Close: strPtr("17:30")},
			{Day: "sun", IsOpen: false},
		},
	}
	return tpl.PageData{
		Kind:         kind,
		Path:         "/texas/austin",
		SiteURL:      "https://fadehouse.example",
		Theme:        &entity.ThemeOptions{SiteName: "Fade House"},
		MainLocation: main,
		SEOLocation:  &entity.SEOLocation{Address: entity.Address{City: "Austin", State: "TX"}},
	}
}

func TestLocalBusiness(t *testing.T) {
	doc, err := LocalBusiness(basePage(tpl.PageCity), "BarberShop")
	require.NoError(t, err)
	assert.Equal(t, "BarberShop", doc["@type"])
	assert.Equal(t, "+15125550100", doc["telephone"])
	assert.Equal(t, []string{"https://instagram.com/fadehouse"}, doc["sameAs"])
	assert.Equal(t, Document{"@type": "City", "name": "Austin, Texas"}, doc["areaServed"])

	addr := doc["address"].(Document)
	assert.Equal(t, "TX", addr["addressRegion"])

	hours := doc["openingHoursSpecification"].([]Document)
	require.Len(t, hours, 1)
	assert.Equal(t, "https://schema.org/Monday", hours[0]["dayOfWeek"])
	assert.Equal(t, "17:30", hours[0]["closes"])
}

func TestLocalBusinessRequiresSiteName(t *testing.T) {
	data := basePage(tpl.PageHome)
	data.Theme = nil
	_, err := LocalBusiness(data, "")
	assert.Error(t, err)
}

func TestOpeningHoursRejectsBadTimes(t *testing.T) {
	_, err := OpeningHours([]entity.DayHours{{Day: "monday", IsOpen: true, Open: strPtr("9am"), Close: strPtr("17:00")}})
	assert.Error(t, err)

	_, err = OpeningHours([]entity.DayHours{{Day: "funday", IsOpen: true, Open: strPtr("09:00"), Close: strPtr("17:00")}})
	assert.Error(t, err)

	_, err = OpeningHours([]entity.DayHours{{Day: "friday", IsOpen: true}})
	assert.Error(t, err)
}

func TestForPageDegradesGracefully(t *testing.T) {
	data := basePage(tpl.PageCity)
	data.MainLocation.Timetable[0].Open = strPtr("not-a-time")

	docs := ForPage(data, "BarberShop")
	require.Len(t, docs, 1, "broken business block is dropped, breadcrumbs remain")
	assert.Equal(t, "BreadcrumbList", docs[0]["@type"])
}

func TestForPageService(t *testing.T) {
	data := basePage(tpl.PageCityService)
	data.Service = &entity.ServiceItem{Title: "Skin Fade", Slug: "skin-fade", Description: "Clean"}
	data.Path = "/texas/austin/services/skin-fade"

	docs := ForPage(data, "BarberShop")
	require.Len(t, docs, 2)
	assert.Equal(t, "Service", docs[0]["@type"])
	provider := docs[0]["provider"].(Document)
	assert.Equal(t, "Fade House", provider["name"])
	assert.NotContains(t, provider, "@context")

	crumbs := docs[1]["itemListElement"].([]Document)
	require.Len(t, crumbs, 3)
	assert.Equal(t, "https://fadehouse.example/texas/austin", crumbs[1]["item"])
	assert.Equal(t, 3, crumbs[2]["position"])
}

func TestArticle(t *testing.T) {
	data := basePage(tpl.PagePost)
	data.SEOLocation = nil
	data.Path = "/blog/hello"
	data.Post = &entity.Post{Title: "Hello", Date: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}

	doc, err := Article(data)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02T03:04:05Z", doc["datePublished"])
	assert.NotContains(t, doc, "dateModified")

	_, err = Article(basePage(tpl.PagePost))
	assert.Error(t, err)
}

func TestSafeRecoversPanics(t *testing.T) {
	doc := Safe("boom", func() (Document, error) {
		var m map[string]string
		m["x"] = "y"
		return Document{}, nil
	})
	assert.Nil(t, doc)

	doc = Safe("ok", func() (Document, error) { return Document{"a": 1}, nil })
	assert.Equal(t, Document{"a": 1}, doc)
}

func TestPostalAddressRegion(t *testing.T) {
	tests := map[string]struct {
		state string
		want  string
	}{
		"code":          {state: "ca", want: "CA"},
		"full name":     {state: "New York", want: "NY"},
		"slug form":     {state: "new-york", want: "NY"},
		"outside table": {state: " District of Columbia ", want: "District of Columbia"},
		"blank":         {state: "", want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			doc := PostalAddress(entity.Address{City: "Anywhere", State: tt.state})
			assert.Equal(t, tt.want, doc["addressRegion"])
		})
	}
}
