package location

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCitySlug(t *testing.T) {
	assert.Equal(t, "california/san-francisco", CitySlug("San Francisco", "ca"))
	assert.Equal(t, "california/san-francisco", CitySlug("San Francisco", "California"))
	assert.Equal(t, "new-york/new-york", CitySlug("New  York", "NY"))
	assert.Equal(t, "texas/st.-louis", CitySlug("St. Louis", "tx"))
}

func TestNeighborhoodSlug(t *testing.T) {
	assert.Equal(t, "california/los-angeles/hollywood", NeighborhoodSlug("Los Angeles", "CA", "Hollywood"))
	assert.Equal(t, "california/los-angeles/west-hollywood", NeighborhoodSlug("Los Angeles", "CA", "West\tHollywood"))
}

func TestPathSegmentKeepsNonASCII(t *testing.T) {
	assert.Equal(t, "san-josé", PathSegment("San José"))
}

func TestJoinAndNormalizeSlug(t *testing.T) {
	assert.Equal(t, "california/los-angeles", NormalizeSlug("/California/Los-Angeles/"))
	assert.Equal(t, "california/los-angeles/hollywood", JoinSlug("California", "los-angeles", "", "Hollywood"))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/california/los-angeles", CityPath("Los Angeles", "CA"))
	assert.Equal(t, "/california/los-angeles/hollywood", NeighborhoodPath("Los Angeles", "CA", "Hollywood"))
	assert.Equal(t, "/california/los-angeles/services/fade", ServicePath("/california/los-angeles/", "fade"))
	assert.Equal(t, "/services/fade", ServicePath("", "fade"))
}
