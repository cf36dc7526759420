package location

import "github.com/octobees/sitegen/internal/entity"

// FindBySlug returns the first contact location whose city slug equals slug.
func FindBySlug(locations []entity.ContactLocation, slug string) *entity.ContactLocation {
	if len(locations) == 0 {
		return nil
	}
	slug = NormalizeSlug(slug)
	for i := range locations {
		addr := locations[i].Address
		if CitySlug(addr.City, addr.State) == slug {
			return &locations[i]
		}
	}
	return nil
}

// FindSEOByCitySlug returns the SEO location for a city hub. Several records
// can share a city; the first one without a neighborhood wins, otherwise the
// first match in list order.
func FindSEOByCitySlug(locations []entity.SEOLocation, citySlug string) *entity.SEOLocation {
	if len(locations) == 0 {
		return nil
	}
	citySlug = NormalizeSlug(citySlug)
	var fallback *entity.SEOLocation
	for i := range locations {
		addr := locations[i].Address
		if CitySlug(addr.City, addr.State) != citySlug {
			continue
		}
		if !addr.HasNeighborhood() {
			return &locations[i]
		}
		if fallback == nil {
			fallback = &locations[i]
		}
	}
	return fallback
}

// FindSEOByNeighborhoodSlug matches only records with a non-blank neighborhood.
func FindSEOByNeighborhoodSlug(locations []entity.SEOLocation, neighborhoodSlug string) *entity.SEOLocation {
	if len(locations) == 0 {
		return nil
	}
	neighborhoodSlug = NormalizeSlug(neighborhoodSlug)
	for i := range locations {
		addr := locations[i].Address
		if !addr.HasNeighborhood() {
			continue
		}
		if NeighborhoodSlug(addr.City, addr.State, addr.Neighborhood) == neighborhoodSlug {
			return &locations[i]
		}
	}
	return nil
}

// FindService returns the service with exactly the given slug.
func FindService(services []entity.ServiceItem, slug string) *entity.ServiceItem {
	if len(services) == 0 || slug == "" {
		return nil
	}
	for i := range services {
		if services[i].Slug == slug {
			return &services[i]
		}
	}
	return nil
}
