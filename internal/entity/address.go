package entity

import "strings"

// Address is the postal address attached to contact and SEO locations.
type Address struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zip_code"`
	FullAddress  string `json:"full_address,omitempty"`
}

// HasNeighborhood reports whether the neighborhood is set to something other than whitespace.
func (a Address) HasNeighborhood() bool {
	return strings.TrimSpace(a.Neighborhood) != ""
}

// Formatted returns the precomputed full address or joins the populated parts.
func (a Address) Formatted() string {
	if full := strings.TrimSpace(a.FullAddress); full != "" {
		return full
	}
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, strings.TrimSpace(a.State + " " + a.ZipCode), a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
