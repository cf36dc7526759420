package entity

// PageInfo carries the editable heading block of a CMS page.
type PageInfo struct {
	Subtitle    string `json:"subtitle"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SocialLinks groups the optional social profile URLs of a location.
type SocialLinks struct {
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Google    *string `json:"google,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	Pinterest *string `json:"pinterest,omitempty"`
	Yelp      *string `json:"yelp,omitempty"`
}

// URLs returns the populated links in a stable order.
func (s SocialLinks) URLs() []string {
	var out []string
	for _, link := range []*string{s.Facebook, s.Instagram, s.Google, s.LinkedIn, s.Pinterest, s.Yelp} {
		if link != nil && *link != "" {
			out = append(out, *link)
		}
	}
	return out
}

// DayHours is one entry of the weekly timetable. Open and Close use 24-hour HH:MM.
type DayHours struct {
	Day    string  `json:"day"`
	IsOpen bool    `json:"is_open"`
	Open   *string `json:"open,omitempty"`
	Close  *string `json:"close,omitempty"`
}

// ContactLocation is an operational location with contact details and opening hours.
type ContactLocation struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	PhysicalLocation bool        `json:"physical_location"`
	Address          Address     `json:"address"`
	Phone            *string     `json:"phone,omitempty"`
	Email            *string     `json:"email,omitempty"`
	Social           SocialLinks `json:"social"`
	Timetable        []DayHours  `json:"timetable"`
}

// SEOLocation is a location the site wants indexed without operational details.
type SEOLocation struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

// ContactContent is the aggregate returned by the CMS contact endpoint.
type ContactContent struct {
	PageInfo     PageInfo          `json:"page_info"`
	Locations    []ContactLocation `json:"locations"`
	SEOLocations []SEOLocation     `json:"seo_locations"`
}
