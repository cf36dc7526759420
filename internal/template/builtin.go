package template

// Built-in template ids.
const (
	Barbershop = "barbershop"
	BeautyCare = "beauty_care"
)

// NewDefaultRegistry registers the built-in templates.
func NewDefaultRegistry(defaultID string) *Registry {
	if defaultID == "" {
		defaultID = Barbershop
	}
	r := NewRegistry(defaultID)
	r.Register(Barbershop, newBarbershop)
	r.Register(BeautyCare, newBeautyCare)
	return r
}

func newBarbershop() (*Template, error) {
	m, err := loadManifest(Barbershop)
	if err != nil {
		return nil, err
	}
	builders := CommonSections()
	builders["walk_in_banner"] = walkInBannerSection
	return Build(m, builders)
}

func newBeautyCare() (*Template, error) {
	m, err := loadManifest(BeautyCare)
	if err != nil {
		return nil, err
	}
	builders := CommonSections()
	builders["treatments_carousel"] = treatmentsCarouselSection
	builders["booking_cta"] = bookingCTASection
	return Build(m, builders)
}

// walkInBannerSection advertises walk-ins when the shop is open today in the
// timetable of the page's contact location.
func walkInBannerSection(_ *Manifest, data PageData) (Section, bool) {
	c := ContactFor(data)
	if c == nil {
		return Section{}, false
	}
	open := make([]string, 0, len(c.Timetable))
	for _, d := range c.Timetable {
		if d.IsOpen {
			open = append(open, d.Day)
		}
	}
	if len(open) == 0 {
		return Section{}, false
	}
	props := map[string]any{"open_days": open}
	if c.Phone != nil {
		props["phone"] = *c.Phone
	}
	return Section{Type: "walk_in_banner", Props: props}, true
}

// treatmentsCarouselSection shows only services that have imagery.
func treatmentsCarouselSection(_ *Manifest, data PageData) (Section, bool) {
	cards := serviceCards(data)
	withImages := cards[:0]
	for _, card := range cards {
		if card.Image != nil {
			withImages = append(withImages, card)
		}
	}
	if len(withImages) == 0 {
		return Section{}, false
	}
	return Section{Type: "treatments_carousel", Props: map[string]any{"items": withImages}}, true
}

func bookingCTASection(m *Manifest, data PageData) (Section, bool) {
	props := map[string]any{"form_id": m.ContactFormID}
	if c := ContactFor(data); c != nil {
		if c.Phone != nil {
			props["phone"] = *c.Phone
		}
		if c.Email != nil {
			props["email"] = *c.Email
		}
	}
	if data.Service != nil {
		props["service"] = data.Service.Title
	}
	return Section{Type: "booking_cta", Props: props}, true
}
