package location

import "github.com/octobees/sitegen/internal/entity"

// FilterPhysical keeps locations flagged as physical, preserving order.
func FilterPhysical(locations []entity.ContactLocation) []entity.ContactLocation {
	return filter(locations, true)
}

// FilterVirtual keeps service-area-only locations, preserving order.
func FilterVirtual(locations []entity.ContactLocation) []entity.ContactLocation {
	return filter(locations, false)
}

// MainPhysical returns the first physical location in CMS order, or nil.
// There is no priority field; editors control the order.
func MainPhysical(locations []entity.ContactLocation) *entity.ContactLocation {
	for i := range locations {
		if locations[i].PhysicalLocation {
			return &locations[i]
		}
	}
	return nil
}

func filter(locations []entity.ContactLocation, physical bool) []entity.ContactLocation {
	out := make([]entity.ContactLocation, 0, len(locations))
	for _, loc := range locations {
		if loc.PhysicalLocation == physical {
			out = append(out, loc)
		}
	}
	return out
}
