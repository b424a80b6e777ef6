package wizard

import "github.com/spacely/spacely-api/internal/domain/space"

// StepPatch is a tagged union: exactly one section is set, and it must
// match the step being submitted. Scalar pointer fields merge into the
// draft; nil leaves the stored value alone. Slices and maps replace
// the stored value wholesale, never element-wise.
type StepPatch struct {
	BasicInfo *BasicInfoPatch `json:"basic_info,omitempty"`
	Address   *AddressPatch   `json:"address,omitempty"`
	Details   *DetailsPatch   `json:"details,omitempty"`
	Media     *MediaPatch     `json:"media,omitempty"`
	Pricing   *PricingPatch   `json:"pricing,omitempty"`
}

type BasicInfoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type AddressPatch struct {
	Street    *string  `json:"street"`
	City      *string  `json:"city"`
	Country   *string  `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type DetailsPatch struct {
	Capacity     *int                 `json:"capacity"`
	Amenities    []string             `json:"amenities"`
	ServiceHours space.WeeklySchedule `json:"service_hours"`
}

type MediaPatch struct {
	URLs []string `json:"urls"`
}

type PricingPatch struct {
	PricePerHour *float64 `json:"price_per_hour"`
	Currency     *string  `json:"currency"`
}

// sectionFor returns the patch section belonging to step n, or false
// when the union holds a different section (or none).
func (p *StepPatch) sectionFor(n int) (any, bool) {
	sections := map[int]any{}
	count := 0
	if p.BasicInfo != nil {
		sections[1] = p.BasicInfo
		count++
	}
	if p.Address != nil {
		sections[2] = p.Address
		count++
	}
	if p.Details != nil {
		sections[3] = p.Details
		count++
	}
	if p.Media != nil {
		sections[4] = p.Media
		count++
	}
	if p.Pricing != nil {
		sections[5] = p.Pricing
		count++
	}

	section, ok := sections[n]
	if !ok || count != 1 {
		return nil, false
	}
	return section, true
}

// apply merges the patch for step n into the draft.
func (p *StepPatch) apply(d *Draft, n int) {
	switch n {
	case 1:
		patch := p.BasicInfo
		if patch.Title != nil {
			d.BasicInfo.Title = *patch.Title
		}
		if patch.Description != nil {
			d.BasicInfo.Description = *patch.Description
		}
		if patch.Category != nil {
			d.BasicInfo.Category = *patch.Category
		}
	case 2:
		patch := p.Address
		if patch.Street != nil {
			d.Address.Street = *patch.Street
		}
		if patch.City != nil {
			d.Address.City = *patch.City
		}
		if patch.Country != nil {
			d.Address.Country = *patch.Country
		}
		if patch.Latitude != nil {
			d.Address.Latitude = patch.Latitude
		}
		if patch.Longitude != nil {
			d.Address.Longitude = patch.Longitude
		}
	case 3:
		patch := p.Details
		if patch.Capacity != nil {
			d.Details.Capacity = *patch.Capacity
		}
		if patch.Amenities != nil {
			d.Details.Amenities = patch.Amenities
		}
		if patch.ServiceHours != nil {
			d.Details.ServiceHours = patch.ServiceHours
		}
	case 4:
		patch := p.Media
		if patch.URLs != nil {
			d.Media.URLs = patch.URLs
		}
	case 5:
		patch := p.Pricing
		if patch.PricePerHour != nil {
			d.Pricing.PricePerHour = *patch.PricePerHour
		}
		if patch.Currency != nil {
			d.Pricing.Currency = *patch.Currency
		}
	}
}
