package wizard

import (
	"fmt"

	"github.com/spacely/spacely-api/internal/pkg/validator"
)

// StepInfo describes one wizard step.
type StepInfo struct {
	Number int    `json:"number"`
	Slug   string `json:"slug"`
	Path   string `json:"path"`
	Title  string `json:"title"`
}

// Steps is the fixed wizard flow. Order matters; the gate in
// Draft.FurthestStep indexes into it.
var Steps = []StepInfo{
	{Number: 1, Slug: "basic-info", Path: "step-1", Title: "Tell us about your space"},
	{Number: 2, Slug: "address", Path: "step-2", Title: "Where is it?"},
	{Number: 3, Slug: "details", Path: "step-3", Title: "Capacity, amenities and hours"},
	{Number: 4, Slug: "media", Path: "step-4", Title: "Add photos"},
	{Number: 5, Slug: "pricing", Path: "step-5", Title: "Set your price"},
}

// LastStep is the number of the final wizard step.
var LastStep = Steps[len(Steps)-1].Number

// StepByNumber returns the step description for n.
func StepByNumber(n int) (StepInfo, bool) {
	if n < 1 || n > len(Steps) {
		return StepInfo{}, false
	}
	return Steps[n-1], true
}

// validateStep checks that a draft satisfies step n. A nil return
// means the step is complete.
func validateStep(d *Draft, n int) map[string]string {
	errs := make(map[string]string)

	switch n {
	case 1:
		if len(d.BasicInfo.Title) < 3 {
			errs["title"] = "Title must be at least 3 characters"
		}
	case 2:
		if d.Address.Street == "" {
			errs["street"] = "This field is required"
		}
		if d.Address.City == "" {
			errs["city"] = "This field is required"
		}
		if d.Address.Country == "" {
			errs["country"] = "This field is required"
		}
	case 3:
		if d.Details.Capacity < 1 {
			errs["capacity"] = "Capacity must be at least 1"
		}
		for day, w := range d.Details.ServiceHours {
			if !w.IsSet() {
				continue
			}
			if !validator.IsHHMM(w.Start) || !validator.IsHHMM(w.End) || w.Start >= w.End {
				errs["service_hours"] = fmt.Sprintf("Invalid hours for %s", day)
				break
			}
		}
	case 4:
		// Photos are optional.
	case 5:
		if d.Pricing.PricePerHour <= 0 {
			errs["price_per_hour"] = "Price must be greater than 0"
		}
		if err := validator.ValidateVar(d.Pricing.Currency, "currency"); err != nil {
			errs["currency"] = "Invalid currency. Must be: USD, EUR, or MXN"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
