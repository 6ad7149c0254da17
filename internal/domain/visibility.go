package domain

// MissingLocation breaks a missing location down per sub-field.
type MissingLocation struct {
	Town        bool `json:"town,omitempty"`
	CountryCode bool `json:"countryCode,omitempty"`
}

// MissingContact is only reported when the contact condition fails as a
// whole, i.e. neither email nor phone is set.
type MissingContact struct {
	Email bool `json:"email,omitempty"`
	Phone bool `json:"phone,omitempty"`
}

// MissingReport lists what a freelancer still has to fill in before the
// profile becomes publicly listed. Fields that are complete are omitted.
type MissingReport struct {
	Location         *MissingLocation `json:"location,omitempty"`
	HourlyRate       bool             `json:"hourlyRate,omitempty"`
	Title            bool             `json:"title,omitempty"`
	PresentationText bool             `json:"presentationText,omitempty"`
	Contact          *MissingContact  `json:"contact,omitempty"`
}

// Empty reports whether nothing is missing.
func (r MissingReport) Empty() bool {
	return r.Location == nil && !r.HourlyRate && !r.Title && !r.PresentationText && r.Contact == nil
}

// VisibilityReport is the owner-facing diagnostic returned by the
// visibility endpoint. Unlike the public lookup it reveals existence.
type VisibilityReport struct {
	Visible bool          `json:"visible"`
	Missing MissingReport `json:"missing"`
}

// IsPublic reports whether a profile is complete enough to be publicly
// listed. All six conditions must hold at once: town, country code,
// hourly rate, title, presentation text, and at least one contact
// channel. Confirmation state is checked separately by the callers that
// filter on tokens.
func IsPublic(f *Freelancer) bool {
	return f.Location.Town != "" &&
		f.Location.CountryCode != "" &&
		f.HourlyRate > 0 &&
		f.Title != "" &&
		f.PresentationText != "" &&
		(f.Contact.Email != "" || f.Contact.Phone != "")
}

// MissingFields computes the per-field completeness checklist backing
// IsPublic. It never fails: an entirely empty location or contact is
// reported as all sub-fields missing.
func MissingFields(f *Freelancer) MissingReport {
	var report MissingReport

	if f.Location.Town == "" || f.Location.CountryCode == "" {
		report.Location = &MissingLocation{
			Town:        f.Location.Town == "",
			CountryCode: f.Location.CountryCode == "",
		}
	}
	report.HourlyRate = f.HourlyRate <= 0
	report.Title = f.Title == ""
	report.PresentationText = f.PresentationText == ""
	if f.Contact.Email == "" && f.Contact.Phone == "" {
		report.Contact = &MissingContact{Email: true, Phone: true}
	}

	return report
}
