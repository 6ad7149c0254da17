package domain_test

import (
	"testing"
	"time"

	"go-freelance-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func publicProfile() *domain.Freelancer {
	return &domain.Freelancer{
		ID:               "f1",
		Location:         domain.Location{Town: "Lyon", CountryCode: "FR"},
		HourlyRate:       45,
		Title:            "Backend developer",
		PresentationText: "I build APIs.",
		Contact:          domain.Contact{Email: "pro@example.com"},
	}
}

func TestIsPublic(t *testing.T) {
	t.Run("Should accept a profile meeting all six conditions", func(t *testing.T) {
		assert.True(t, domain.IsPublic(publicProfile()))
	})

	t.Run("Should accept phone as the only contact channel", func(t *testing.T) {
		f := publicProfile()
		f.Contact = domain.Contact{Phone: "+33612345678"}
		assert.True(t, domain.IsPublic(f))
	})

	t.Run("Should reject when any single condition fails", func(t *testing.T) {
		breakers := map[string]func(*domain.Freelancer){
			"town":         func(f *domain.Freelancer) { f.Location.Town = "" },
			"country code": func(f *domain.Freelancer) { f.Location.CountryCode = "" },
			"hourly rate":  func(f *domain.Freelancer) { f.HourlyRate = 0 },
			"title":        func(f *domain.Freelancer) { f.Title = "" },
			"presentation": func(f *domain.Freelancer) { f.PresentationText = "" },
			"contact":      func(f *domain.Freelancer) { f.Contact = domain.Contact{} },
		}
		for name, wreck := range breakers {
			f := publicProfile()
			wreck(f)
			assert.False(t, domain.IsPublic(f), "expected hidden when %s is missing", name)
		}
	})
}

func TestMissingFields(t *testing.T) {
	t.Run("Should be empty for a complete profile", func(t *testing.T) {
		report := domain.MissingFields(publicProfile())
		assert.True(t, report.Empty())
	})

	t.Run("Should report location sub-fields individually", func(t *testing.T) {
		f := publicProfile()
		f.Location.Town = ""
		report := domain.MissingFields(f)
		assert.NotNil(t, report.Location)
		assert.True(t, report.Location.Town)
		assert.False(t, report.Location.CountryCode)
	})

	t.Run("Should not report contact while one channel remains", func(t *testing.T) {
		f := publicProfile()
		f.Contact.Email = ""
		f.Contact.Phone = "+33612345678"
		report := domain.MissingFields(f)
		assert.Nil(t, report.Contact)
	})

	t.Run("Should report both contact channels when neither is set", func(t *testing.T) {
		f := publicProfile()
		f.Contact = domain.Contact{}
		report := domain.MissingFields(f)
		assert.NotNil(t, report.Contact)
		assert.True(t, report.Contact.Email)
		assert.True(t, report.Contact.Phone)
	})

	t.Run("Should agree with IsPublic", func(t *testing.T) {
		f := publicProfile()
		assert.Equal(t, domain.IsPublic(f), domain.MissingFields(f).Empty())

		f.HourlyRate = 0
		assert.Equal(t, domain.IsPublic(f), domain.MissingFields(f).Empty())
	})
}

func TestUnconfirmed(t *testing.T) {
	f := publicProfile()
	assert.False(t, f.Unconfirmed())

	f.Tokens = append(f.Tokens, domain.Token{Type: domain.TokenPasswordReset, Expire: time.Now().Add(time.Hour)})
	assert.False(t, f.Unconfirmed(), "a reset token must not hide the profile")

	f.Tokens = append(f.Tokens, domain.Token{Type: domain.TokenRegisterConfirm, Expire: time.Now().Add(time.Hour)})
	assert.True(t, f.Unconfirmed())
}
