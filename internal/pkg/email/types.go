// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeWelcome             EmailType = "welcome"
	EmailTypeBookingConfirmation EmailType = "booking_confirmation"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	Type        EmailType `json:"type"`
}

// TemplateData contains common data for all email templates
type TemplateData struct {
	SiteName string
	SiteURL  string
	UserName string
	Year     int
}

// BookingConfirmationData fills the booking confirmation mail
type BookingConfirmationData struct {
	TemplateData
	To          string
	BookingID   string
	HealerName  string
	ServiceType string
	Date        string
	Time        string
	Price       string
	Status      string
	Notes       string
}

// WelcomeData fills the welcome mail sent after sign up
type WelcomeData struct {
	TemplateData
	To   string
	Role string
}

func baseData(siteName, siteURL, userName string) TemplateData {
	return TemplateData{
		SiteName: siteName,
		SiteURL:  siteURL,
		UserName: userName,
		Year:     time.Now().Year(),
	}
}
