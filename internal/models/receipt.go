package models

// EmailMessage is a single outbound email with a plain-text and an HTML body.
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	Content     string
	HTMLContent string
}
