package domain

import "context"

// Attachment is a binary file sent along with an email.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Email is a fully built transactional message ready for delivery.
type Email struct {
	From        string
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer hands a message to an external delivery provider.
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// PassFields are the values printed on a registration pass.
type PassFields struct {
	Name      string
	Phone     string
	Category  string
	Photo     string // data URL
	Signature string // data URL
}

// PassRenderer renders a one-page pass document.
type PassRenderer interface {
	Render(fields PassFields) ([]byte, error)
}
