package service

import "context"

// AccountMail is a rendered message for one recipient.
type AccountMail struct {
	To      string
	Subject string
	HTML    string
}

// Mailer hands finished messages to the delivery collaborator. Actual SMTP
// transport lives outside this service; implementations here only need to get
// the message out the door (or log it in local environments).
type Mailer interface {
	Send(ctx context.Context, mail AccountMail) error
}
