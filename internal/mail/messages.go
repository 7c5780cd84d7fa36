package mail

import "fmt"

func SendVerificationEmail(sender MailSender, email string, name string, link string) error {
	return sender.Send(&Message{
		To:      []string{email},
		Subject: "Verify your email address",
		Body:    fmt.Sprintf("Hi %s,\n\nPlease verify your email address by opening the link below:\n\n%s\n\nThe link expires in 24 hours.", name, link),
	})
}
