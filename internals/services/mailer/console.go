// file: internals/services/mailer/console.go
package mailer

import "log"

// consoleMailer prints mail to stdout; the dev default when no API key is set.
type consoleMailer struct{}

func NewConsoleMailer() Mailer { return consoleMailer{} }

func (consoleMailer) Send(msg Message) error {
	log.Printf("[MAIL] to=%s <%s> subject=%q\n%s", msg.ToName, msg.ToEmail, msg.Subject, msg.PlainText)
	return nil
}

// dummyMailer swallows everything; used in tests.
type dummyMailer struct{}

func NewDummyMailer() Mailer { return dummyMailer{} }

func (dummyMailer) Send(Message) error { return nil }

// FromEnv picks SendGrid when an API key is configured, console otherwise.
func FromEnv(apiKey, fromName, fromEmail string) Mailer {
	if apiKey != "" {
		return NewSendgridMailer(apiKey, fromName, fromEmail)
	}
	return NewConsoleMailer()
}
