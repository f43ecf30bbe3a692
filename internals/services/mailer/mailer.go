// file: internals/services/mailer/mailer.go
package mailer

// Message is a single outbound email. Delivery is always best-effort; no
// caller treats a send failure as a request failure.
type Message struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
}

type Mailer interface {
	Send(msg Message) error
}
