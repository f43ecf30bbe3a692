// file: internals/services/notifier/notifier.go
package notifier

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "studypulse_backend/internals/features/home/notifications/model"
	"studypulse_backend/internals/services/mailer"
)

type Recipient struct {
	UserID uuid.UUID
	Name   string
	Email  string
}

type Event struct {
	Title string
	Body  string
	Tags  []string
}

// Notifier fans an event out to a set of users. Delivery is fire-and-forget:
// the triggering request has already succeeded by the time this runs, and no
// failure here is ever surfaced to it.
type Notifier interface {
	Notify(recipients []Recipient, ev Event)
}

type dbNotifier struct {
	db     *gorm.DB
	mailer mailer.Mailer
}

func New(db *gorm.DB, m mailer.Mailer) Notifier {
	return &dbNotifier{db: db, mailer: m}
}

func (n *dbNotifier) Notify(recipients []Recipient, ev Event) {
	go func() {
		for _, r := range recipients {
			row := notifModel.NotificationModel{
				NotificationUserID: r.UserID,
				NotificationTitle:  ev.Title,
				NotificationBody:   ev.Body,
				NotificationTags:   ev.Tags,
			}
			if err := n.db.Create(&row).Error; err != nil {
				log.Printf("notify: row for %s failed: %v", r.UserID, err)
			}
			if r.Email == "" {
				continue
			}
			if err := n.mailer.Send(mailer.Message{
				ToName:    r.Name,
				ToEmail:   r.Email,
				Subject:   ev.Title,
				PlainText: ev.Body,
			}); err != nil {
				log.Printf("notify: mail to %s failed: %v", r.Email, err)
			}
		}
	}()
}

// NopNotifier drops every event; used in tests.
type NopNotifier struct{}

func (NopNotifier) Notify([]Recipient, Event) {}
