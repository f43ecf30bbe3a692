// file: internals/features/school/announcements/controller/announcement_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	annDTO "studypulse_backend/internals/features/school/announcements/dto"
	annModel "studypulse_backend/internals/features/school/announcements/model"
	clsController "studypulse_backend/internals/features/school/classes/controller"
	"studypulse_backend/internals/features/school/guard"
	helper "studypulse_backend/internals/helpers"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

type AnnouncementController struct {
	DB       *gorm.DB
	Store    storage.BlobStore
	Notifier notifier.Notifier
}

func NewAnnouncementController(db *gorm.DB, store storage.BlobStore, n notifier.Notifier) *AnnouncementController {
	return &AnnouncementController{DB: db, Store: store, Notifier: n}
}

var validateAnnouncement = validator.New()

// ===================== CREATE =====================
// POST /api/t/classes/:classId/announcements (multipart or JSON)
func (h *AnnouncementController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	cls, err := guard.EnsureClassTeacher(h.DB, classID, teacherID)
	if err != nil {
		return guard.HTTPError(c, err)
	}

	var req annDTO.CreateAnnouncementRequest
	if text := c.FormValue("announcement_text"); text != "" {
		req.AnnouncementText = text
	} else if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(classID, teacherID)

	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		url, err := storage.SaveUpload(c.UserContext(), h.Store, "announcements", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store attachment")
		}
		m.AnnouncementAttachmentURL = &url
	}

	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create announcement")
	}

	h.fanOut(cls.ClassID, notifier.Event{
		Title: "New announcement in " + cls.ClassName,
		Body:  m.AnnouncementText,
		Tags:  []string{"announcement", cls.ClassID.String()},
	})
	return helper.JsonCreated(c, "Announcement posted", m)
}

// ===================== LIST =====================
// GET /api/t|u/classes/:classId/announcements — newest first.
func (h *AnnouncementController) List(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromLocals(c)
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	if _, err := guard.EnsureClassReader(h.DB, classID, callerID, role); err != nil {
		return guard.HTTPError(c, err)
	}

	var records []annModel.AnnouncementModel
	if err := h.DB.Where("announcement_class_id = ?", classID).
		Order("announcement_created_at DESC").Find(&records).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list announcements")
	}

	views := make([]annDTO.AnnouncementView, 0, len(records))
	for i := range records {
		replies, err := records[i].Replies()
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode replies")
		}
		views = append(views, annDTO.AnnouncementView{Announcement: records[i], Replies: replies})
	}
	return helper.JsonOK(c, "ok", views)
}

// ===================== UPDATE =====================
// PUT /api/t/classes/:classId/announcements/:id — edits the text only, the
// reply log is untouchable through this path.
func (h *AnnouncementController) Update(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	m, err := h.find(classID, announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load announcement")
	}

	var req annDTO.UpdateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m.AnnouncementText = req.AnnouncementText
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update announcement")
	}
	return helper.JsonUpdated(c, "Announcement updated", m)
}

// ===================== DELETE =====================
// DELETE /api/t/classes/:classId/announcements/:id
func (h *AnnouncementController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}
	if _, err := guard.EnsureClassTeacher(h.DB, classID, teacherID); err != nil {
		return guard.HTTPError(c, err)
	}

	m, err := h.find(classID, announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load announcement")
	}

	if m.AnnouncementAttachmentURL != nil {
		if err := h.Store.Delete(c.UserContext(), *m.AnnouncementAttachmentURL); err != nil {
			log.Printf("announcement attachment delete: %v", err)
		}
	}
	if err := h.DB.Delete(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete announcement")
	}
	return helper.JsonDeleted(c, "Announcement deleted", fiber.Map{"announcement_id": m.AnnouncementID})
}

// ===================== REPLY =====================
// POST /api/u/classes/:classId/announcements/:id/replies
// Open to the owning teacher and enrolled students. The author name is
// snapshotted into the log entry at post time.
func (h *AnnouncementController) Reply(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromLocals(c)
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	announcementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid announcement id")
	}

	cls, err := guard.FindClass(h.DB, classID)
	if err != nil {
		return guard.HTTPError(c, err)
	}
	if cls.ClassTeacherID != callerID {
		ok, err := guard.IsEnrolled(h.DB, classID, callerID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
		}
		if !ok {
			return guard.HTTPError(c, guard.ErrNotEnrolled)
		}
	}

	m, err := h.find(classID, announcementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Announcement not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load announcement")
	}

	var req annDTO.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateAnnouncement.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	authorName := helper.GetUserNameFromLocals(c)
	reply := annModel.AnnouncementReply{
		AuthorID:   callerID,
		AuthorName: authorName,
		AuthorRole: role,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	}
	if err := m.AppendReply(reply); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to append reply")
	}
	if err := h.DB.Save(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save reply")
	}
	return helper.JsonCreated(c, "Reply posted", reply)
}

func (h *AnnouncementController) find(classID, announcementID uuid.UUID) (*annModel.AnnouncementModel, error) {
	var m annModel.AnnouncementModel
	err := h.DB.First(&m, "announcement_id = ? AND announcement_class_id = ?", announcementID, classID).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (h *AnnouncementController) fanOut(classID uuid.UUID, ev notifier.Event) {
	users, err := clsController.LoadRecipients(h.DB, classID)
	if err != nil {
		log.Printf("announcement fan-out: %v", err)
		return
	}
	recipients := make([]notifier.Recipient, 0, len(users))
	for _, u := range users {
		recipients = append(recipients, notifier.Recipient{
			UserID: u.UserID,
			Name:   u.UserName,
			Email:  u.UserEmail,
		})
	}
	h.Notifier.Notify(recipients, ev)
}
