// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	annModel "studypulse_backend/internals/features/school/announcements/model"
	asgModel "studypulse_backend/internals/features/school/assignments/model"
	clsDTO "studypulse_backend/internals/features/school/classes/dto"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	clsService "studypulse_backend/internals/features/school/classes/service"
	"studypulse_backend/internals/features/school/guard"
	matModel "studypulse_backend/internals/features/school/materials/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	helper "studypulse_backend/internals/helpers"
)

type ClassController struct{ DB *gorm.DB }

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

var validateClass = validator.New()

// ===================== CREATE =====================
// POST /api/t/classes
func (h *ClassController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req clsDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	code, err := clsService.GenerateUniqueCode(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to generate join code")
	}

	m := req.ToModel(teacherID, code)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.JsonCreated(c, "Class created", m)
}

// ===================== LIST (teacher) =====================
// GET /api/t/classes
func (h *ClassController) ListForTeacher(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var classes []clsModel.ClassModel
	if err := h.DB.
		Where("class_teacher_id = ?", teacherID).
		Order("class_created_at DESC").
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonOK(c, "ok", classes)
}

// ===================== LIST (student) =====================
// GET /api/u/classes
func (h *ClassController) ListForStudent(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var classes []clsModel.ClassModel
	if err := h.DB.
		Joins("JOIN class_students ON class_students.class_student_class_id = classes.class_id").
		Where("class_students.class_student_user_id = ?", studentID).
		Order("classes.class_created_at DESC").
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonOK(c, "ok", classes)
}

// ===================== DETAIL =====================
// GET /api/t/classes/:id and /api/u/classes/:id
// Returns the class together with its child collections; readable by the
// owning teacher, an admin, or an enrolled student.
func (h *ClassController) Detail(c *fiber.Ctx) error {
	callerID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	role, _ := helper.GetRoleFromLocals(c)

	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	cls, err := guard.EnsureClassReader(h.DB, classID, callerID, role)
	if err != nil {
		return guard.HTTPError(c, err)
	}

	var assignments []asgModel.AssignmentModel
	if err := h.DB.Where("assignment_class_id = ?", classID).
		Order("assignment_created_at DESC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load assignments")
	}

	var announcements []annModel.AnnouncementModel
	if err := h.DB.Where("announcement_class_id = ?", classID).
		Order("announcement_created_at DESC").Find(&announcements).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load announcements")
	}

	var materials []matModel.MaterialModel
	if err := h.DB.Where("material_class_id = ?", classID).
		Order("material_created_at DESC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load materials")
	}

	var students []clsDTO.ClassStudentLite
	if err := h.DB.Model(&clsModel.ClassStudentModel{}).
		Select("users.user_id, users.user_name, class_students.class_student_created_at AS joined_at").
		Joins("JOIN users ON users.user_id = class_students.class_student_user_id").
		Where("class_students.class_student_class_id = ?", classID).
		Scan(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	return helper.JsonOK(c, "ok", fiber.Map{
		"class":         cls,
		"students":      students,
		"assignments":   assignments,
		"announcements": announcements,
		"materials":     materials,
	})
}

// ===================== UPDATE =====================
// PUT /api/t/classes/:id
func (h *ClassController) Update(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	cls, err := guard.EnsureClassTeacher(h.DB, classID, teacherID)
	if err != nil {
		return guard.HTTPError(c, err)
	}

	var req clsDTO.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	req.ApplyToModel(cls)
	if err := h.DB.Save(cls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}
	return helper.JsonUpdated(c, "Class updated", cls)
}

// ===================== DELETE =====================
// DELETE /api/t/classes/:id
func (h *ClassController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	classID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	cls, err := guard.EnsureClassTeacher(h.DB, classID, teacherID)
	if err != nil {
		return guard.HTTPError(c, err)
	}

	if err := h.DB.Delete(cls).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": cls.ClassID})
}

// ===================== JOIN =====================
// POST /api/u/classes/join
func (h *ClassController) Join(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req clsDTO.JoinClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateClass.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	cls, err := clsService.FindByCode(h.DB, req.Code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "No class found for this code")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to look up class")
	}

	enrolled, err := guard.IsEnrolled(h.DB, cls.ClassID, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check enrollment")
	}
	if enrolled {
		return helper.JsonError(c, fiber.StatusConflict, "You are already enrolled in this class")
	}

	row := clsModel.ClassStudentModel{
		ClassStudentClassID: cls.ClassID,
		ClassStudentUserID:  studentID,
	}
	if err := h.DB.Create(&row).Error; err != nil {
		// unique index catches the race between check and insert
		return helper.JsonError(c, fiber.StatusConflict, "You are already enrolled in this class")
	}
	return helper.JsonCreated(c, "Joined class", cls)
}

// loadRecipients resolves the enrolled students of a class to notifier targets.
func LoadRecipients(db *gorm.DB, classID uuid.UUID) ([]userModel.UserModel, error) {
	var users []userModel.UserModel
	err := db.
		Joins("JOIN class_students ON class_students.class_student_user_id = users.user_id").
		Where("class_students.class_student_class_id = ?", classID).
		Find(&users).Error
	return users, err
}
