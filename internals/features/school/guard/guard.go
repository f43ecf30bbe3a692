// file: internals/features/school/guard/guard.go
package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "studypulse_backend/internals/features/school/classes/model"
	helper "studypulse_backend/internals/helpers"
)

// The two relationship checks every class-scoped handler funnels through:
// mutation requires ownership, reads require enrollment (or ownership).

var (
	ErrClassNotFound  = errors.New("class not found")
	ErrNotClassOwner  = errors.New("you do not own this class")
	ErrNotEnrolled    = errors.New("you are not enrolled in this class")
)

// FindClass loads a class or reports ErrClassNotFound.
func FindClass(db *gorm.DB, classID uuid.UUID) (*classModel.ClassModel, error) {
	var cls classModel.ClassModel
	if err := db.First(&cls, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &cls, nil
}

// EnsureClassTeacher verifies the caller owns the class. Ownership is always
// re-checked against the parent row, never cached on the child.
func EnsureClassTeacher(db *gorm.DB, classID, teacherID uuid.UUID) (*classModel.ClassModel, error) {
	cls, err := FindClass(db, classID)
	if err != nil {
		return nil, err
	}
	if cls.ClassTeacherID != teacherID {
		return nil, ErrNotClassOwner
	}
	return cls, nil
}

// IsEnrolled reports whether the user has an enrollment row for the class.
func IsEnrolled(db *gorm.DB, classID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&classModel.ClassStudentModel{}).
		Where("class_student_class_id = ? AND class_student_user_id = ?", classID, userID).
		Count(&count).Error
	return count > 0, err
}

// EnsureEnrolled verifies the student belongs to the class.
func EnsureEnrolled(db *gorm.DB, classID, userID uuid.UUID) (*classModel.ClassModel, error) {
	cls, err := FindClass(db, classID)
	if err != nil {
		return nil, err
	}
	ok, err := IsEnrolled(db, classID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnrolled
	}
	return cls, nil
}

// HTTPError maps guard sentinels onto the response envelope; anything else is a 500.
func HTTPError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	case errors.Is(err, ErrNotClassOwner):
		return helper.JsonError(c, fiber.StatusForbidden, "You do not own this class")
	case errors.Is(err, ErrNotEnrolled):
		return helper.JsonError(c, fiber.StatusForbidden, "You are not enrolled in this class")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

// EnsureClassReader allows the owning teacher, an enrolled student, or an admin.
func EnsureClassReader(db *gorm.DB, classID, userID uuid.UUID, role string) (*classModel.ClassModel, error) {
	cls, err := FindClass(db, classID)
	if err != nil {
		return nil, err
	}
	if role == "admin" || cls.ClassTeacherID == userID {
		return cls, nil
	}
	ok, err := IsEnrolled(db, classID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEnrolled
	}
	return cls, nil
}
