// file: internals/features/study/activities/controller/activity_controller.go
package controller

import (
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	actDTO "studypulse_backend/internals/features/study/activities/dto"
	actModel "studypulse_backend/internals/features/study/activities/model"
	helper "studypulse_backend/internals/helpers"
)

type ActivityController struct{ DB *gorm.DB }

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

var validateActivity = validator.New()

// ===================== CREATE =====================
// POST /api/u/activities
func (h *ActivityController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req actDTO.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateActivity.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(userID)
	if err := h.DB.Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to log activity")
	}
	return helper.JsonCreated(c, "Activity logged", m)
}

// ===================== LIST =====================
// GET /api/u/activities — caller's own sessions, most recent first.
func (h *ActivityController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var activities []actModel.ActivityModel
	if err := h.DB.Where("activity_user_id = ?", userID).
		Order("activity_studied_at DESC").Find(&activities).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list activities")
	}
	return helper.JsonOK(c, "ok", activities)
}

// ===================== UPDATE =====================
// PUT /api/u/activities/:id
func (h *ActivityController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	var m actModel.ActivityModel
	if err := h.DB.First(&m, "activity_id = ? AND activity_user_id = ?", activityID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Activity not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load activity")
	}

	var req actDTO.UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validateActivity.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	req.ApplyToModel(&m)

	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update activity")
	}
	return helper.JsonUpdated(c, "Activity updated", m)
}

// ===================== DELETE =====================
// DELETE /api/u/activities/:id
func (h *ActivityController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	activityID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid activity id")
	}

	var m actModel.ActivityModel
	if err := h.DB.First(&m, "activity_id = ? AND activity_user_id = ?", activityID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Activity not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load activity")
	}
	if err := h.DB.Delete(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete activity")
	}
	return helper.JsonDeleted(c, "Activity deleted", fiber.Map{"activity_id": m.ActivityID})
}

// ===================== STATS =====================
// GET /api/u/activities/stats
func (h *ActivityController) Stats(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var activities []actModel.ActivityModel
	if err := h.DB.Where("activity_user_id = ?", userID).Find(&activities).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load activities")
	}
	return helper.JsonOK(c, "ok", BuildStats(activities, time.Now()))
}

// BuildStats aggregates in memory; day buckets cover today and the six days
// before it in the server's local zone, oldest first.
func BuildStats(activities []actModel.ActivityModel, now time.Time) actDTO.ActivityStats {
	stats := actDTO.ActivityStats{
		TotalSessions: len(activities),
		DifficultyCounts: map[string]int{
			actModel.DifficultyEasy:   0,
			actModel.DifficultyMedium: 0,
			actModel.DifficultyHard:   0,
		},
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	byDay := make(map[string]float64, 7)
	for i := 6; i >= 0; i-- {
		byDay[today.AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}

	totalMinutes := 0
	for _, a := range activities {
		totalMinutes += a.ActivityDurationMinutes
		stats.DifficultyCounts[a.ActivityDifficulty]++
		key := a.ActivityStudiedAt.In(now.Location()).Format("2006-01-02")
		if _, ok := byDay[key]; ok {
			byDay[key] += float64(a.ActivityDurationMinutes) / 60
		}
	}
	stats.TotalHours = roundHours(float64(totalMinutes) / 60)

	stats.Last7Days = make([]actDTO.DayBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format("2006-01-02")
		stats.Last7Days = append(stats.Last7Days, actDTO.DayBucket{
			Date:  key,
			Hours: roundHours(byDay[key]),
		})
	}
	return stats
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
