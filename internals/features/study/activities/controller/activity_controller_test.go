// file: internals/features/study/activities/controller/activity_controller_test.go
package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	actController "studypulse_backend/internals/features/study/activities/controller"
	actModel "studypulse_backend/internals/features/study/activities/model"
	"studypulse_backend/internals/testutil"
)

func TestBuildStats(t *testing.T) {
	now := time.Date(2025, 1, 10, 15, 0, 0, 0, time.UTC)

	activities := []actModel.ActivityModel{
		{ActivitySubject: "Math", ActivityDurationMinutes: 90, ActivityDifficulty: "hard", ActivityStudiedAt: now.Add(-2 * time.Hour)},
		{ActivitySubject: "Math", ActivityDurationMinutes: 30, ActivityDifficulty: "easy", ActivityStudiedAt: now.AddDate(0, 0, -1)},
		{ActivitySubject: "History", ActivityDurationMinutes: 60, ActivityDifficulty: "medium", ActivityStudiedAt: now.AddDate(0, 0, -6)},
		// outside the trailing window, still counted in the totals
		{ActivitySubject: "History", ActivityDurationMinutes: 120, ActivityDifficulty: "medium", ActivityStudiedAt: now.AddDate(0, 0, -10)},
	}

	stats := actController.BuildStats(activities, now)

	assert.Equal(t, 4, stats.TotalSessions)
	assert.Equal(t, 5.0, stats.TotalHours)
	assert.Equal(t, 1, stats.DifficultyCounts["easy"])
	assert.Equal(t, 2, stats.DifficultyCounts["medium"])
	assert.Equal(t, 1, stats.DifficultyCounts["hard"])

	require.Len(t, stats.Last7Days, 7)
	assert.Equal(t, "2025-01-04", stats.Last7Days[0].Date)
	assert.Equal(t, 1.0, stats.Last7Days[0].Hours)
	assert.Equal(t, "2025-01-09", stats.Last7Days[5].Date)
	assert.Equal(t, 0.5, stats.Last7Days[5].Hours)
	assert.Equal(t, "2025-01-10", stats.Last7Days[6].Date)
	assert.Equal(t, 1.5, stats.Last7Days[6].Hours)
}

func TestBuildStatsEmpty(t *testing.T) {
	stats := actController.BuildStats(nil, time.Now())
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, 0.0, stats.TotalHours)
	require.Len(t, stats.Last7Days, 7)
	for _, b := range stats.Last7Days {
		assert.Equal(t, 0.0, b.Hours)
	}
}

func TestActivityCrudIsOwnerScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	owner := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")
	other := testutil.CreateUser(t, db, "Pat", "pat@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/activities", testutil.Token(t, owner), map[string]any{
		"activity_subject":          "Math",
		"activity_topic":            "Quadratics",
		"activity_duration_minutes": 45,
		"activity_difficulty":       "hard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	activityID := body["data"].(map[string]any)["activity_id"].(string)

	// another student cannot see or touch it
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/activities", testutil.Token(t, other), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = testutil.DecodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 0)

	resp = testutil.DoJSON(t, app, http.MethodDelete, "/api/u/activities/"+activityID, testutil.Token(t, other), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, "/api/u/activities/"+activityID, testutil.Token(t, owner), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestActivityStatsEndpoint(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")
	require.NoError(t, db.Create(&actModel.ActivityModel{
		ActivityUserID:          student.UserID,
		ActivitySubject:         "Math",
		ActivityTopic:           "Quadratics",
		ActivityDurationMinutes: 120,
		ActivityDifficulty:      "medium",
		ActivityStudiedAt:       time.Now(),
	}).Error)

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/u/activities/stats", testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, 2.0, data["total_hours"])
	assert.Len(t, data["last_7_days"].([]any), 7)
}
