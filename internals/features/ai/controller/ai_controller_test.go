// file: internals/features/ai/controller/ai_controller_test.go
package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiModel "studypulse_backend/internals/features/ai/model"
	actModel "studypulse_backend/internals/features/study/activities/model"
	"studypulse_backend/internals/services/aigen"
	"studypulse_backend/internals/testutil"
)

func TestGenerateNote(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, aigen.StaticGenerator{Reply: "# Quadratics\n- roots\n- vertex"})

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/notes", testutil.Token(t, student), map[string]any{
		"topic": "Quadratics",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Quadratics", data["note_topic"])
	assert.Contains(t, data["note_content"], "roots")

	// listing is owner-scoped
	other := testutil.CreateUser(t, db, "Pat", "pat@example.com", "student")
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/ai/notes", testutil.Token(t, other), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DecodeBody(t, resp)["data"].([]any), 0)
}

func TestGenerateFailsUpstream(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, aigen.StaticGenerator{Err: aigen.ErrUpstream})

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/notes", testutil.Token(t, student), map[string]any{
		"topic": "Quadratics",
	})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Equal(t, "UPSTREAM_ERROR", body["error_code"])

	// nothing was stored
	var count int64
	require.NoError(t, db.Model(&aiModel.NoteModel{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestQuizScoreClampsToQuestionCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, aigen.StaticGenerator{Reply: `[{"question":"q1","options":["a","b","c","d"],"answer":"a"}]`})

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/quizzes", testutil.Token(t, student), map[string]any{
		"topic":          "Quadratics",
		"question_count": 5,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	quizID := testutil.DecodeBody(t, resp)["data"].(map[string]any)["quiz_id"].(string)

	resp = testutil.DoJSON(t, app, http.MethodPut, "/api/u/ai/quizzes/"+quizID+"/score", testutil.Token(t, student), map[string]any{
		"score": 9,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quiz aiModel.QuizModel
	require.NoError(t, db.First(&quiz, "quiz_id = ?", quizID).Error)
	require.NotNil(t, quiz.QuizScore)
	assert.Equal(t, 5, *quiz.QuizScore)
}

func TestChatAppendsExchangeToLog(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, aigen.StaticGenerator{Reply: "The vertex is at -b/2a."})

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/chat", testutil.Token(t, student), map[string]any{
		"messages": []map[string]any{
			{"role": "user", "content": "Where is the vertex of a parabola?"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Contains(t, body["data"].(map[string]any)["reply"], "vertex")

	var messages []aiModel.ChatMessageModel
	require.NoError(t, db.Where("chat_message_user_id = ?", student.UserID).
		Order("chat_message_created_at ASC").Find(&messages).Error)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].ChatMessageRole)
	assert.Equal(t, "assistant", messages[1].ChatMessageRole)
}

func TestInsightNeedsActivities(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, aigen.StaticGenerator{Reply: "Keep up the daily sessions."})

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/insights", testutil.Token(t, student), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NoError(t, db.Create(&actModel.ActivityModel{
		ActivityUserID:          student.UserID,
		ActivitySubject:         "Math",
		ActivityTopic:           "Quadratics",
		ActivityDurationMinutes: 60,
		ActivityDifficulty:      "medium",
		ActivityStudiedAt:       time.Now(),
	}).Error)

	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/u/ai/insights", testutil.Token(t, student), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Contains(t, body["data"].(map[string]any)["insight_content"], "daily")
}
