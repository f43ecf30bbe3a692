// file: internals/features/users/user/controller/admin_user_controller_test.go
package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aiModel "studypulse_backend/internals/features/ai/model"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	actModel "studypulse_backend/internals/features/study/activities/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	"studypulse_backend/internals/testutil"

	asgModel "studypulse_backend/internals/features/school/assignments/model"
)

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/a/users", testutil.Token(t, teacher), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminListUsersWithRoleFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	admin := testutil.CreateUser(t, db, "Root", "root@example.com", "admin")
	testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")
	testutil.CreateUser(t, db, "Pat", "pat@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/a/users?role=student", testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 2)

	pagination := body["pagination"].(map[string]any)
	assert.Equal(t, 2.0, pagination["total"])
}

func TestAdminDeletePreservesGradingHistory(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	admin := testutil.CreateUser(t, db, "Root", "root@example.com", "admin")
	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	cls := clsModel.ClassModel{
		ClassTeacherID: teacher.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "ADM001",
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&clsModel.ClassStudentModel{
		ClassStudentClassID: cls.ClassID,
		ClassStudentUserID:  student.UserID,
	}).Error)

	a := asgModel.AssignmentModel{
		AssignmentClassID:   cls.ClassID,
		AssignmentTeacherID: teacher.UserID,
		AssignmentTitle:     "Worksheet 3",
	}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&subModel.SubmissionModel{
		SubmissionAssignmentID: a.AssignmentID,
		SubmissionStudentID:    student.UserID,
		SubmissionSubmittedAt:  time.Now(),
	}).Error)

	// private study artifacts that should go with the account
	require.NoError(t, db.Create(&actModel.ActivityModel{
		ActivityUserID:          student.UserID,
		ActivitySubject:         "Math",
		ActivityTopic:           "Quadratics",
		ActivityDurationMinutes: 30,
		ActivityDifficulty:      "easy",
		ActivityStudiedAt:       time.Now(),
	}).Error)
	require.NoError(t, db.Create(&aiModel.NoteModel{
		NoteUserID:  student.UserID,
		NoteTopic:   "Quadratics",
		NoteContent: "notes",
	}).Error)

	resp := testutil.DoJSON(t, app, http.MethodDelete, "/api/a/users/"+student.UserID.String(), testutil.Token(t, admin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&actModel.ActivityModel{}).Where("activity_user_id = ?", student.UserID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&aiModel.NoteModel{}).Where("note_user_id = ?", student.UserID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// grading history survives the account
	require.NoError(t, db.Model(&subModel.SubmissionModel{}).Where("submission_student_id = ?", student.UserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&clsModel.ClassStudentModel{}).Where("class_student_user_id = ?", student.UserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var gone userModel.UserModel
	err := db.First(&gone, "user_id = ?", student.UserID).Error
	assert.Error(t, err)
}
