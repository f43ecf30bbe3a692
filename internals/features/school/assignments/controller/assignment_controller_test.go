// file: internals/features/school/assignments/controller/assignment_controller_test.go
package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	asgModel "studypulse_backend/internals/features/school/assignments/model"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	"studypulse_backend/internals/testutil"
)

func seedEnrolledClass(t *testing.T, db *gorm.DB) (*userModel.UserModel, *userModel.UserModel, clsModel.ClassModel) {
	t.Helper()
	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")
	cls := clsModel.ClassModel{
		ClassTeacherID: teacher.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "ASG001",
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&clsModel.ClassStudentModel{
		ClassStudentClassID: cls.ClassID,
		ClassStudentUserID:  student.UserID,
	}).Error)
	return teacher, student, cls
}

func TestCreateAssignmentJSON(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	teacher, _, cls := seedEnrolledClass(t, db)

	due := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	resp := testutil.DoJSON(t, app, http.MethodPost,
		"/api/t/classes/"+cls.ClassID.String()+"/assignments",
		testutil.Token(t, teacher),
		map[string]any{
			"assignment_title":        "Worksheet 3",
			"assignment_instructions": "Problems 1 through 10",
			"assignment_due_at":       due,
			"assignment_max_marks":    20,
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&asgModel.AssignmentModel{}).
		Where("assignment_class_id = ?", cls.ClassID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStudentViewJoinsOwnSubmission(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	teacher, student, cls := seedEnrolledClass(t, db)

	past := time.Now().Add(-1 * time.Hour)
	future := time.Now().Add(1 * time.Hour)

	closed := asgModel.AssignmentModel{
		AssignmentClassID:   cls.ClassID,
		AssignmentTeacherID: teacher.UserID,
		AssignmentTitle:     "Closed one",
		AssignmentDueAt:     &past,
	}
	open := asgModel.AssignmentModel{
		AssignmentClassID:   cls.ClassID,
		AssignmentTeacherID: teacher.UserID,
		AssignmentTitle:     "Open one",
		AssignmentDueAt:     &future,
	}
	require.NoError(t, db.Create(&closed).Error)
	require.NoError(t, db.Create(&open).Error)

	answer := "done early"
	require.NoError(t, db.Create(&subModel.SubmissionModel{
		SubmissionAssignmentID: closed.AssignmentID,
		SubmissionStudentID:    student.UserID,
		SubmissionAnswerText:   &answer,
		SubmissionSubmittedAt:  time.Now().Add(-2 * time.Hour),
	}).Error)

	resp := testutil.DoJSON(t, app, http.MethodGet,
		"/api/u/classes/"+cls.ClassID.String()+"/assignments",
		testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.DecodeBody(t, resp)
	views := body["data"].([]any)
	require.Len(t, views, 2)

	byTitle := map[string]map[string]any{}
	for _, v := range views {
		view := v.(map[string]any)
		title := view["assignment"].(map[string]any)["assignment_title"].(string)
		byTitle[title] = view
	}

	assert.True(t, byTitle["Closed one"]["closed"].(bool))
	assert.True(t, byTitle["Closed one"]["submitted"].(bool))
	assert.NotNil(t, byTitle["Closed one"]["submission"])

	assert.False(t, byTitle["Open one"]["closed"].(bool))
	assert.False(t, byTitle["Open one"]["submitted"].(bool))
	assert.Nil(t, byTitle["Open one"]["submission"])
}

func TestAssignmentMutationIsTeacherScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	teacher, student, cls := seedEnrolledClass(t, db)

	a := asgModel.AssignmentModel{
		AssignmentClassID:   cls.ClassID,
		AssignmentTeacherID: teacher.UserID,
		AssignmentTitle:     "Worksheet 3",
	}
	require.NoError(t, db.Create(&a).Error)

	// students are blocked at the group boundary, before any handler runs
	resp := testutil.DoJSON(t, app, http.MethodPut,
		"/api/t/classes/"+cls.ClassID.String()+"/assignments/"+a.AssignmentID.String(),
		testutil.Token(t, student),
		map[string]any{"assignment_title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodPut,
		"/api/t/classes/"+cls.ClassID.String()+"/assignments/"+a.AssignmentID.String(),
		testutil.Token(t, teacher),
		map[string]any{"assignment_title": "Worksheet 3 revised"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got asgModel.AssignmentModel
	require.NoError(t, db.First(&got, "assignment_id = ?", a.AssignmentID).Error)
	assert.Equal(t, "Worksheet 3 revised", got.AssignmentTitle)
}
