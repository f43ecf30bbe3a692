// file: internals/features/school/submissions/controller/submission_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	asgModel "studypulse_backend/internals/features/school/assignments/model"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	"studypulse_backend/internals/testutil"
)

type fixture struct {
	teacher *userModel.UserModel
	student *userModel.UserModel
	class   clsModel.ClassModel
}

func seedClass(t *testing.T, db *gorm.DB) fixture {
	t.Helper()
	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	cls := clsModel.ClassModel{
		ClassTeacherID: teacher.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "SUB001",
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&clsModel.ClassStudentModel{
		ClassStudentClassID: cls.ClassID,
		ClassStudentUserID:  student.UserID,
	}).Error)
	return fixture{teacher: teacher, student: student, class: cls}
}

func seedAssignment(t *testing.T, db *gorm.DB, f fixture, due *time.Time, maxMarks *int) asgModel.AssignmentModel {
	t.Helper()
	a := asgModel.AssignmentModel{
		AssignmentClassID:   f.class.ClassID,
		AssignmentTeacherID: f.teacher.UserID,
		AssignmentTitle:     "Worksheet 3",
		AssignmentDueAt:     due,
		AssignmentMaxMarks:  maxMarks,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func submitForm(t *testing.T, app *fiber.App, path, token, answer string) *http.Response {
	t.Helper()
	form := url.Values{"answer_text": {answer}}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func TestSubmitBeforeAndAfterDueDate(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)

	open := time.Now().Add(1 * time.Hour)
	closed := time.Now().Add(-1 * time.Second)

	openA := seedAssignment(t, db, f, &open, nil)
	closedA := seedAssignment(t, db, f, &closed, nil)

	token := testutil.Token(t, f.student)
	base := "/api/u/classes/" + f.class.ClassID.String() + "/assignments/"

	resp := submitForm(t, app, base+openA.AssignmentID.String()+"/submit", token, "my answer")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = submitForm(t, app, base+closedA.AssignmentID.String()+"/submit", token, "too late")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestResubmitKeepsSingleRowAndClearsGrade(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)
	a := seedAssignment(t, db, f, nil, nil)

	token := testutil.Token(t, f.student)
	path := "/api/u/classes/" + f.class.ClassID.String() + "/assignments/" + a.AssignmentID.String() + "/submit"

	resp := submitForm(t, app, path, token, "first draft")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// a grade lands in between
	marks := 7
	require.NoError(t, db.Model(&subModel.SubmissionModel{}).
		Where("submission_assignment_id = ?", a.AssignmentID).
		Update("submission_marks", &marks).Error)

	resp = submitForm(t, app, path, token, "second draft")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rows []subModel.SubmissionModel
	require.NoError(t, db.Where("submission_assignment_id = ?", a.AssignmentID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, "second draft", *rows[0].SubmissionAnswerText)
	assert.Nil(t, rows[0].SubmissionMarks)
}

func TestUnsendSubmission(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)
	a := seedAssignment(t, db, f, nil, nil)

	token := testutil.Token(t, f.student)
	base := "/api/u/classes/" + f.class.ClassID.String() + "/assignments/" + a.AssignmentID.String()

	resp := submitForm(t, app, base+"/submit", token, "answer")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, base+"/unsend", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&subModel.SubmissionModel{}).
		Where("submission_assignment_id = ?", a.AssignmentID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// nothing left to unsend
	resp = testutil.DoJSON(t, app, http.MethodDelete, base+"/unsend", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGradeClampsToAssignmentRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)

	maxMarks := 10
	due := time.Now().Add(-1 * time.Hour)
	a := seedAssignment(t, db, f, &due, &maxMarks)

	sub := subModel.SubmissionModel{
		SubmissionAssignmentID: a.AssignmentID,
		SubmissionStudentID:    f.student.UserID,
		SubmissionSubmittedAt:  time.Now().Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(&sub).Error)

	token := testutil.Token(t, f.teacher)
	path := "/api/t/classes/" + f.class.ClassID.String() +
		"/assignments/" + a.AssignmentID.String() +
		"/submissions/" + sub.SubmissionID.String() + "/marks"

	// negative clamps up to zero; grading after the due date is allowed
	resp := testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]any{"marks": -5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got subModel.SubmissionModel
	require.NoError(t, db.First(&got, "submission_id = ?", sub.SubmissionID).Error)
	assert.Equal(t, 0, *got.SubmissionMarks)

	// above the maximum clamps down
	resp = testutil.DoJSON(t, app, http.MethodPut, path, token, map[string]any{"marks": 110})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&got, "submission_id = ?", sub.SubmissionID).Error)
	assert.Equal(t, 10, *got.SubmissionMarks)
}

func TestGradeWithNilMaxClampsToZero(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)
	a := seedAssignment(t, db, f, nil, nil)

	sub := subModel.SubmissionModel{
		SubmissionAssignmentID: a.AssignmentID,
		SubmissionStudentID:    f.student.UserID,
		SubmissionSubmittedAt:  time.Now(),
	}
	require.NoError(t, db.Create(&sub).Error)

	path := "/api/t/classes/" + f.class.ClassID.String() +
		"/assignments/" + a.AssignmentID.String() +
		"/submissions/" + sub.SubmissionID.String() + "/marks"

	resp := testutil.DoJSON(t, app, http.MethodPut, path, testutil.Token(t, f.teacher), map[string]any{"marks": 8})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got subModel.SubmissionModel
	require.NoError(t, db.First(&got, "submission_id = ?", sub.SubmissionID).Error)
	assert.Equal(t, 0, *got.SubmissionMarks)
}

func TestSubmitRequiresEnrollment(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	f := seedClass(t, db)
	a := seedAssignment(t, db, f, nil, nil)

	outsider := testutil.CreateUser(t, db, "Outsider", "out@example.com", "student")
	path := "/api/u/classes/" + f.class.ClassID.String() + "/assignments/" + a.AssignmentID.String() + "/submit"

	resp := submitForm(t, app, path, testutil.Token(t, outsider), "sneaky")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
