// file: internals/features/school/classes/controller/class_controller_test.go
package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clsModel "studypulse_backend/internals/features/school/classes/model"
	"studypulse_backend/internals/testutil"
)

func TestClassCreateAndJoinFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	// teacher creates a class and gets a join code back
	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/t/classes", testutil.Token(t, teacher), map[string]any{
		"class_name":    "Algebra I",
		"class_subject": "Math",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	data := body["data"].(map[string]any)
	code := data["class_code"].(string)
	require.Len(t, code, 6)

	// joining with the lowercase form of the code still resolves the class
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/u/classes/join", testutil.Token(t, student), map[string]any{
		"code": " " + string([]byte{code[0] | 0x20}) + code[1:] + " ",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// joining twice is a conflict, and only one enrollment row exists
	resp = testutil.DoJSON(t, app, http.MethodPost, "/api/u/classes/join", testutil.Token(t, student), map[string]any{
		"code": code,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&clsModel.ClassStudentModel{}).
		Where("class_student_user_id = ?", student.UserID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// the student now sees the class in their list
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/classes", testutil.Token(t, student), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = testutil.DecodeBody(t, resp)
	assert.Len(t, body["data"].([]any), 1)
}

func TestClassJoinUnknownCode(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")

	resp := testutil.DoJSON(t, app, http.MethodPost, "/api/u/classes/join", testutil.Token(t, student), map[string]any{
		"code": "NOPE99",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClassDetailAuthorization(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	outsider := testutil.CreateUser(t, db, "Outsider", "out@example.com", "student")
	admin := testutil.CreateUser(t, db, "Root", "root@example.com", "admin")

	cls := clsModel.ClassModel{
		ClassTeacherID: teacher.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "ABC123",
	}
	require.NoError(t, db.Create(&cls).Error)

	// owner reads it
	resp := testutil.DoJSON(t, app, http.MethodGet, "/api/t/classes/"+cls.ClassID.String(), testutil.Token(t, teacher), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// a student who never joined cannot
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/classes/"+cls.ClassID.String(), testutil.Token(t, outsider), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admins can read any class through the user surface
	resp = testutil.DoJSON(t, app, http.MethodGet, "/api/u/classes/"+cls.ClassID.String(), testutil.Token(t, admin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClassMutationRequiresOwnership(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)

	owner := testutil.CreateUser(t, db, "Owner", "owner@example.com", "teacher")
	other := testutil.CreateUser(t, db, "Other", "other@example.com", "teacher")

	cls := clsModel.ClassModel{
		ClassTeacherID: owner.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "ABC124",
	}
	require.NoError(t, db.Create(&cls).Error)

	resp := testutil.DoJSON(t, app, http.MethodPut, "/api/t/classes/"+cls.ClassID.String(), testutil.Token(t, other), map[string]any{
		"class_name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = testutil.DoJSON(t, app, http.MethodDelete, "/api/t/classes/"+cls.ClassID.String(), testutil.Token(t, other), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
