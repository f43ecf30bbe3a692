// file: internals/features/school/announcements/controller/announcement_controller_test.go
package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	annModel "studypulse_backend/internals/features/school/announcements/model"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	userModel "studypulse_backend/internals/features/users/user/model"
	"studypulse_backend/internals/testutil"
)

func seedAnnouncementClass(t *testing.T, db *gorm.DB) (*userModel.UserModel, *userModel.UserModel, clsModel.ClassModel) {
	t.Helper()
	teacher := testutil.CreateUser(t, db, "Ms. Rivera", "rivera@example.com", "teacher")
	student := testutil.CreateUser(t, db, "Sam", "sam@example.com", "student")
	cls := clsModel.ClassModel{
		ClassTeacherID: teacher.UserID,
		ClassName:      "Algebra I",
		ClassSubject:   "Math",
		ClassCode:      "ANN001",
	}
	require.NoError(t, db.Create(&cls).Error)
	require.NoError(t, db.Create(&clsModel.ClassStudentModel{
		ClassStudentClassID: cls.ClassID,
		ClassStudentUserID:  student.UserID,
	}).Error)
	return teacher, student, cls
}

func TestAnnouncementPostAndReply(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	teacher, student, cls := seedAnnouncementClass(t, db)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		"/api/t/classes/"+cls.ClassID.String()+"/announcements",
		testutil.Token(t, teacher),
		map[string]any{"announcement_text": "Quiz moved to Friday"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := testutil.DecodeBody(t, resp)
	annID := body["data"].(map[string]any)["announcement_id"].(string)

	// enrolled student replies
	resp = testutil.DoJSON(t, app, http.MethodPost,
		"/api/u/classes/"+cls.ClassID.String()+"/announcements/"+annID+"/replies",
		testutil.Token(t, student),
		map[string]any{"text": "Thanks for the heads up"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// the teacher can reply on the same surface
	resp = testutil.DoJSON(t, app, http.MethodPost,
		"/api/u/classes/"+cls.ClassID.String()+"/announcements/"+annID+"/replies",
		testutil.Token(t, teacher),
		map[string]any{"text": "You're welcome"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ann annModel.AnnouncementModel
	require.NoError(t, db.First(&ann, "announcement_id = ?", annID).Error)
	replies, err := ann.Replies()
	require.NoError(t, err)
	require.Len(t, replies, 2)
	assert.Equal(t, "Sam", replies[0].AuthorName)
	assert.Equal(t, "student", replies[0].AuthorRole)
	assert.Equal(t, "teacher", replies[1].AuthorRole)
}

func TestAnnouncementReplyNameIsSnapshot(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	_, student, cls := seedAnnouncementClass(t, db)

	ann := annModel.AnnouncementModel{
		AnnouncementClassID:   cls.ClassID,
		AnnouncementTeacherID: cls.ClassTeacherID,
		AnnouncementText:      "Welcome",
	}
	require.NoError(t, db.Create(&ann).Error)

	resp := testutil.DoJSON(t, app, http.MethodPost,
		"/api/u/classes/"+cls.ClassID.String()+"/announcements/"+ann.AnnouncementID.String()+"/replies",
		testutil.Token(t, student),
		map[string]any{"text": "Hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// a later rename does not rewrite the logged author name
	require.NoError(t, db.Model(student).Update("user_name", "Samuel").Error)

	var got annModel.AnnouncementModel
	require.NoError(t, db.First(&got, "announcement_id = ?", ann.AnnouncementID).Error)
	replies, err := got.Replies()
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "Sam", replies[0].AuthorName)
}

func TestAnnouncementReplyRequiresMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	_, _, cls := seedAnnouncementClass(t, db)

	ann := annModel.AnnouncementModel{
		AnnouncementClassID:   cls.ClassID,
		AnnouncementTeacherID: cls.ClassTeacherID,
		AnnouncementText:      "Members only",
	}
	require.NoError(t, db.Create(&ann).Error)

	outsider := testutil.CreateUser(t, db, "Outsider", "out@example.com", "student")
	resp := testutil.DoJSON(t, app, http.MethodPost,
		"/api/u/classes/"+cls.ClassID.String()+"/announcements/"+ann.AnnouncementID.String()+"/replies",
		testutil.Token(t, outsider),
		map[string]any{"text": "Let me in"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAnnouncementListNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	app := testutil.NewApp(t, db, nil)
	teacher, _, cls := seedAnnouncementClass(t, db)

	for _, text := range []string{"first", "second"} {
		resp := testutil.DoJSON(t, app, http.MethodPost,
			"/api/t/classes/"+cls.ClassID.String()+"/announcements",
			testutil.Token(t, teacher),
			map[string]any{"announcement_text": text})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// force distinct timestamps so the ordering is deterministic
	require.NoError(t, db.Model(&annModel.AnnouncementModel{}).
		Where("announcement_text = ?", "second").
		Update("announcement_created_at", time.Now().Add(time.Minute)).Error)

	resp := testutil.DoJSON(t, app, http.MethodGet,
		"/api/t/classes/"+cls.ClassID.String()+"/announcements",
		testutil.Token(t, teacher), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := testutil.DecodeBody(t, resp)
	views := body["data"].([]any)
	require.Len(t, views, 2)
	first := views[0].(map[string]any)["announcement"].(map[string]any)
	assert.Equal(t, "second", first["announcement_text"])
}
