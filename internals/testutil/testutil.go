// file: internals/testutil/testutil.go
// Shared scaffolding for handler tests: an in-memory database migrated from
// the real models and a fully routed app with inert external services.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"studypulse_backend/internals/configs"
	aiModel "studypulse_backend/internals/features/ai/model"
	annModel "studypulse_backend/internals/features/school/announcements/model"
	asgModel "studypulse_backend/internals/features/school/assignments/model"
	clsModel "studypulse_backend/internals/features/school/classes/model"
	matModel "studypulse_backend/internals/features/school/materials/model"
	subModel "studypulse_backend/internals/features/school/submissions/model"
	actModel "studypulse_backend/internals/features/study/activities/model"
	authModel "studypulse_backend/internals/features/users/auth/model"
	authService "studypulse_backend/internals/features/users/auth/service"
	userModel "studypulse_backend/internals/features/users/user/model"
	route "studypulse_backend/internals/route"
	"studypulse_backend/internals/services/aigen"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

func init() {
	configs.JWTSecret = "test-secret"
	configs.JWTRefreshSecret = "test-refresh-secret"
}

// NewTestDB opens a private in-memory database and migrates the real models.
// The notifications table is postgres-only (text[]) and is not migrated here;
// tests run with a nop notifier.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklistModel{},
		&clsModel.ClassModel{},
		&clsModel.ClassStudentModel{},
		&asgModel.AssignmentModel{},
		&subModel.SubmissionModel{},
		&annModel.AnnouncementModel{},
		&matModel.MaterialModel{},
		&actModel.ActivityModel{},
		&aiModel.NoteModel{},
		&aiModel.QuizModel{},
		&aiModel.ChatMessageModel{},
		&aiModel.InsightModel{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// NewApp wires the full route table over the test database.
func NewApp(t *testing.T, db *gorm.DB, gen aigen.Generator) *fiber.App {
	t.Helper()
	if gen == nil {
		gen = aigen.StaticGenerator{Reply: "generated text"}
	}

	app := fiber.New()
	route.SetupRoutes(app, db, route.Deps{
		Store:    storage.NewLocalStore(t.TempDir(), "/uploads"),
		Notifier: notifier.NopNotifier{},
		Gen:      gen,
	})
	return app
}

// CreateUser seeds an account with a bcrypt password of "password123".
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) *userModel.UserModel {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := userModel.UserModel{
		UserName:     name,
		UserEmail:    email,
		UserPassword: string(hash),
		UserRole:     role,
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return &u
}

// Token mints a valid access token for a seeded user.
func Token(t *testing.T, u *userModel.UserModel) string {
	t.Helper()
	signed, err := authService.IssueAccessToken(u, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

// DoJSON performs a JSON request against the app under test.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// DecodeBody unmarshals a response envelope into a generic map.
func DecodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode body %q: %v", raw, err)
	}
	return out
}
