package complaintControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"complaintdesk/config"
	"complaintdesk/database"
	"complaintdesk/middleware"
	"complaintdesk/models"
	"complaintdesk/routers/complaintRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDbSeq uint64

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:complainttest%d?mode=memory&cache=shared", atomic.AddUint64(&testDbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDb.Close() })

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	prevConfig := config.AppConfig
	config.AppConfig = &config.Config{
		JWTKey:    "test-jwt-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}
	t.Cleanup(func() { config.AppConfig = prevConfig })

	app := fiber.New()
	complaintRoutes.SetupComplaintRoutes(app)
	return app, db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "hashed", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func bearerToken(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func jsonRequest(t *testing.T, method, target string, payload interface{}, auth string) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return req
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, resp *http.Response) apiResponse {
	t.Helper()
	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateComplaintNotifiesAdmins(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")
	admin := createTestUser(t, db, "Warden", "warden@example.com", "ADMIN")

	req := jsonRequest(t, "POST", "/complaint/create", fiber.Map{
		"title":       "Broken fan in room 204",
		"category":    "Hostel",
		"description": "The ceiling fan stopped working two days ago.",
		"urgency":     "High",
		"location":    "Block B, Room 204",
	}, bearerToken(t, student))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.True(t, body.Status)

	var complaint models.Complaint
	require.NoError(t, db.Where("student_id = ?", student.ID).First(&complaint).Error)
	assert.Equal(t, models.StatusPending, complaint.Status)
	assert.Equal(t, "Broken fan in room 204", complaint.Title)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", admin.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyNewComplaint, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, "Asha")
}

func TestCreateComplaintValidation(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")

	req := jsonRequest(t, "POST", "/complaint/create", fiber.Map{
		"title":       "ab",
		"description": "too short",
	}, bearerToken(t, student))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestCreateComplaintRequiresAuth(t *testing.T) {
	app, _ := setupTestApp(t)

	req := jsonRequest(t, "POST", "/complaint/create", fiber.Map{
		"title":       "Broken fan in room 204",
		"description": "The ceiling fan stopped working two days ago.",
	}, "")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestComplaintListScopedToOwner(t *testing.T) {
	app, db := setupTestApp(t)
	asha := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")
	ravi := createTestUser(t, db, "Ravi", "ravi@example.com", "STUDENT")

	for i, owner := range []*models.User{asha, asha, ravi} {
		c := models.Complaint{
			StudentID:   owner.ID,
			Title:       fmt.Sprintf("Complaint number %d", i+1),
			Category:    "Hostel",
			Description: "Something in the hostel needs fixing.",
			Urgency:     "Low",
			Status:      models.StatusPending,
		}
		require.NoError(t, db.Create(&c).Error)
	}

	req := jsonRequest(t, "GET", "/complaint/list", nil, bearerToken(t, asha))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	var data struct {
		Complaints []models.Complaint `json:"complaints"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, 2, data.Pagination.Total)
	for _, c := range data.Complaints {
		assert.Equal(t, asha.ID, c.StudentID)
	}
}

func TestUpdateComplaintPendingOnly(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")

	complaint := models.Complaint{
		StudentID:   student.ID,
		Title:       "Wifi keeps dropping",
		Category:    "Internet",
		Description: "The hostel wifi disconnects every few minutes.",
		Urgency:     "Medium",
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(&complaint).Error)

	req := jsonRequest(t, "PUT", "/complaint/update", fiber.Map{
		"complaintId": complaint.ID,
		"title":       "Wifi keeps dropping in Block B",
	}, bearerToken(t, student))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Complaint
	require.NoError(t, db.First(&updated, complaint.ID).Error)
	assert.Equal(t, "Wifi keeps dropping in Block B", updated.Title)

	// Once the complaint moves past Pending, students can no longer edit it
	require.NoError(t, db.Model(&updated).Update("status", models.StatusInProgress).Error)

	req = jsonRequest(t, "PUT", "/complaint/update", fiber.Map{
		"complaintId": complaint.ID,
		"title":       "Another title entirely",
	}, bearerToken(t, student))
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestGetComplaintVisibility(t *testing.T) {
	app, db := setupTestApp(t)
	asha := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")
	ravi := createTestUser(t, db, "Ravi", "ravi@example.com", "STUDENT")
	admin := createTestUser(t, db, "Warden", "warden@example.com", "ADMIN")

	complaint := models.Complaint{
		StudentID:   asha.ID,
		Title:       "Leaking tap in washroom",
		Category:    "Hostel",
		Description: "The washroom tap has been leaking for a week.",
		Urgency:     "Low",
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(&complaint).Error)
	target := fmt.Sprintf("/complaint/%d", complaint.ID)

	resp, err := app.Test(jsonRequest(t, "GET", target, nil, bearerToken(t, asha)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Other students cannot see it
	resp, err = app.Test(jsonRequest(t, "GET", target, nil, bearerToken(t, ravi)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// Admins can
	resp, err = app.Test(jsonRequest(t, "GET", target, nil, bearerToken(t, admin)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestDeleteComplaintRules(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")
	admin := createTestUser(t, db, "Warden", "warden@example.com", "ADMIN")

	complaint := models.Complaint{
		StudentID:   student.ID,
		Title:       "Mess food quality dropped",
		Category:    "Mess",
		Description: "Meals have been cold and undercooked this week.",
		Urgency:     "Medium",
		Status:      models.StatusInProgress,
	}
	require.NoError(t, db.Create(&complaint).Error)
	target := fmt.Sprintf("/complaint/delete/%d", complaint.ID)

	// Students may not delete once work has started
	resp, err := app.Test(jsonRequest(t, "DELETE", target, nil, bearerToken(t, student)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admins may delete at any stage
	resp, err = app.Test(jsonRequest(t, "DELETE", target, nil, bearerToken(t, admin)), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var deleted models.Complaint
	require.NoError(t, db.First(&deleted, complaint.ID).Error)
	assert.True(t, deleted.IsDeleted)
}

func TestAdminUpdateStatusNotifiesStudent(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")
	admin := createTestUser(t, db, "Warden", "warden@example.com", "ADMIN")

	complaint := models.Complaint{
		StudentID:   student.ID,
		Title:       "Broken window latch",
		Category:    "Hostel",
		Description: "The window in room 204 does not close properly.",
		Urgency:     "Low",
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(&complaint).Error)

	req := jsonRequest(t, "PUT", "/complaint/admin/status", fiber.Map{
		"complaintId":     complaint.ID,
		"status":          models.StatusResolved,
		"resolutionNotes": "Latch replaced by maintenance.",
	}, bearerToken(t, admin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Complaint
	require.NoError(t, db.First(&updated, complaint.ID).Error)
	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.Equal(t, "Latch replaced by maintenance.", updated.ResolutionNotes)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", student.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyStatusUpdate, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, models.StatusResolved)
}

func TestAdminRoutesRejectStudents(t *testing.T) {
	app, db := setupTestApp(t)
	student := createTestUser(t, db, "Asha", "asha@example.com", "STUDENT")

	req := jsonRequest(t, "PUT", "/complaint/admin/status", fiber.Map{
		"complaintId": 1,
		"status":      models.StatusResolved,
	}, bearerToken(t, student))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
