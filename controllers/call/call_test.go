package callControllers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"complaintdesk/callprovider"
	"complaintdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDbSeq uint64

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:calltest%d?mode=memory&cache=shared", atomic.AddUint64(&testDbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDb, err := db.DB()
	require.NoError(t, err)
	sqlDb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDb.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.ComplaintMedia{},
		&models.VideoCall{},
		&models.Notification{},
	))
	return db
}

type fakeProvider struct {
	room       *callprovider.Room
	err        error
	endsPrior  bool
	adminOnly  bool
	callsSeen  int
	lastCmplID uint
}

func (f *fakeProvider) CreateRoom(ctx context.Context, complaintID uint) (*callprovider.Room, error) {
	f.callsSeen++
	f.lastCmplID = complaintID
	if f.err != nil {
		return nil, f.err
	}
	return f.room, nil
}

func (f *fakeProvider) EndsPriorCalls() bool { return f.endsPrior }
func (f *fakeProvider) AdminOnly() bool      { return f.adminOnly }

func seedComplaint(t *testing.T, db *gorm.DB) (*models.User, *models.User, *models.Complaint) {
	t.Helper()
	student := models.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: "STUDENT"}
	require.NoError(t, db.Create(&student).Error)
	admin := models.User{Name: "Warden", Email: "warden@example.com", Password: "x", Role: "ADMIN"}
	require.NoError(t, db.Create(&admin).Error)

	complaint := models.Complaint{
		StudentID:   student.ID,
		Title:       "Broken fan in room 204",
		Category:    "Hostel",
		Description: "The ceiling fan stopped working two days ago.",
		Urgency:     "High",
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(&complaint).Error)
	return &student, &admin, &complaint
}

func TestProvisionCallAdminCreatesCallAndNotification(t *testing.T) {
	db := openTestDb(t)
	student, admin, complaint := seedComplaint(t, db)

	expires := time.Now().Add(24 * time.Hour)
	provider := &fakeProvider{
		room:      &callprovider.Room{ID: "room-abc", Token: "tok", ExpiresAt: expires},
		endsPrior: true,
		adminOnly: true,
	}

	call, room, err := ProvisionCall(db, provider, admin, complaint.ID, models.NotifyCallRequest)
	require.NoError(t, err)
	assert.Equal(t, complaint.ID, provider.lastCmplID)
	assert.Equal(t, "room-abc", call.RoomID)
	assert.Equal(t, "tok", room.Token)
	assert.True(t, call.InitiatedByAdmin)
	assert.Equal(t, models.CallActive, call.Status)

	var active int64
	require.NoError(t, db.Model(&models.VideoCall{}).
		Where("complaint_id = ? AND status = ?", complaint.ID, models.CallActive).
		Count(&active).Error)
	assert.EqualValues(t, 1, active)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", student.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyCallRequest, notifications[0].Type)
	require.NotNil(t, notifications[0].ComplaintID)
	assert.Equal(t, complaint.ID, *notifications[0].ComplaintID)
	assert.Contains(t, notifications[0].Message, complaint.Title)
}

func TestProvisionCallStudentNoNotification(t *testing.T) {
	db := openTestDb(t)
	student, _, complaint := seedComplaint(t, db)

	provider := &fakeProvider{
		room: &callprovider.Room{ID: "room-xyz", URL: "https://calls.example/room-xyz", ExpiresAt: time.Now().Add(time.Hour)},
	}

	call, _, err := ProvisionCall(db, provider, student, complaint.ID, models.NotifyVideoCallRequest)
	require.NoError(t, err)
	assert.False(t, call.InitiatedByAdmin)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestProvisionCallForbiddenForStudentOnAdminOnlyProvider(t *testing.T) {
	db := openTestDb(t)
	student, _, complaint := seedComplaint(t, db)

	provider := &fakeProvider{adminOnly: true}

	_, _, err := ProvisionCall(db, provider, student, complaint.ID, models.NotifyCallRequest)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Zero(t, provider.callsSeen)

	var calls int64
	require.NoError(t, db.Model(&models.VideoCall{}).Count(&calls).Error)
	assert.EqualValues(t, 0, calls)
}

func TestProvisionCallUnknownComplaint(t *testing.T) {
	db := openTestDb(t)
	_, admin, _ := seedComplaint(t, db)

	provider := &fakeProvider{adminOnly: true}

	_, _, err := ProvisionCall(db, provider, admin, 9999, models.NotifyCallRequest)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
	assert.Zero(t, provider.callsSeen, "room must not be created for a missing complaint")
}

func TestProvisionCallDeletedComplaint(t *testing.T) {
	db := openTestDb(t)
	_, admin, complaint := seedComplaint(t, db)
	require.NoError(t, db.Model(complaint).Update("is_deleted", true).Error)

	provider := &fakeProvider{adminOnly: true}

	_, _, err := ProvisionCall(db, provider, admin, complaint.ID, models.NotifyCallRequest)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
}

func TestProvisionCallProviderFailureWritesNothing(t *testing.T) {
	db := openTestDb(t)
	_, admin, complaint := seedComplaint(t, db)

	provider := &fakeProvider{adminOnly: true, err: errors.New("upstream down")}

	_, _, err := ProvisionCall(db, provider, admin, complaint.ID, models.NotifyCallRequest)
	require.Error(t, err)

	var calls, notifications int64
	require.NoError(t, db.Model(&models.VideoCall{}).Count(&calls).Error)
	require.NoError(t, db.Model(&models.Notification{}).Count(&notifications).Error)
	assert.EqualValues(t, 0, calls)
	assert.EqualValues(t, 0, notifications)
}

func TestProvisionCallEndsPriorCalls(t *testing.T) {
	db := openTestDb(t)
	_, admin, complaint := seedComplaint(t, db)

	provider := &fakeProvider{
		room:      &callprovider.Room{ID: "room-1", Token: "t1", ExpiresAt: time.Now().Add(24 * time.Hour)},
		endsPrior: true,
		adminOnly: true,
	}
	first, _, err := ProvisionCall(db, provider, admin, complaint.ID, models.NotifyCallRequest)
	require.NoError(t, err)

	provider.room = &callprovider.Room{ID: "room-2", Token: "t2", ExpiresAt: time.Now().Add(24 * time.Hour)}
	second, _, err := ProvisionCall(db, provider, admin, complaint.ID, models.NotifyCallRequest)
	require.NoError(t, err)

	var prior models.VideoCall
	require.NoError(t, db.First(&prior, first.ID).Error)
	assert.Equal(t, models.CallEnded, prior.Status)
	assert.NotNil(t, prior.EndedAt)

	var active []models.VideoCall
	require.NoError(t, db.Where("complaint_id = ? AND status = ?", complaint.ID, models.CallActive).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestProvisionCallKeepsPriorCallsWhenProviderDoesNot(t *testing.T) {
	db := openTestDb(t)
	student, _, complaint := seedComplaint(t, db)

	provider := &fakeProvider{
		room: &callprovider.Room{ID: "room-1", URL: "https://calls.example/room-1", ExpiresAt: time.Now().Add(time.Hour)},
	}
	_, _, err := ProvisionCall(db, provider, student, complaint.ID, models.NotifyVideoCallRequest)
	require.NoError(t, err)

	provider.room = &callprovider.Room{ID: "room-2", URL: "https://calls.example/room-2", ExpiresAt: time.Now().Add(time.Hour)}
	_, _, err = ProvisionCall(db, provider, student, complaint.ID, models.NotifyVideoCallRequest)
	require.NoError(t, err)

	var active int64
	require.NoError(t, db.Model(&models.VideoCall{}).
		Where("complaint_id = ? AND status = ?", complaint.ID, models.CallActive).
		Count(&active).Error)
	assert.EqualValues(t, 2, active)
}
