package notice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/notice/dto"
	noticeRepo "ice.edu/helpinghand/internal/modules/notice/repository"
	userRepo "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Notice{}))
	return db
}

func newTestService(t *testing.T) (NoticeService, *gorm.DB, *entity.User) {
	t.Helper()

	db := setupTestDB(t)
	users := userRepo.NewUserRepository(db)
	notices := noticeRepo.NewNoticeRepository(db)

	creator := &entity.User{
		Email:    "office@ice.edu",
		Password: "hashed",
		Name:     "Office",
		Role:     entity.RoleAdmin,
	}
	require.NoError(t, users.Create(context.Background(), creator))

	return NewNoticeService(notices, users), db, creator
}

func TestCreateNotice_MissingFields(t *testing.T) {
	svc, _, creator := newTestService(t)

	_, err := svc.Create(context.Background(), creator.ID, dto.CreateNoticeRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "content")
}

func TestCreateNotice_SanitizesContent(t *testing.T) {
	svc, _, creator := newTestService(t)

	notice, err := svc.Create(context.Background(), creator.ID, dto.CreateNoticeRequest{
		Title:   "Exam Schedule",
		Content: `<p>Exams start Monday.</p><script>alert("xss")</script>`,
	})
	require.NoError(t, err)
	assert.Contains(t, notice.Notice.Content, "Exams start Monday.")
	assert.NotContains(t, notice.Notice.Content, "<script>")
	assert.NotContains(t, notice.Notice.Content, "alert")
}

func TestCreateNotice_NormalizesPriority(t *testing.T) {
	svc, _, creator := newTestService(t)
	ctx := context.Background()

	high, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Urgent", Content: "now", Priority: "high",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityHigh, high.Notice.Priority)

	unknown, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Whatever", Content: "later", Priority: "bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriorityNormal, unknown.Notice.Priority)
}

func TestListNotices_FiltersExpiredAndInactive(t *testing.T) {
	svc, db, creator := newTestService(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	_, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Expired", Content: "old", ExpireAt: &past,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Current", Content: "new", ExpireAt: &future,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Evergreen", Content: "always",
	})
	require.NoError(t, err)

	hidden, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Hidden", Content: "off",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&entity.Notice{}).
		Where("id = ?", hidden.Notice.ID).
		Update("is_active", false).Error)

	notices, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, notices, 2)
	titles := []string{notices[0].Notice.Title, notices[1].Notice.Title}
	assert.Contains(t, titles, "Current")
	assert.Contains(t, titles, "Evergreen")
}

func TestListNotices_HighPriorityFirst(t *testing.T) {
	svc, _, creator := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Routine", Content: "x", Priority: entity.PriorityNormal,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Minor", Content: "x", Priority: entity.PriorityLow,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Critical", Content: "x", Priority: entity.PriorityHigh,
	})
	require.NoError(t, err)

	notices, err := svc.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, notices, 3)
	assert.Equal(t, "Critical", notices[0].Notice.Title)
	assert.Equal(t, "Routine", notices[1].Notice.Title)
	assert.Equal(t, "Minor", notices[2].Notice.Title)
}

func TestUpdateNotice_OwnershipAndSanitize(t *testing.T) {
	svc, db, creator := newTestService(t)
	ctx := context.Background()

	teacher := &entity.User{Email: "t@ice.edu", Password: "hashed", Name: "T", Role: entity.RoleTeacher}
	require.NoError(t, db.Create(teacher).Error)

	notice, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Editable", Content: "body",
	})
	require.NoError(t, err)

	title := "Nope"
	_, err = svc.Update(ctx, teacher.ID, notice.Notice.ID, dto.UpdateNoticeRequest{Title: &title})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	dirty := `updated <img src=x onerror=alert(1)>`
	updated, err := svc.Update(ctx, creator.ID, notice.Notice.ID, dto.UpdateNoticeRequest{Content: &dirty})
	require.NoError(t, err)
	assert.Contains(t, updated.Notice.Content, "updated")
	assert.NotContains(t, updated.Notice.Content, "onerror")
}

func TestDeleteNotice(t *testing.T) {
	svc, _, creator := newTestService(t)
	ctx := context.Background()

	notice, err := svc.Create(ctx, creator.ID, dto.CreateNoticeRequest{
		Title: "Temp", Content: "x",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, creator.ID, notice.Notice.ID))

	_, err = svc.Get(ctx, notice.Notice.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
