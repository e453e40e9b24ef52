package setting

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	settingRepo "ice.edu/helpinghand/internal/modules/setting/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

func newTestService(t *testing.T) SettingService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.SiteSetting{}))
	return NewSettingService(settingRepo.NewSettingRepository(db))
}

func TestUpdateAll_InsertsAndUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	settings, err := svc.UpdateAll(ctx, map[string]string{
		"siteName":    "Helping Hand",
		"bkashNumber": "0123456789",
	})
	require.NoError(t, err)
	assert.Equal(t, "Helping Hand", settings["siteName"])
	assert.Equal(t, "0123456789", settings["bkashNumber"])

	// Same key again updates in place instead of erroring.
	settings, err = svc.UpdateAll(ctx, map[string]string{
		"siteName": "Helping Hand v2",
	})
	require.NoError(t, err)
	assert.Equal(t, "Helping Hand v2", settings["siteName"])
	assert.Equal(t, "0123456789", settings["bkashNumber"], "untouched keys survive")

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateAll_RejectsEmptyInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateAll(ctx, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = svc.UpdateAll(ctx, map[string]string{"": "value"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGetAll_EmptyIsEmptyMap(t *testing.T) {
	svc := newTestService(t)

	settings, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, settings)
	assert.Empty(t, settings)
}
