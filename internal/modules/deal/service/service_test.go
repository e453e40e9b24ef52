package deal

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/deal/dto"
	dealRepo "ice.edu/helpinghand/internal/modules/deal/repository"
	"ice.edu/helpinghand/pkg/apperror"
)

func newTestService(t *testing.T) (DealService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.StudentDeal{}))
	return NewDealService(dealRepo.NewDealRepository(db)), db
}

func TestCreateDeal_MissingFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), dto.CreateDealRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "affiliateUrl")
}

func TestListDeals_HidesExpiredAndInactive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	_, err := svc.Create(ctx, dto.CreateDealRequest{
		Title: "Expired Laptop Deal", AffiliateURL: "https://shop.example/1", ExpiresAt: &past,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateDealRequest{
		Title: "Active Laptop Deal", AffiliateURL: "https://shop.example/2", ExpiresAt: &future,
	})
	require.NoError(t, err)

	forever, err := svc.Create(ctx, dto.CreateDealRequest{
		Title: "Evergreen Deal", AffiliateURL: "https://shop.example/3",
	})
	require.NoError(t, err)

	off := false
	_, err = svc.Update(ctx, forever.ID, dto.UpdateDealRequest{IsActive: &off})
	require.NoError(t, err)

	deals, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "Active Laptop Deal", deals[0].Title)

	var total int64
	require.NoError(t, db.Model(&entity.StudentDeal{}).Count(&total).Error)
	assert.Equal(t, int64(3), total, "hidden rows stay in the table")
}

func TestUpdateDeal_PatchesOnlyProvidedFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	price := 99.0
	deal, err := svc.Create(ctx, dto.CreateDealRequest{
		Title:        "Headphones",
		AffiliateURL: "https://shop.example/h",
		DealPrice:    &price,
	})
	require.NoError(t, err)

	newTitle := "Headphones Pro"
	updated, err := svc.Update(ctx, deal.ID, dto.UpdateDealRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Headphones Pro", updated.Title)
	require.NotNil(t, updated.DealPrice)
	assert.Equal(t, 99.0, *updated.DealPrice)
	assert.Equal(t, "https://shop.example/h", updated.AffiliateURL)
}

func TestDeleteDeal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	deal, err := svc.Create(ctx, dto.CreateDealRequest{
		Title: "Temp", AffiliateURL: "https://shop.example/t",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, deal.ID))
	assert.ErrorIs(t, svc.Delete(ctx, deal.ID), apperror.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), apperror.ErrNotFound)
}
