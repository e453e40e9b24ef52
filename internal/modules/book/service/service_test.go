package book

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/book/dto"
	bookRepo "ice.edu/helpinghand/internal/modules/book/repository"
	searchService "ice.edu/helpinghand/internal/modules/search/service"
	userRepo "ice.edu/helpinghand/internal/modules/user/repository"
	"ice.edu/helpinghand/pkg/apperror"
	commonDto "ice.edu/helpinghand/pkg/dto"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serializes concurrent writers, which sqlite cannot handle itself.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&entity.User{}, &entity.Subject{}, &entity.Book{}))
	return db
}

func newTestService(t *testing.T) (BookService, *gorm.DB, *entity.User) {
	t.Helper()

	db := setupTestDB(t)
	users := userRepo.NewUserRepository(db)
	books := bookRepo.NewBookRepository(db)
	search := searchService.NewMeiliSearchService(nil, nil)

	teacher := &entity.User{
		Email:    "teacher@ice.edu",
		Password: "hashed",
		Name:     "Teacher One",
		Role:     entity.RoleTeacher,
	}
	require.NoError(t, users.Create(context.Background(), teacher))

	return NewBookService(books, users, search), db, teacher
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "hashed", Name: email, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createBook(t *testing.T, svc BookService, ownerID uuid.UUID, title string) *dto.BookResponse {
	t.Helper()
	book, err := svc.Create(context.Background(), ownerID, dto.CreateBookRequest{
		Title:      title,
		WriterName: "Some Writer",
		FileURL:    "https://files.ice.edu/" + title + ".pdf",
	})
	require.NoError(t, err)
	return book
}

func TestCreateBook_MissingFields(t *testing.T) {
	svc, db, teacher := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, teacher.ID, dto.CreateBookRequest{Description: strPtr("no title")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "writerName")
	assert.Contains(t, err.Error(), "fileUrl")

	var count int64
	require.NoError(t, db.Model(&entity.Book{}).Count(&count).Error)
	assert.Zero(t, count, "rejected create must not persist a row")
}

func TestCreateBook_SetsOwnerAndDefaults(t *testing.T) {
	svc, _, teacher := newTestService(t)

	book := createBook(t, svc, teacher.ID, "Signals and Systems")

	assert.Equal(t, teacher.ID, book.Book.UploaderID)
	assert.True(t, book.Book.IsActive)
	assert.Zero(t, book.Book.ViewCount)
	assert.Zero(t, book.Book.LikeCount)
	assert.Zero(t, book.Book.DownloadCount)
}

func TestGetBook_IncrementsViewAfterRead(t *testing.T) {
	svc, _, teacher := newTestService(t)
	ctx := context.Background()

	created := createBook(t, svc, teacher.ID, "DSP Primer")

	first, err := svc.Get(ctx, created.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, first.Book.ViewCount, "response carries the pre-increment count")

	second, err := svc.Get(ctx, created.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Book.ViewCount)
}

func TestGetBook_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestListBooks_Pagination(t *testing.T) {
	svc, _, teacher := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		createBook(t, svc, teacher.ID, fmt.Sprintf("Book %02d", i))
	}

	page1, err := svc.List(ctx, commonDto.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, page1.Books, 20)
	assert.Equal(t, int64(25), page1.Pagination.Total)
	assert.Equal(t, 1, page1.Pagination.Page)
	assert.Equal(t, 2, page1.Pagination.TotalPages)

	page2, err := svc.List(ctx, commonDto.ListFilter{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Books, 5)
	assert.Equal(t, 2, page2.Pagination.Page)
}

func TestListBooks_FiltersAndSearch(t *testing.T) {
	svc, db, teacher := newTestService(t)
	ctx := context.Background()

	createBook(t, svc, teacher.ID, "Digital Logic Design")
	b := createBook(t, svc, teacher.ID, "Analog Circuits")
	require.NoError(t, db.Model(&entity.Book{}).
		Where("id = ?", b.Book.ID).
		Update("session", "2023-24").Error)

	inactive := createBook(t, svc, teacher.ID, "Hidden Volume")
	require.NoError(t, db.Model(&entity.Book{}).
		Where("id = ?", inactive.Book.ID).
		Update("is_active", false).Error)

	bySession, err := svc.List(ctx, commonDto.ListFilter{Session: "2023-24"})
	require.NoError(t, err)
	require.Len(t, bySession.Books, 1)
	assert.Equal(t, "Analog Circuits", bySession.Books[0].Book.Title)

	bySearch, err := svc.List(ctx, commonDto.ListFilter{Search: "Logic"})
	require.NoError(t, err)
	require.Len(t, bySearch.Books, 1)
	assert.Equal(t, "Digital Logic Design", bySearch.Books[0].Book.Title)

	all, err := svc.List(ctx, commonDto.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all.Books, 2, "inactive rows are excluded")
}

func TestUpdateBook_OwnershipRules(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	other := createUser(t, db, "other@ice.edu", entity.RoleTeacher)
	admin := createUser(t, db, "boss@ice.edu", entity.RoleAdmin)

	book := createBook(t, svc, owner.ID, "Owned Book")
	newTitle := "Renamed"

	_, err := svc.Update(ctx, other.ID, book.Book.ID, dto.UpdateBookRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	updated, err := svc.Update(ctx, owner.ID, book.Book.ID, dto.UpdateBookRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Book.Title)

	adminTitle := "Admin Renamed"
	updated, err = svc.Update(ctx, admin.ID, book.Book.ID, dto.UpdateBookRequest{Title: &adminTitle})
	require.NoError(t, err)
	assert.Equal(t, "Admin Renamed", updated.Book.Title)
}

func TestUpdateBook_NotFoundBeforeForbidden(t *testing.T) {
	svc, db, _ := newTestService(t)

	other := createUser(t, db, "probe@ice.edu", entity.RoleTeacher)
	title := "x"

	_, err := svc.Update(context.Background(), other.ID, uuid.New(), dto.UpdateBookRequest{Title: &title})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDeleteBook(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	other := createUser(t, db, "other@ice.edu", entity.RoleTeacher)
	book := createBook(t, svc, owner.ID, "Doomed Book")

	err := svc.Delete(ctx, other.ID, book.Book.ID)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner.ID, book.Book.ID))

	_, err = svc.Get(ctx, book.Book.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDownloadBook_IncrementsCounter(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	book := createBook(t, svc, owner.ID, "Downloadable")

	result, err := svc.Download(ctx, book.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Book.FileURL, result.DownloadURL)
	assert.Equal(t, "Downloadable", result.Title)

	var count int
	require.NoError(t, db.Model(&entity.Book{}).
		Select("download_count").
		Where("id = ?", book.Book.ID).
		Scan(&count).Error)
	assert.Equal(t, 1, count)
}

func TestLikeBook_ConcurrentIncrements(t *testing.T) {
	svc, _, owner := newTestService(t)
	ctx := context.Background()

	book := createBook(t, svc, owner.ID, "Popular Book")

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Like(ctx, book.Book.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	final, err := svc.Get(ctx, book.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, n, final.Book.LikeCount, "no increment may be lost")
}

func TestDownloadBook_ConcurrentIncrements(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	book := createBook(t, svc, owner.ID, "Hot Download")

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Download(ctx, book.Book.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int
	require.NoError(t, db.Model(&entity.Book{}).
		Select("download_count").
		Where("id = ?", book.Book.ID).
		Scan(&count).Error)
	assert.Equal(t, n, count, "no increment may be lost")
}

func TestGetBook_ConcurrentViewIncrements(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	book := createBook(t, svc, owner.ID, "Hot Read")

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Get(ctx, book.Book.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var count int
	require.NoError(t, db.Model(&entity.Book{}).
		Select("view_count").
		Where("id = ?", book.Book.ID).
		Scan(&count).Error)
	assert.Equal(t, n, count, "no increment may be lost")
}

func TestUpdateBook_StaleSnapshotKeepsCounters(t *testing.T) {
	svc, db, owner := newTestService(t)
	ctx := context.Background()

	created := createBook(t, svc, owner.ID, "Busy Book")
	repo := bookRepo.NewBookRepository(db)

	// Snapshot read before the counters move, as the update path does.
	stale, err := repo.FindByID(ctx, created.Book.ID)
	require.NoError(t, err)

	_, err = svc.Like(ctx, created.Book.ID)
	require.NoError(t, err)
	_, err = svc.Download(ctx, created.Book.ID)
	require.NoError(t, err)

	stale.Title = "Busy Book (2nd ed)"
	require.NoError(t, repo.Update(ctx, stale))

	after, err := repo.FindByID(ctx, created.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Busy Book (2nd ed)", after.Title)
	assert.Equal(t, 1, after.LikeCount, "like landing between read and write must survive")
	assert.Equal(t, 1, after.DownloadCount, "download landing between read and write must survive")
}

func TestLikeBook_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Like(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func strPtr(s string) *string {
	return &s
}
