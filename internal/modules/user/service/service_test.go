package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"ice.edu/helpinghand/internal/bootstrap"
	"ice.edu/helpinghand/internal/entity"
	"ice.edu/helpinghand/internal/modules/user/dto"
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

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.SocialLink{},
		&entity.SiteSetting{},
	))
	return db
}

func newTestService(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	repo := userRepo.NewUserRepository(db)
	seeder := bootstrap.NewSeeder(db)

	// nil redis client disables login rate limiting in tests
	svc := NewUserService(repo, seeder, nil, "test-secret", time.Hour, time.Second)
	return svc, db
}

func TestLogin_SeedsAndAuthenticatesDefaultAdmin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Login(ctx, dto.LoginRequest{
		Email:    bootstrap.DefaultAdminEmail,
		Password: bootstrap.DefaultAdminPassword,
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.NotEmpty(t, token)

	resolved := svc.ResolveSession(ctx, token)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    bootstrap.DefaultAdminEmail,
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "ghost@ice.edu",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)

	user, _, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "Admin@ICE.edu",
		Password: bootstrap.DefaultAdminPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, bootstrap.DefaultAdminEmail, user.Email)
}

func TestResolveSession_InvalidTokens(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.Nil(t, svc.ResolveSession(ctx, ""))
	assert.Nil(t, svc.ResolveSession(ctx, "not-a-jwt"))
}

func TestResolveSession_RejectsForeignSignature(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	// Sign a token with a different secret against the same user table.
	foreign := NewUserService(userRepo.NewUserRepository(db), bootstrap.NewSeeder(db),
		nil, "other-secret", time.Hour, time.Second)

	_, token, err := foreign.Login(ctx, dto.LoginRequest{
		Email:    bootstrap.DefaultAdminEmail,
		Password: bootstrap.DefaultAdminPassword,
	})
	require.NoError(t, err)

	assert.NotNil(t, foreign.ResolveSession(ctx, token))
	assert.Nil(t, svc.ResolveSession(ctx, token))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    "new@ice.edu",
		Password: "secret123",
		Name:     "New Teacher",
		Role:     entity.RoleTeacher,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleTeacher, created.Role)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    "new@ice.edu",
		Password: "secret456",
		Name:     "Imposter",
		Role:     entity.RoleTeacher,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Contains(t, err.Error(), "email already in use")
}

func TestCreateUser_PasswordIsHashed(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Email:    "hashme@ice.edu",
		Password: "plaintext1",
		Name:     "Hash Me",
		Role:     entity.RoleTeacher,
	})
	require.NoError(t, err)

	var stored entity.User
	require.NoError(t, db.Where("id = ?", created.ID).First(&stored).Error)
	assert.NotEqual(t, "plaintext1", stored.Password)
	assert.NotEmpty(t, stored.Password)
}

func TestDeleteUser_CannotDeleteSelf(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	admin := &entity.User{Email: "root@ice.edu", Password: "hashed", Name: "Root", Role: entity.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)

	err := svc.DeleteUser(ctx, admin.ID, admin.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)
	assert.Contains(t, err.Error(), "cannot delete your own account")
}

func TestDeleteUser_RemovesTarget(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	admin := &entity.User{Email: "root@ice.edu", Password: "hashed", Name: "Root", Role: entity.RoleAdmin}
	target := &entity.User{Email: "bye@ice.edu", Password: "hashed", Name: "Bye", Role: entity.RoleTeacher}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(target).Error)

	require.NoError(t, svc.DeleteUser(ctx, admin.ID, target.ID))

	err := svc.DeleteUser(ctx, admin.ID, target.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSeed_ReportsWhetherAdminWasCreated(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, created)
}
