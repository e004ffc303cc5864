package services

import (
	"context"
	"testing"
	"time"

	"englishhub/backend/apperr"
	"englishhub/backend/models"
	"englishhub/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()

	registered, err := svc.Auth.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "ana@example.com", registered.User.Email)

	var stats int64
	require.NoError(t, store.DB().Model(&models.UserStats{}).Where("user_id = ?", registered.User.ID).Count(&stats).Error)
	assert.Equal(t, int64(1), stats)

	user, err := store.Users.GetByID(ctx, nil, registered.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.Password)

	loggedIn, err := svc.Auth.Login(ctx, LoginInput{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)

	identity, err := svc.Auth.VerifyToken(ctx, "Bearer "+loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, identity.ID)
	assert.Equal(t, "user", identity.Role)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Auth.Register(ctx, RegisterInput{Email: "x@example.com", Password: "secret1"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Auth.Register(ctx, RegisterInput{Name: "X", Email: "x@example.com", Password: "12345"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Auth.Register(ctx, RegisterInput{Name: "X", Email: "x@example.com", Password: "123456"})
	require.NoError(t, err)
	_, err = svc.Auth.Register(ctx, RegisterInput{Name: "Y", Email: "x@example.com", Password: "123456"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLogin_UniformFailure(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	_, err := svc.Auth.Register(ctx, RegisterInput{Name: "Bo", Email: "bo@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Auth.Login(ctx, LoginInput{Email: "bo@example.com", Password: "nope-nope"})
	_, unknownEmail := svc.Auth.Login(ctx, LoginInput{Email: "who@example.com", Password: "secret1"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(wrongPassword))
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, err = svc.Auth.Login(ctx, LoginInput{Email: "bo@example.com"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestVerifyToken_Failures(t *testing.T) {
	svc, store := newTestServices(t)
	ctx := context.Background()
	user := seedUser(t, store, "tok@example.com")

	messages := map[string]string{}
	for name, header := range map[string]string{
		"missing": "",
		"garbage": "Bearer not.a.token",
	} {
		_, err := svc.Auth.VerifyToken(ctx, header)
		require.Equal(t, apperr.KindAuth, apperr.KindOf(err), name)
		messages[name] = err.Error()
	}

	expiredCfg := *testConfig()
	expiredCfg.JWTTTL = -time.Minute
	expired, err := utils.GenerateJWTToken(user.ID, user.Email, user.Name, &expiredCfg)
	require.NoError(t, err)
	_, err = svc.Auth.VerifyToken(ctx, "Bearer "+expired)
	require.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	messages["expired"] = err.Error()

	assert.Len(t, map[string]bool{
		messages["missing"]: true,
		messages["garbage"]: true,
		messages["expired"]: true,
	}, 3, "each failure has its own message")

	ghost, err := utils.GenerateJWTToken(user.ID+100, "ghost@example.com", "Ghost", testConfig())
	require.NoError(t, err)
	_, err = svc.Auth.VerifyToken(ctx, "Bearer "+ghost)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))
	assert.Equal(t, msgUserNotFound, err.Error())
}

func TestGetProfile(t *testing.T) {
	svc, store := newTestServices(t)
	user := seedUser(t, store, "profile@example.com")

	got, err := svc.Auth.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Auth.GetProfile(context.Background(), user.ID+1)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
