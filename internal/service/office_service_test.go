package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/drivedesk-api/internal/dto"
	"github.com/noah-isme/drivedesk-api/internal/models"
	"github.com/noah-isme/drivedesk-api/internal/repository"
)

var adminActor = ActivityActor{ID: 1, Role: models.RoleAdmin}

func newOfficeFixture(t *testing.T) (*gorm.DB, OfficeService, *stubActivityRecorder) {
	t.Helper()
	db := setupServiceDB(t)
	activity := &stubActivityRecorder{}
	svc := NewOfficeService(repository.NewOfficeRepository(db), repository.NewUserRepository(db), testValidator(), activity, testLogger())
	return db, svc, activity
}

func TestOfficeServiceCreateOfficeDefaultsPlan(t *testing.T) {
	_, svc, activity := newOfficeFixture(t)

	office, err := svc.CreateOffice(context.Background(), dto.OfficeCreateRequest{Name: "Westside Branch"}, adminActor)
	require.NoError(t, err)
	require.Equal(t, models.PlanBasic, office.SubscriptionPlan)
	require.Equal(t, []string{"office.created"}, activity.actions())

	offices, err := svc.ListOffices(context.Background())
	require.NoError(t, err)
	require.Len(t, offices, 1)
}

func TestOfficeServiceSecretaryLifecycle(t *testing.T) {
	_, svc, _ := newOfficeFixture(t)
	ctx := context.Background()

	office, err := svc.CreateOffice(ctx, dto.OfficeCreateRequest{Name: "Downtown"}, adminActor)
	require.NoError(t, err)

	secretary, err := svc.CreateSecretary(ctx, dto.SecretaryCreateRequest{
		Name: "Sarah Miller", Email: "Sarah@DriveDesk.test", Password: "correct-horse", OfficeID: office.ID,
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "sarah@drivedesk.test", secretary.Email)
	require.Equal(t, models.RoleSecretary, secretary.Role)
	require.NotNil(t, secretary.OfficeID)

	_, err = svc.CreateSecretary(ctx, dto.SecretaryCreateRequest{
		Name: "Sarah Again", Email: "sarah@drivedesk.test", Password: "correct-horse", OfficeID: office.ID,
	}, adminActor)
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.CreateSecretary(ctx, dto.SecretaryCreateRequest{
		Name: "Nobody", Email: "nobody@drivedesk.test", Password: "correct-horse", OfficeID: 999,
	}, adminActor)
	require.ErrorIs(t, err, ErrOfficeNotFound)

	listed, err := svc.ListSecretaries(ctx, &office.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, svc.DeleteSecretary(ctx, secretary.ID, adminActor))
	require.ErrorIs(t, svc.DeleteSecretary(ctx, secretary.ID, adminActor), ErrSecretaryNotFound)
}

func TestOfficeServiceUpdateSubscription(t *testing.T) {
	db, svc, _ := newOfficeFixture(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Subscription{
		Code: "sub_basic", Name: "Starter Pack", Price: 49, Duration: "monthly",
		Features: datatypes.NewJSONSlice([]string{"Email support"}),
	}).Error)

	price := 59.999
	updated, err := svc.UpdateSubscription(ctx, "sub_basic", dto.SubscriptionUpdateRequest{
		Price:    &price,
		Features: []string{"Email support", "Basic reporting"},
	}, adminActor)
	require.NoError(t, err)
	require.Equal(t, 60.0, updated.Price)
	require.Equal(t, "Starter Pack", updated.Name)
	require.Len(t, updated.Features, 2)

	_, err = svc.UpdateSubscription(ctx, "sub_missing", dto.SubscriptionUpdateRequest{Price: &price}, adminActor)
	require.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestOfficeServiceProfileFallsBackToDefaults(t *testing.T) {
	_, svc, _ := newOfficeFixture(t)
	ctx := context.Background()

	profile, err := svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, defaultSchoolProfile.Name, profile.Name)

	saved, err := svc.UpdateProfile(ctx, dto.SchoolProfileRequest{Name: "Atlas Driving", Email: "HELLO@ATLAS.TEST", Country: "Morocco"}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "hello@atlas.test", saved.Email)

	again, err := svc.UpdateProfile(ctx, dto.SchoolProfileRequest{Name: "Atlas Driving School"}, adminActor)
	require.NoError(t, err)
	require.Equal(t, "Atlas Driving School", again.Name)

	profile, err = svc.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Atlas Driving School", profile.Name)
}

func TestAuthServiceLoginIssuesScopedToken(t *testing.T) {
	db := setupServiceDB(t)
	ctx := context.Background()

	office := models.Office{Name: "Downtown"}
	require.NoError(t, db.Create(&office).Error)
	user := models.User{Name: "Sarah Miller", Email: "sarah@drivedesk.test", Role: models.RoleSecretary, OfficeID: &office.ID}
	require.NoError(t, user.SetPassword("correct-horse"))
	require.NoError(t, db.Create(&user).Error)

	svc := NewAuthService(repository.NewUserRepository(db), "signing-secret", time.Hour, testValidator(), testLogger())

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "sarah@drivedesk.test", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "ghost@drivedesk.test", Password: "correct-horse"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.Login(ctx, dto.LoginRequest{Email: "sarah@drivedesk.test", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, int64(3600), res.ExpiresIn)
	require.Equal(t, user.ID, res.User.ID)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("signing-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, "secretary", claims["role"])
	require.Equal(t, float64(office.ID), claims["office_id"])
}
