package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lightbnb_backend/internal/middleware"
	"lightbnb_backend/internal/model"
	"lightbnb_backend/internal/repository"
	"lightbnb_backend/pkg/utils/cloudflare"
	"lightbnb_backend/pkg/utils/jwt"
)

type fakePhotoStore struct {
	uploads []cloudflare.UploadPhotoInput
	deleted []string
	body    []byte
}

func (f *fakePhotoStore) Upload(_ context.Context, in cloudflare.UploadPhotoInput) (cloudflare.UploadResult, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return cloudflare.UploadResult{}, err
	}
	f.body = b
	f.uploads = append(f.uploads, in)
	key := cloudflare.ObjectKey(in.OwnerID, in.PropertyTitle, "photo-1", in.Extension)
	return cloudflare.UploadResult{URL: "https://cdn.test/" + key, ObjectID: "photo-1"}, nil
}

func (f *fakePhotoStore) Delete(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakePhotoStore) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, "https://cdn.test/")
	return key, ok && key != ""
}

type testServer struct {
	app    *fiber.App
	db     *gorm.DB
	issuer *jwt.Issuer
	photos *fakePhotoStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Property{},
		&model.Reservation{},
		&model.PropertyReview{},
	))

	issuer := jwt.NewIssuer("test-secret", time.Hour)
	photos := &fakePhotoStore{}
	log := zerolog.Nop()

	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	reservations := repository.NewReservationRepository(db)

	app := NewApp()
	SetupRoutes(app, Controllers{
		Auth:         NewAuthController(users, issuer, log),
		Properties:   NewPropertyController(properties, log),
		Reservations: NewReservationController(reservations, properties, log),
		Uploads:      NewUploadController(photos, 0, log),
	}, middleware.AuthMiddleware(issuer))

	return &testServer{app: app, db: db, issuer: issuer, photos: photos}
}

func (s *testServer) createUser(t *testing.T, name, email string) (model.User, string) {
	t.Helper()

	u := model.User{Name: name, Email: email, Password: "x"}
	require.NoError(t, s.db.Create(&u).Error)
	token, err := s.issuer.GenerateToken(u.ID, u.Email, u.Name)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) createProperty(t *testing.T, ownerID uint, title, city string, cost int) model.Property {
	t.Helper()

	p := model.Property{
		OwnerID:      ownerID,
		Title:        title,
		City:         city,
		CostPerNight: cost,
		Country:      "Canada",
		Province:     "BC",
	}
	require.NoError(t, s.db.Create(&p).Error)
	return p
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) (*http.Response, map[string]any) {
	t.Helper()

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}
