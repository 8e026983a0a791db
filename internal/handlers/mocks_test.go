package handlers

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*services.AuthResponse)
	return res, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*services.AuthResponse)
	return res, args.Error(1)
}

func (m *mockAuthService) Logout(token string) { m.Called(token) }

func (m *mockAuthService) LogoutAll(userID uuid.UUID) int {
	return m.Called(userID).Int(0)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) Search(ctx context.Context, params utils.ListParams) (*services.ListResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*services.ListResult)
	return res, args.Error(1)
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*models.CatalogItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*models.CatalogItem)
	return item, args.Error(1)
}

func (m *mockCatalogService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

type mockCollectionService struct{ mock.Mock }

func (m *mockCollectionService) List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*services.ListResult, error) {
	args := m.Called(ctx, userID, params)
	res, _ := args.Get(0).(*services.ListResult)
	return res, args.Error(1)
}

func (m *mockCollectionService) Stats(ctx context.Context, userID uuid.UUID, filter pipeline.FilterState) (pipeline.Stats, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(pipeline.Stats), args.Error(1)
}

func (m *mockCollectionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.CollectionItem, error) {
	args := m.Called(ctx, userID, id)
	item, _ := args.Get(0).(*models.CollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionService) Add(ctx context.Context, userID uuid.UUID, req *services.AddCollectionRequest) (*models.CollectionItem, error) {
	args := m.Called(ctx, userID, req)
	item, _ := args.Get(0).(*models.CollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionService) Update(ctx context.Context, userID, id uuid.UUID, req *services.UpdateCollectionRequest) (*models.CollectionItem, error) {
	args := m.Called(ctx, userID, id, req)
	item, _ := args.Get(0).(*models.CollectionItem)
	return item, args.Error(1)
}

func (m *mockCollectionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockCollectionService) SetArtwork(ctx context.Context, userID, id uuid.UUID, imageURL string) (*models.CollectionItem, error) {
	args := m.Called(ctx, userID, id, imageURL)
	item, _ := args.Get(0).(*models.CollectionItem)
	return item, args.Error(1)
}

type mockWishlistService struct{ mock.Mock }

func (m *mockWishlistService) List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*services.ListResult, error) {
	args := m.Called(ctx, userID, params)
	res, _ := args.Get(0).(*services.ListResult)
	return res, args.Error(1)
}

func (m *mockWishlistService) Add(ctx context.Context, userID uuid.UUID, req *services.AddWishlistRequest) (*models.WishlistItem, error) {
	args := m.Called(ctx, userID, req)
	item, _ := args.Get(0).(*models.WishlistItem)
	return item, args.Error(1)
}

func (m *mockWishlistService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *mockWishlistService) MoveToCollection(ctx context.Context, userID, id uuid.UUID, req *services.MoveToCollectionRequest) (*models.CollectionItem, error) {
	args := m.Called(ctx, userID, id, req)
	item, _ := args.Get(0).(*models.CollectionItem)
	return item, args.Error(1)
}

type mockLoyaltyService struct{ mock.Mock }

func (m *mockLoyaltyService) Calculate(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, *services.Score, error) {
	args := m.Called(ctx, userID)
	account, _ := args.Get(0).(*models.LoyaltyAccount)
	score, _ := args.Get(1).(*services.Score)
	return account, score, args.Error(2)
}

func (m *mockLoyaltyService) Dashboard(ctx context.Context, userID uuid.UUID) (*services.Dashboard, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*services.Dashboard)
	return d, args.Error(1)
}

func (m *mockLoyaltyService) Leaderboard(ctx context.Context, limit int) ([]services.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]services.LeaderboardEntry)
	return entries, args.Error(1)
}

type mockPreferenceService struct{ mock.Mock }

func (m *mockPreferenceService) Get(ctx context.Context, userID uuid.UUID) *services.PreferencesView {
	view, _ := m.Called(ctx, userID).Get(0).(*services.PreferencesView)
	return view
}

func (m *mockPreferenceService) Update(ctx context.Context, userID uuid.UUID, req *services.UpdatePreferencesRequest) (*services.PreferencesView, error) {
	args := m.Called(ctx, userID, req)
	view, _ := args.Get(0).(*services.PreferencesView)
	return view, args.Error(1)
}

func (m *mockPreferenceService) RecordVisit(ctx context.Context, userID uuid.UUID, itemID string) (int, error) {
	args := m.Called(ctx, userID, itemID)
	return args.Int(0), args.Error(1)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) UploadArtwork(r io.Reader, userID string) (*services.UploadResult, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(data, userID)
	res, _ := args.Get(0).(*services.UploadResult)
	return res, args.Error(1)
}

func (m *mockStorage) DeleteFile(key string) error {
	return m.Called(key).Error(0)
}

func (m *mockStorage) MaxArtworkBytes() int64 { return 5 * 1024 * 1024 }

type fakeSessions struct {
	live     map[string]bool
	lastSeen time.Time
}

func (f *fakeSessions) Touch(token string) bool { return f.live[token] }

func (f *fakeSessions) LastSeen(token string) (time.Time, bool) {
	return f.lastSeen, f.live[token]
}

func (f *fakeSessions) Timeout() time.Duration { return 10 * time.Minute }
