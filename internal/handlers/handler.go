// internal/handlers/handler.go
package handlers

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/popgo-backend/internal/errs"
	"github.com/javajoker/popgo-backend/internal/i18n"
	"github.com/javajoker/popgo-backend/internal/models"
	"github.com/javajoker/popgo-backend/internal/pipeline"
	"github.com/javajoker/popgo-backend/internal/services"
	"github.com/javajoker/popgo-backend/internal/utils"
)

// Service contracts the handlers depend on; the services package provides
// the implementations.

type AuthService interface {
	Register(ctx context.Context, req *services.RegisterRequest) (*services.AuthResponse, error)
	Login(ctx context.Context, req *services.LoginRequest) (*services.AuthResponse, error)
	Logout(token string)
	LogoutAll(userID uuid.UUID) int
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

type CatalogService interface {
	Search(ctx context.Context, params utils.ListParams) (*services.ListResult, error)
	Get(ctx context.Context, id string) (*models.CatalogItem, error)
	Categories(ctx context.Context) ([]string, error)
}

type CollectionService interface {
	List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*services.ListResult, error)
	Stats(ctx context.Context, userID uuid.UUID, filter pipeline.FilterState) (pipeline.Stats, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.CollectionItem, error)
	Add(ctx context.Context, userID uuid.UUID, req *services.AddCollectionRequest) (*models.CollectionItem, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *services.UpdateCollectionRequest) (*models.CollectionItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SetArtwork(ctx context.Context, userID, id uuid.UUID, imageURL string) (*models.CollectionItem, error)
}

type WishlistService interface {
	List(ctx context.Context, userID uuid.UUID, params utils.ListParams) (*services.ListResult, error)
	Add(ctx context.Context, userID uuid.UUID, req *services.AddWishlistRequest) (*models.WishlistItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	MoveToCollection(ctx context.Context, userID, id uuid.UUID, req *services.MoveToCollectionRequest) (*models.CollectionItem, error)
}

type LoyaltyService interface {
	Calculate(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, *services.Score, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*services.Dashboard, error)
	Leaderboard(ctx context.Context, limit int) ([]services.LeaderboardEntry, error)
}

type PreferenceService interface {
	Get(ctx context.Context, userID uuid.UUID) *services.PreferencesView
	Update(ctx context.Context, userID uuid.UUID, req *services.UpdatePreferencesRequest) (*services.PreferencesView, error)
	RecordVisit(ctx context.Context, userID uuid.UUID, itemID string) (int, error)
}

type ArtworkStorage interface {
	UploadArtwork(r io.Reader, userID string) (*services.UploadResult, error)
	DeleteFile(key string) error
	MaxArtworkBytes() int64
}

// currentUser returns the authenticated user's id, writing a 401 when the
// context carries none.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyAuthInvalidToken))
		return uuid.Nil, false
	}
	return userID, true
}

func pathID(c *gin.Context, notFoundKey string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// A malformed id cannot name an existing row.
		utils.NotFoundResponse(c, notFoundKey)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates req, writing the 400 itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error, notFoundKey string) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, errs.ErrAlreadyExists):
		utils.ConflictResponse(c, i18n.T(lang, conflictKey(notFoundKey)))
	case errors.Is(err, errs.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, errs.ErrForbidden):
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
	case errors.Is(err, errs.ErrInvalidInput):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func conflictKey(notFoundKey string) string {
	switch notFoundKey {
	case i18n.KeyWishlistNotFound:
		return i18n.KeyWishlistExists
	case i18n.KeyUserNotFound:
		return i18n.KeyAuthUserExists
	default:
		return i18n.KeyError
	}
}
