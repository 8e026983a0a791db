// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "internal_error"
	KeyRateLimited   = "rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthSessionExpired     = "auth.session_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Catalog
	KeyCatalogNotFound = "catalog.not_found"

	// Collection
	KeyCollectionAdded    = "collection.added"
	KeyCollectionUpdated  = "collection.updated"
	KeyCollectionDeleted  = "collection.deleted"
	KeyCollectionNotFound = "collection.not_found"
	KeyCollectionEmpty    = "collection.empty"

	// Wishlist
	KeyWishlistAdded    = "wishlist.added"
	KeyWishlistDeleted  = "wishlist.deleted"
	KeyWishlistMoved    = "wishlist.moved"
	KeyWishlistNotFound = "wishlist.not_found"
	KeyWishlistExists   = "wishlist.exists"

	// Loyalty
	KeyLoyaltyCalculated = "loyalty.calculated"

	// Preferences
	KeyPreferencesUpdated = "preferences.updated"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Search
	KeySearchNoResults = "search.no_results"
)
