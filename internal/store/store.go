package store

import (
	"errors"
	"fmt"
	"time"

	"assetboard/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// Store wraps all database access. It expects the gorm connection to be
// opened with TranslateError so unique violations surface as
// gorm.ErrDuplicatedKey.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store instance
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}

// CreateUser inserts a new user. LastSeen defaults to the creation time.
func (s *Store) CreateUser(user *models.User) error {
	if user.LastSeen.IsZero() {
		user.LastSeen = time.Now().UTC()
	}
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translate(err))
	}
	return nil
}

// GetUser returns a user by primary key
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", translate(err))
	}
	return &user, nil
}

// GetUserByUsername returns a user by their unique username
func (s *Store) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", translate(err))
	}
	return &user, nil
}

// GetUserByEmail returns a user by their unique email
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", translate(err))
	}
	return &user, nil
}

// UsernameTaken reports whether another user already holds the username.
// exceptID exempts a user's own row, for profile edits.
func (s *Store) UsernameTaken(username string, exceptID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.User{}).Where("username = ?", username)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

// EmailTaken reports whether a user already holds the email.
func (s *Store) EmailTaken(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile changes a user's username and about text.
func (s *Store) UpdateProfile(user *models.User, username, aboutMe string) error {
	if err := s.db.Model(user).Updates(map[string]interface{}{
		"username": username,
		"about_me": aboutMe,
	}).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", translate(err))
	}
	user.Username = username
	user.AboutMe = aboutMe
	return nil
}

// TouchLastSeen stamps the user's last_seen column with the current time.
func (s *Store) TouchLastSeen(id uint) error {
	if err := s.db.Model(&models.User{}).Where("id = ?", id).
		Update("last_seen", time.Now().UTC()).Error; err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}
	return nil
}

// CreateAsset inserts a new asset.
func (s *Store) CreateAsset(asset *models.Asset) error {
	if err := s.db.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", translate(err))
	}
	return nil
}

// GetAsset returns an asset by primary key
func (s *Store) GetAsset(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("asset not found: %w", translate(err))
	}
	return &asset, nil
}

// GetAssetByName returns an asset by its unique name
func (s *Store) GetAssetByName(name string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("asset not found: %w", translate(err))
	}
	return &asset, nil
}

// ListAssets returns all assets ordered by name.
func (s *Store) ListAssets() ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Order("name ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

// CreateAssetUpdate inserts a new asset update.
func (s *Store) CreateAssetUpdate(update *models.AssetUpdate) error {
	if err := s.db.Create(update).Error; err != nil {
		return fmt.Errorf("failed to create asset update: %w", translate(err))
	}
	return nil
}

// ListAssetUpdates returns all asset updates ordered by creation time, with
// the asset and author relations loaded.
func (s *Store) ListAssetUpdates() ([]models.AssetUpdate, error) {
	var updates []models.AssetUpdate
	if err := s.db.Preload("Asset").Preload("Author").
		Order("created_at ASC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset updates: %w", err)
	}
	return updates, nil
}

// ListAssetUpdatesByAsset returns the updates for one asset, oldest first.
func (s *Store) ListAssetUpdatesByAsset(assetID uint) ([]models.AssetUpdate, error) {
	var updates []models.AssetUpdate
	if err := s.db.Preload("Author").Where("asset_id = ?", assetID).
		Order("created_at ASC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset updates: %w", err)
	}
	return updates, nil
}

// ListAssetUpdatesByAuthor returns the updates a user authored, oldest first.
func (s *Store) ListAssetUpdatesByAuthor(userID uint) ([]models.AssetUpdate, error) {
	var updates []models.AssetUpdate
	if err := s.db.Preload("Asset").Where("author_id = ?", userID).
		Order("created_at ASC").Find(&updates).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset updates: %w", err)
	}
	return updates, nil
}
