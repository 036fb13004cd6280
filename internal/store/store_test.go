package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"assetboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T, uniqueThesis bool) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db, uniqueThesis))
	return db
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(openTestDB(t, true))
}

func makeUser(t *testing.T, s *Store, username, email string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: email, PasswordHash: "x"}
	require.NoError(t, s.CreateUser(user))
	return user
}

func TestCreateUser_SetsLastSeen(t *testing.T) {
	s := newTestStore(t)

	user := makeUser(t, s, "alice", "alice@example.com")
	assert.NotZero(t, user.ID)
	assert.False(t, user.LastSeen.IsZero())
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	makeUser(t, s, "alice", "alice@example.com")

	err := s.CreateUser(&models.User{Username: "alice", Email: "other@example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	makeUser(t, s, "alice", "alice@example.com")

	err := s.CreateUser(&models.User{Username: "bob", Email: "alice@example.com", PasswordHash: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByUsername("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsernameTaken_ExemptsOwnRow(t *testing.T) {
	s := newTestStore(t)
	alice := makeUser(t, s, "alice", "alice@example.com")
	makeUser(t, s, "bob", "bob@example.com")

	taken, err := s.UsernameTaken("alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own username should be exempt")

	taken, err = s.UsernameTaken("bob", alice.ID)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.UsernameTaken("alice", 0)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUpdateProfile_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	alice := makeUser(t, s, "alice", "alice@example.com")
	makeUser(t, s, "bob", "bob@example.com")

	err := s.UpdateProfile(alice, "bob", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.UpdateProfile(alice, "alice2", "hi"))
	got, err := s.GetUser(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.Username)
	assert.Equal(t, "hi", got.AboutMe)
}

func TestTouchLastSeen(t *testing.T) {
	s := newTestStore(t)
	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "x",
		LastSeen:     time.Now().UTC().Add(-24 * time.Hour),
	}
	require.NoError(t, s.CreateUser(user))

	require.NoError(t, s.TouchLastSeen(user.ID))

	got, err := s.GetUser(user.ID)
	require.NoError(t, err)
	assert.True(t, got.LastSeen.After(user.LastSeen), "last seen was not advanced")
}

func TestCreateAsset_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateAsset(&models.Asset{Name: "AAA", Thesis: "cheap", Type: "equity", Class: "growth"}))

	err := s.CreateAsset(&models.Asset{Name: "AAA", Thesis: "different", Type: "equity", Class: "growth"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateAsset_DuplicateThesis(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.CreateAsset(&models.Asset{Name: "AAA", Thesis: "cheap", Type: "equity", Class: "growth"}))

	err := s.CreateAsset(&models.Asset{Name: "BBB", Thesis: "cheap", Type: "equity", Class: "growth"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCreateAsset_ThesisUniquenessConfigurable(t *testing.T) {
	s := NewStore(openTestDB(t, false))

	require.NoError(t, s.CreateAsset(&models.Asset{Name: "AAA", Thesis: "cheap", Type: "equity", Class: "growth"}))
	require.NoError(t, s.CreateAsset(&models.Asset{Name: "BBB", Thesis: "cheap", Type: "equity", Class: "growth"}))
}

func TestGetAssetByName_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetAssetByName("doesnotexist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssetUpdates_ResolveAndOrder(t *testing.T) {
	s := newTestStore(t)
	alice := makeUser(t, s, "alice", "alice@example.com")

	aaa := &models.Asset{Name: "AAA", Thesis: "t1", Type: "equity", Class: "growth"}
	bbb := &models.Asset{Name: "BBB", Thesis: "t2", Type: "credit", Class: "value"}
	require.NoError(t, s.CreateAsset(aaa))
	require.NoError(t, s.CreateAsset(bbb))

	first := &models.AssetUpdate{
		AssetID:   bbb.ID,
		AuthorID:  &alice.ID,
		Title:     "first",
		Content:   "note one",
		CreatedAt: time.Now().UTC().Add(-2 * time.Hour),
	}
	second := &models.AssetUpdate{
		AssetID:   aaa.ID,
		Title:     "second",
		Content:   "note two",
		CreatedAt: time.Now().UTC().Add(-1 * time.Hour),
	}
	require.NoError(t, s.CreateAssetUpdate(first))
	require.NoError(t, s.CreateAssetUpdate(second))

	all, err := s.ListAssetUpdates()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
	// the update created against the second choice resolves back to it
	assert.Equal(t, "BBB", all[0].Asset.Name)
	assert.Equal(t, "AAA", all[1].Asset.Name)

	byAsset, err := s.ListAssetUpdatesByAsset(bbb.ID)
	require.NoError(t, err)
	require.Len(t, byAsset, 1)
	assert.Equal(t, "first", byAsset[0].Title)

	byAuthor, err := s.ListAssetUpdatesByAuthor(alice.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "first", byAuthor[0].Title)
	assert.Equal(t, "BBB", byAuthor[0].Asset.Name)
}
