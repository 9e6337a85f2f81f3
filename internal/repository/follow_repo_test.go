package repository

import (
	"testing"

	"github.com/sortmyai/sortmyai-backend/internal/common"
	"github.com/sortmyai/sortmyai-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFollowTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Creator{}, &domain.Follow{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, uid := range []string{"alice", "bob", "carol"} {
		db.Create(&domain.Creator{UID: uid, Handle: uid, Email: uid + "@example.com"})
	}
	return db
}

func counters(t *testing.T, db *gorm.DB, uid string) (followers, following int) {
	t.Helper()
	var c domain.Creator
	if err := db.Where("uid = ?", uid).First(&c).Error; err != nil {
		t.Fatalf("creator %s not found: %v", uid, err)
	}
	return c.FollowersCount, c.FollowingCount
}

func TestFollowCreate_BumpsBothCounters(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "bob"))

	bobFollowers, _ := counters(t, db, "bob")
	_, aliceFollowing := counters(t, db, "alice")
	assert.Equal(t, 1, bobFollowers)
	assert.Equal(t, 1, aliceFollowing)

	exists, err := repo.Exists("alice", "bob")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestFollowCreate_DuplicateEdge(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "bob"))
	err := repo.Create("alice", "bob")
	assert.ErrorIs(t, err, common.ErrAlreadyFollowing)

	// the failed insert must not touch the counters
	bobFollowers, _ := counters(t, db, "bob")
	assert.Equal(t, 1, bobFollowers)
}

func TestFollowDelete_LowersCounters(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "bob"))
	assert.NoError(t, repo.Delete("alice", "bob"))

	bobFollowers, _ := counters(t, db, "bob")
	_, aliceFollowing := counters(t, db, "alice")
	assert.Equal(t, 0, bobFollowers)
	assert.Equal(t, 0, aliceFollowing)

	err := repo.Delete("alice", "bob")
	assert.ErrorIs(t, err, common.ErrNotFollowing)
}

func TestFollowDelete_CounterNeverGoesNegative(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "bob"))
	// simulate drift: counter already at zero while the edge exists
	db.Model(&domain.Creator{}).Where("uid = ?", "bob").
		UpdateColumn("followers_count", 0)

	assert.NoError(t, repo.Delete("alice", "bob"))
	bobFollowers, _ := counters(t, db, "bob")
	assert.Equal(t, 0, bobFollowers)
}

func TestListFollowersAndFollowing(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "carol"))
	assert.NoError(t, repo.Create("bob", "carol"))
	assert.NoError(t, repo.Create("carol", "alice"))

	followers, total, err := repo.ListFollowers("carol", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	// newest first
	assert.Equal(t, "bob", followers[0].UID)
	assert.Equal(t, "alice", followers[1].UID)

	following, total, err := repo.ListFollowing("carol", 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "alice", following[0].UID)

	page2, total, err := repo.ListFollowers("carol", 2, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, page2, 1)
	assert.Equal(t, "alice", page2[0].UID)
}

func TestRecountCounters_FixesDrift(t *testing.T) {
	db := setupFollowTestDB(t)
	repo := NewFollowRepository(db)

	assert.NoError(t, repo.Create("alice", "carol"))
	assert.NoError(t, repo.Create("bob", "carol"))

	// inject drift
	db.Model(&domain.Creator{}).Where("uid = ?", "carol").
		UpdateColumn("followers_count", 7)

	recount, err := repo.RecountCounters("carol")
	assert.NoError(t, err)
	assert.True(t, recount.Drifted)
	assert.Equal(t, 7, recount.FollowersBefore)
	assert.Equal(t, 2, recount.FollowersAfter)

	carolFollowers, _ := counters(t, db, "carol")
	assert.Equal(t, 2, carolFollowers)

	again, err := repo.RecountCounters("carol")
	assert.NoError(t, err)
	assert.False(t, again.Drifted)
}
