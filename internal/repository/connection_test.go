package repository

import (
	"context"
	"testing"

	"vibehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionCreate_DuplicateEdgeLosesQuietly(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	inserted, err := repo.Create(ctx, &models.FollowEdge{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.Create(ctx, &models.FollowEdge{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusPending})
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The surviving edge keeps the original status.
	edge, err := repo.GetEdge(ctx, 1, 2)
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, models.ConnectionStatusAccepted, edge.Status)
}

func TestConnectionEdges_AreDirected(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.FollowEdge{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted})
	require.NoError(t, err)

	edge, err := repo.GetEdge(ctx, 1, 2)
	require.NoError(t, err)
	assert.NotNil(t, edge)

	// The reverse direction is a separate edge.
	edge, err = repo.GetEdge(ctx, 2, 1)
	require.NoError(t, err)
	assert.Nil(t, edge)
}

func TestGetPendingForTarget(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{ID: 1, Username: "follower", Email: "f@example.com", Password: "pw"}).Error)
	pending := &models.FollowEdge{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusPending}
	_, err := repo.Create(ctx, pending)
	require.NoError(t, err)
	accepted := &models.FollowEdge{FollowerID: 3, TargetID: 2, Status: models.ConnectionStatusAccepted}
	_, err = repo.Create(ctx, accepted)
	require.NoError(t, err)

	edge, err := repo.GetPendingForTarget(ctx, pending.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, edge.ID)
	assert.Equal(t, "follower", edge.Follower.Username)

	// A request addressed to a different target looks missing.
	_, err = repo.GetPendingForTarget(ctx, pending.ID, 9)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// An already-accepted edge is not a pending request.
	_, err = repo.GetPendingForTarget(ctx, accepted.ID, 2)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestFollowCounts_IgnorePendingEdges(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	for _, edge := range []*models.FollowEdge{
		{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted},
		{FollowerID: 3, TargetID: 2, Status: models.ConnectionStatusPending},
		{FollowerID: 2, TargetID: 1, Status: models.ConnectionStatusAccepted},
	} {
		_, err := repo.Create(ctx, edge)
		require.NoError(t, err)
	}

	followers, err := repo.CountFollowers(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	following, err := repo.CountFollowing(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), following)
}

func TestAcceptedTargetIDs(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	for _, edge := range []*models.FollowEdge{
		{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted},
		{FollowerID: 1, TargetID: 3, Status: models.ConnectionStatusPending},
		{FollowerID: 1, TargetID: 4, Status: models.ConnectionStatusAccepted},
	} {
		_, err := repo.Create(ctx, edge)
		require.NoError(t, err)
	}

	ids, err := repo.AcceptedTargetIDs(ctx, 1, []uint{2, 3, 4, 5})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 4}, ids)

	ids, err = repo.AcceptedTargetIDs(ctx, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDeleteAllForUser_RemovesBothDirections(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewConnectionRepository(db)
	ctx := context.Background()

	for _, edge := range []*models.FollowEdge{
		{FollowerID: 1, TargetID: 2, Status: models.ConnectionStatusAccepted},
		{FollowerID: 3, TargetID: 1, Status: models.ConnectionStatusAccepted},
		{FollowerID: 2, TargetID: 3, Status: models.ConnectionStatusAccepted},
	} {
		_, err := repo.Create(ctx, edge)
		require.NoError(t, err)
	}

	require.NoError(t, repo.DeleteAllForUser(ctx, 1))

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
