package jobsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetUserProfileAbsent(t *testing.T) {
	store := newTestStore(t)

	profile, err := store.GetUserProfile(context.Background())
	require.NoError(t, err)
	require.Nil(t, profile)
}

func TestSaveUserProfileUpsertMerge(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveUserProfile(ctx, &UserProfileUpdate{
		FullName: strPtr("Jordan Smith"),
		Email:    strPtr("jordan@example.com"),
	}))

	// A second save with one field merges into the same row, leaving the
	// earlier fields intact.
	require.NoError(t, store.SaveUserProfile(ctx, &UserProfileUpdate{
		Phone: strPtr("555-0100"),
	}))

	profile, err := store.GetUserProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Jordan Smith", *profile.FullName)
	require.Equal(t, "jordan@example.com", *profile.Email)
	require.Equal(t, "555-0100", *profile.Phone)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_profile`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSearchHistory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.RecordSearch(ctx, "golang", strPtr("Remote"), nil, 10+i)
		require.NoError(t, err)
	}

	entries, err := store.RecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, 12, entries[0].ResultsCount)

	all, err := store.RecentSearches(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}
