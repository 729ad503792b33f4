package jobsearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/lifehub/internal/storage"
)

func TestCreateAndGetJobPosting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJobPosting(ctx, &JobPostingCreateInput{
		Title:     "Backend Engineer",
		Company:   "Acme",
		Location:  strPtr("Remote"),
		SalaryMin: floatPtr(120000),
		SalaryMax: floatPtr(150000),
	})
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	posting, err := store.GetJobPosting(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Backend Engineer", posting.Title)
	require.Equal(t, "Acme", posting.Company)
	require.Equal(t, "Remote", *posting.Location)
	require.Equal(t, PostingStatusSaved, posting.Status)
	require.Nil(t, posting.FitScore)
	require.NotEmpty(t, posting.CreatedAt)
}

func TestCreateJobPostingValidation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.CreateJobPosting(context.Background(), &JobPostingCreateInput{
		Company: "Acme",
	})
	require.Error(t, err)
	require.True(t, storage.IsValidation(err))
}

func TestCreateJobPostingSalaryBoundsOptional(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Either bound may be present alone.
	id, err := store.CreateJobPosting(ctx, &JobPostingCreateInput{
		Title:     "Engineer",
		Company:   "Acme",
		SalaryMax: floatPtr(150000),
	})
	require.NoError(t, err)

	posting, err := store.GetJobPosting(ctx, id)
	require.NoError(t, err)
	require.Nil(t, posting.SalaryMin)
	require.InDelta(t, 150000, *posting.SalaryMax, 0.001)

	_, err = store.CreateJobPosting(ctx, &JobPostingCreateInput{
		Title:     "Engineer",
		Company:   "Acme",
		SalaryMin: floatPtr(120000),
	})
	require.NoError(t, err)

	// Ordering is checked only when both are set.
	_, err = store.CreateJobPosting(ctx, &JobPostingCreateInput{
		Title:     "Engineer",
		Company:   "Acme",
		SalaryMin: floatPtr(150000),
		SalaryMax: floatPtr(120000),
	})
	require.Error(t, err)
	require.True(t, storage.IsValidation(err))
}

func TestGetJobPostingNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetJobPosting(context.Background(), 999)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListJobPostingsByStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateJobPosting(ctx, &JobPostingCreateInput{Title: "A", Company: "X"})
	require.NoError(t, err)
	_, err = store.CreateJobPosting(ctx, &JobPostingCreateInput{Title: "B", Company: "Y"})
	require.NoError(t, err)

	require.NoError(t, store.UpdateJobPosting(ctx, first, &JobPostingUpdate{
		Status: strPtr(PostingStatusApplied),
	}))

	all, err := store.ListJobPostings(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	applied, err := store.ListJobPostings(ctx, PostingStatusApplied)
	require.NoError(t, err)
	require.Len(t, applied, 1)
	require.Equal(t, "A", applied[0].Title)
}

func TestUpdateJobPostingMissing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateJobPosting(context.Background(), 42, &JobPostingUpdate{
		Title: strPtr("New"),
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteJobPostingMissingIsNoOp(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.DeleteJobPosting(context.Background(), 42))
}

func TestSaveAnalysis(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateJobPosting(ctx, &JobPostingCreateInput{Title: "A", Company: "X"})
	require.NoError(t, err)

	require.NoError(t, store.SaveAnalysis(ctx, id, `{"fitScore": 85}`, 85))

	posting, err := store.GetJobPosting(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 85, *posting.FitScore)
	require.Equal(t, `{"fitScore": 85}`, *posting.AIAnalysis)
}

func TestDeleteJobPostingCascadesApplications(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	postingID, err := store.CreateJobPosting(ctx, &JobPostingCreateInput{Title: "A", Company: "X"})
	require.NoError(t, err)
	appID, err := store.CreateApplication(ctx, &ApplicationCreateInput{JobPostingID: postingID})
	require.NoError(t, err)

	require.NoError(t, store.DeleteJobPosting(ctx, postingID))

	_, err = store.GetApplication(ctx, appID)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
