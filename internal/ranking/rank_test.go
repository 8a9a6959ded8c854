package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/types"
)

const testResume = "Experienced data engineer. Python, Spark, Airflow, SQL, data warehousing and streaming pipelines."

func job(url, desc string) types.JobRecord {
	return types.JobRecord{URL: url, Title: "Data Engineer", Organization: "Acme", Description: desc}
}

func TestRank_EmptyJobs(t *testing.T) {
	assert.Empty(t, Rank(testResume, nil, 5))
	assert.Empty(t, Rank(testResume, []types.JobRecord{}, 5))
}

func TestRank_NonPositiveTopK(t *testing.T) {
	jobs := []types.JobRecord{job("u1", "python spark")}

	assert.Empty(t, Rank(testResume, jobs, 0))
	assert.Empty(t, Rank(testResume, jobs, -3))
}

func TestRank_IdenticalJobsKeepOriginalOrder(t *testing.T) {
	jobs := []types.JobRecord{
		job("u1", "python spark airflow"),
		job("u2", "python spark airflow"),
		job("u3", "python spark airflow"),
	}

	ranked := Rank(testResume, jobs, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
	assert.Equal(t, "u1", ranked[0].URL)
	assert.Equal(t, "u2", ranked[1].URL)
	assert.Equal(t, "u3", ranked[2].URL)
}

func TestRank_ResumeCopyScoresHighest(t *testing.T) {
	jobs := []types.JobRecord{
		job("other", "Looking for a nurse with hospital experience"),
		job("copy", testResume),
		job("partial", "Data engineer with Python experience"),
	}

	ranked := Rank(testResume, jobs, 3)

	require.Len(t, ranked, 3)
	assert.Equal(t, "copy", ranked[0].URL)
	for _, r := range ranked[1:] {
		assert.Less(t, r.Score, ranked[0].Score)
	}
}

func TestRank_TopKTruncates(t *testing.T) {
	jobs := []types.JobRecord{
		job("u1", "python"),
		job("u2", "spark"),
		job("u3", "airflow"),
		job("u4", "sql"),
	}

	ranked := Rank(testResume, jobs, 2)

	assert.Len(t, ranked, 2)
}

func TestRank_TopKLargerThanJobs(t *testing.T) {
	jobs := []types.JobRecord{job("u1", "python")}

	ranked := Rank(testResume, jobs, 10)

	assert.Len(t, ranked, 1)
}

func TestRank_EmptyDescriptionFallsBackToTitleAndOrganization(t *testing.T) {
	jobs := []types.JobRecord{
		{URL: "titled", Title: "Data Engineer", Organization: "Spark Labs", Description: ""},
		{URL: "blank", Title: "", Organization: "", Description: ""},
	}

	ranked := Rank(testResume, jobs, 2)

	require.Len(t, ranked, 2)
	// Title/organization terms overlap the resume; the fully empty record
	// cannot outscore it.
	assert.Equal(t, "titled", ranked[0].URL)
	assert.Greater(t, ranked[0].Score, 0.0)
	assert.Equal(t, 0.0, ranked[1].Score)
}

func TestRank_ScoresWithinUnitInterval(t *testing.T) {
	jobs := []types.JobRecord{
		job("u1", testResume),
		job("u2", "completely unrelated gardening text"),
	}

	for _, r := range Rank(testResume, jobs, 2) {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0+1e-9)
	}
}
