package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobscout/internal/config"
	"github.com/jonathan/jobscout/internal/types"
)

func configWith(coverFile, coverText string) config.Config {
	return config.Config{CoverFile: coverFile, CoverText: coverText}
}

func TestRankCommand_ValidInput(t *testing.T) {
	dir := t.TempDir()

	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath,
		[]byte("Backend engineer experienced with golang kubernetes and distributed systems."), 0o644))

	records := types.JobRecords{Jobs: []types.JobRecord{
		{URL: "https://www.example.com/jobs/view/1", Title: "Golang Engineer", Organization: "Acme",
			Description: "Backend engineer role working with golang kubernetes and distributed systems."},
		{URL: "https://www.example.com/jobs/view/2", Title: "Florist", Organization: "Petal Co",
			Description: "Arranging seasonal flowers and managing a retail storefront."},
	}}
	jobsPath := filepath.Join(dir, "jobs.json")
	data, err := json.MarshalIndent(records, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jobsPath, data, 0o644))

	rankResume = resumePath
	rankJobs = jobsPath
	rankTop = 1
	rankOutput = filepath.Join(dir, "ranked.json")
	rankShortlist = filepath.Join(dir, "selected_urls.txt")

	require.NoError(t, runRank(nil, nil))

	rankedData, err := os.ReadFile(rankOutput)
	require.NoError(t, err)
	var ranked types.RankedJobs
	require.NoError(t, json.Unmarshal(rankedData, &ranked))
	require.Len(t, ranked.Ranked, 1)
	assert.Equal(t, "https://www.example.com/jobs/view/1", ranked.Ranked[0].URL)
	assert.Greater(t, ranked.Ranked[0].Score, 0.0)

	shortlistData, err := os.ReadFile(rankShortlist)
	require.NoError(t, err)
	assert.Equal(t, "https://www.example.com/jobs/view/1\n", string(shortlistData))
}

func TestRankCommand_MissingJobsFile(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("golang engineer"), 0o644))

	rankResume = resumePath
	rankJobs = filepath.Join(dir, "absent.json")
	rankTop = 1
	rankOutput = filepath.Join(dir, "ranked.json")
	rankShortlist = ""

	err := runRank(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read job records file")
}

func TestRankCommand_EmptyRecords(t *testing.T) {
	dir := t.TempDir()
	resumePath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("golang engineer"), 0o644))
	jobsPath := filepath.Join(dir, "jobs.json")
	require.NoError(t, os.WriteFile(jobsPath, []byte(`{"jobs": []}`), 0o644))

	rankResume = resumePath
	rankJobs = jobsPath
	rankTop = 1
	rankOutput = filepath.Join(dir, "ranked.json")
	rankShortlist = ""

	err := runRank(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains no jobs")
}

func TestSplitKeywords(t *testing.T) {
	assert.Equal(t, []string{"golang", "site reliability"}, splitKeywords("golang, site reliability"))
	assert.Equal(t, []string{"golang"}, splitKeywords("golang,,  ,"))
	assert.Nil(t, splitKeywords("  "))
}

func TestResolveCoverText(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.txt")
	require.NoError(t, os.WriteFile(coverPath, []byte("Dear hiring team,\n\nHello.\n"), 0o644))

	t.Run("from file", func(t *testing.T) {
		text, err := resolveCoverText(configWith(coverPath, ""))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(text, "Dear hiring team,"))
		assert.False(t, strings.HasSuffix(text, "\n"))
	})

	t.Run("inline", func(t *testing.T) {
		text, err := resolveCoverText(configWith("", "Inline cover."))
		require.NoError(t, err)
		assert.Equal(t, "Inline cover.", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := resolveCoverText(configWith(filepath.Join(dir, "absent.txt"), ""))
		require.Error(t, err)
	})
}
