package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/jobscout/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"job_records.schema.json",
	"ranked_jobs.schema.json",
}

func TestSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestValidateJSON_JobRecords(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
		"jobs": [
			{"url": "https://example.com/jobs/view/1", "title": "Engineer", "organization": "Acme", "description": "Build things."}
		]
	}`), 0o644))
	assert.NoError(t, schemas.ValidateJSON("job_records.schema.json", valid))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{
		"jobs": [
			{"title": "Missing URL"}
		]
	}`), 0o644))
	err := schemas.ValidateJSON("job_records.schema.json", invalid)
	assert.Error(t, err)
}

func TestValidateJSON_RankedJobs(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{
		"ranked": [
			{"url": "https://example.com/jobs/view/1", "score": 0.42}
		]
	}`), 0o644))
	assert.NoError(t, schemas.ValidateJSON("ranked_jobs.schema.json", valid))

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{
		"ranked": [
			{"url": "https://example.com/jobs/view/1", "score": -1}
		]
	}`), 0o644))
	err := schemas.ValidateJSON("ranked_jobs.schema.json", invalid)
	assert.Error(t, err)
}

func TestResolveSchemaPath_Missing(t *testing.T) {
	assert.Equal(t, "", schemas.ResolveSchemaPath(filepath.Join("schemas", "no_such.schema.json")))
}
