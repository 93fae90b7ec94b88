package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJobDocument_Valid(t *testing.T) {
	doc := []byte(`{
		"title": "Backend Engineer",
		"criteria": {
			"criteria": [
				{"name": "yearsOfExperience", "weight": 0.5, "target": 5},
				{"name": "skills", "weight": 0.5, "target": ["go", "postgres"]}
			]
		},
		"thresholds": {"yearsOfExperience": 3}
	}`)

	assert.NoError(t, ValidateJobDocument(doc))
}

func TestValidateJobDocument_MissingTitle(t *testing.T) {
	doc := []byte(`{"criteria": {"criteria": []}}`)

	err := ValidateJobDocument(doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
}

func TestValidateJobDocument_NegativeWeight(t *testing.T) {
	doc := []byte(`{
		"title": "Backend Engineer",
		"criteria": {"criteria": [{"name": "skills", "weight": -0.5}]}
	}`)

	assert.Error(t, ValidateJobDocument(doc))
}

func TestValidateJobDocument_ObjectTargetRejected(t *testing.T) {
	doc := []byte(`{
		"title": "Backend Engineer",
		"criteria": {"criteria": [{"name": "skills", "weight": 1, "target": {"nested": true}}]}
	}`)

	assert.Error(t, ValidateJobDocument(doc))
}

func TestValidateCandidatesDocument_Valid(t *testing.T) {
	doc := []byte(`[
		{"name": "Ada", "attributes": {"yearsOfExperience": 6, "skills": ["go"], "remote": true}},
		{"name": "Grace", "attributes": {}}
	]`)

	assert.NoError(t, ValidateCandidatesDocument(doc))
}

func TestValidateCandidatesDocument_MissingAttributes(t *testing.T) {
	doc := []byte(`[{"name": "Ada"}]`)

	assert.Error(t, ValidateCandidatesDocument(doc))
}

func TestValidateProposalsDocument_Valid(t *testing.T) {
	doc := []byte(`[
		{"evaluator": "alice", "weights": {"skills": 0.6, "experience": 0.4}}
	]`)

	assert.NoError(t, ValidateProposalsDocument(doc))
}

func TestValidateProposalsDocument_EmptyWeights(t *testing.T) {
	doc := []byte(`[{"evaluator": "alice", "weights": {}}]`)

	assert.Error(t, ValidateProposalsDocument(doc))
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := ValidateJobDocument([]byte(`{`))
	assert.Error(t, err)
}
