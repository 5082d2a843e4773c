package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidate(t *testing.T) {
	valid := []byte(`{
		"name": "Jane Doe",
		"experiences": [{"name": "Développeur Web", "months": 18}],
		"hard_skills": ["Python"],
		"languages": {"français": "courant"}
	}`)
	assert.NoError(t, ValidateCandidate(valid))
}

func TestValidateCandidate_MissingName(t *testing.T) {
	err := ValidateCandidate([]byte(`{"hard_skills": ["Python"]}`))
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateCandidate_WrongTypes(t *testing.T) {
	err := ValidateCandidate([]byte(`{"name": "Jane", "min_salary": "beaucoup"}`))
	assert.Error(t, err)
}

func TestValidateJob(t *testing.T) {
	valid := []byte(`{
		"title": "Développeur Backend",
		"hard_skills": [{"skill": "Go", "category": "mandatory"}],
		"required_languages": {"anglais": {"level": "courant", "required": true}}
	}`)
	assert.NoError(t, ValidateJob(valid))
}

func TestValidateJob_BadCategory(t *testing.T) {
	err := ValidateJob([]byte(`{
		"title": "Développeur Backend",
		"hard_skills": [{"skill": "Go", "category": "nice-to-have"}]
	}`))
	assert.Error(t, err)
}

func TestValidateJob_MalformedJSON(t *testing.T) {
	assert.Error(t, ValidateJob([]byte(`{not json`)))
}
