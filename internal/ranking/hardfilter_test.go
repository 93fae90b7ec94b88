package ranking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func candidateWith(attrs types.AttributeSet) types.Candidate {
	return types.Candidate{ID: uuid.New(), Name: "test", Attributes: attrs}
}

func TestHardFilter_NumericToleranceLowersBar(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"yearsOfExperience": types.Number(5),
	}
	borderline := candidateWith(types.AttributeSet{"yearsOfExperience": types.Number(4.6)})
	tooLow := candidateWith(types.AttributeSet{"yearsOfExperience": types.Number(4.4)})

	passed, excluded := HardFilter([]types.Candidate{borderline, tooLow}, thresholds, 0.1)

	// Effective bar is 5*0.9 = 4.5.
	require.Len(t, passed, 1)
	assert.Equal(t, borderline.ID, passed[0].ID)
	require.Len(t, excluded, 1)
	assert.Equal(t, tooLow.ID, excluded[0].ID)
}

func TestHardFilter_ToleranceNeverRaisesBar(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"score": types.Number(5),
	}
	exact := candidateWith(types.AttributeSet{"score": types.Number(5)})

	passed, _ := HardFilter([]types.Candidate{exact}, thresholds, 0.0)

	assert.Len(t, passed, 1)
}

func TestHardFilter_MissingAttributeExcludes(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"yearsOfExperience": types.Number(5),
	}
	missing := candidateWith(types.AttributeSet{"skills": types.TextList("go")})

	passed, excluded := HardFilter([]types.Candidate{missing}, thresholds, 0.1)

	assert.Empty(t, passed)
	assert.Len(t, excluded, 1)
}

func TestHardFilter_TextThresholdLexicographic(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"degree": types.Text("bachelor"),
	}
	meets := candidateWith(types.AttributeSet{"degree": types.Text("master")})
	below := candidateWith(types.AttributeSet{"degree": types.Text("associate")})

	passed, excluded := HardFilter([]types.Candidate{meets, below}, thresholds, 0.1)

	require.Len(t, passed, 1)
	assert.Equal(t, meets.ID, passed[0].ID)
	assert.Len(t, excluded, 1)
}

func TestHardFilter_FlagThreshold(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"workAuthorization": types.Flag(true),
	}
	authorized := candidateWith(types.AttributeSet{"workAuthorization": types.Flag(true)})
	unauthorized := candidateWith(types.AttributeSet{"workAuthorization": types.Flag(false)})

	passed, excluded := HardFilter([]types.Candidate{authorized, unauthorized}, thresholds, 0.1)

	require.Len(t, passed, 1)
	assert.Equal(t, authorized.ID, passed[0].ID)
	assert.Len(t, excluded, 1)
}

func TestHardFilter_TypeMismatchExcludes(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"yearsOfExperience": types.Number(5),
	}
	wrongKind := candidateWith(types.AttributeSet{"yearsOfExperience": types.Text("five")})

	passed, excluded := HardFilter([]types.Candidate{wrongKind}, thresholds, 0.1)

	assert.Empty(t, passed)
	assert.Len(t, excluded, 1)
}

func TestHardFilter_NoThresholdsPassesEveryone(t *testing.T) {
	candidates := []types.Candidate{
		candidateWith(types.AttributeSet{}),
		candidateWith(types.AttributeSet{"skills": types.TextList("go")}),
	}

	passed, excluded := HardFilter(candidates, nil, 0.1)

	assert.Len(t, passed, 2)
	assert.Empty(t, excluded)
}

func TestHardFilter_MultipleThresholdsAllMustHold(t *testing.T) {
	thresholds := map[string]types.AttributeValue{
		"yearsOfExperience": types.Number(3),
		"workAuthorization": types.Flag(true),
	}
	partial := candidateWith(types.AttributeSet{
		"yearsOfExperience": types.Number(10),
		"workAuthorization": types.Flag(false),
	})

	passed, _ := HardFilter([]types.Candidate{partial}, thresholds, 0.1)

	assert.Empty(t, passed)
}
