package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/casting-agency/models"
)

type testActorInput struct {
	Name   string `validate:"required,notblank,max=120"`
	Age    int    `validate:"gte=0,lte=150"`
	Gender string `validate:"required,notblank"`
}

type testMovieInput struct {
	Title       string `validate:"required,notblank"`
	ReleaseDate string `validate:"required,date"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		err := ValidateStruct(&testActorInput{Name: "Christian Bale", Age: 48, Gender: "Male"})
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := ValidateStruct(&testActorInput{Age: 30, Gender: "Female"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		fields := GetValidationFields(err)
		assert.Equal(t, "Name is required", fields["Name"])
	})

	t.Run("blank string", func(t *testing.T) {
		err := ValidateStruct(&testActorInput{Name: "   ", Age: 30, Gender: "Female"})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "Name")
	})

	t.Run("age out of range", func(t *testing.T) {
		err := ValidateStruct(&testActorInput{Name: "Old Timer", Age: 151, Gender: "Male"})
		require.Error(t, err)
		assert.Equal(t, "Age must be less than or equal to 150", GetValidationFields(err)["Age"])
	})

	t.Run("invalid date", func(t *testing.T) {
		err := ValidateStruct(&testMovieInput{Title: "Big Short", ReleaseDate: "01/01/2014"})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err)["ReleaseDate"], "YYYY-MM-DD")
	})

	t.Run("valid date", func(t *testing.T) {
		err := ValidateStruct(&testMovieInput{Title: "Big Short", ReleaseDate: "2014-01-01"})
		assert.NoError(t, err)
	})
}

func TestIsValidationError(t *testing.T) {
	assert.False(t, IsValidationError(nil))
	assert.False(t, IsValidationError(assert.AnError))
	assert.True(t, IsValidationError(&ValidationError{Message: "Validation failed"}))
	assert.Nil(t, GetValidationFields(assert.AnError))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2014-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2014, 1, 1, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "2014-13-01", "2014-02-30", "2014/01/01", "2014-01-01T00:00:00Z"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDate_RoundTripsModelDate(t *testing.T) {
	parsed, err := ParseDate("2014-01-01")
	require.NoError(t, err)

	date := models.NewDate(parsed)
	assert.Equal(t, "2014-01-01", date.String())

	again, err := ParseDate(date.String())
	require.NoError(t, err)
	assert.True(t, parsed.Equal(again))
}
