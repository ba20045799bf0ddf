package validation

import (
	"strings"
	"testing"

	internal_errors "github.com/itchan-dev/blogapi/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string `json:"name" validate:"required,notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Enter a valid email"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72,letters_digits" msg:"Password must include letters and numbers"`
}

type patch struct {
	Title *string `json:"title" validate:"omitnil,notblank" msg:"Title cannot be empty"`
	Note  string  `json:"note" validate:"max=3"`
}

func fields(t *testing.T, err error) []internal_errors.FieldError {
	t.Helper()
	var ve *internal_errors.ValidationError
	require.ErrorAs(t, err, &ve)
	return ve.Fields
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, Struct(&signup{Name: "Jane", Email: "jane@x.com", Password: "abc12345"}))
	})

	t.Run("every field reported once", func(t *testing.T) {
		err := Struct(&signup{Name: "  ", Email: "jane", Password: "short"})
		assert.Equal(t, []internal_errors.FieldError{
			{Field: "name", Message: "Name is required"},
			{Field: "email", Message: "Enter a valid email"},
			{Field: "password", Message: "Password must include letters and numbers"},
		}, fields(t, err))
	})

	t.Run("password needs letters and digits", func(t *testing.T) {
		for _, p := range []string{"abcdefgh", "12345678", "abc12345" + string(make([]byte, 70))} {
			err := Struct(&signup{Name: "Jane", Email: "jane@x.com", Password: p})
			require.Error(t, err, p)
			assert.Equal(t, "password", fields(t, err)[0].Field)
		}
	})

	t.Run("password limit counts bytes", func(t *testing.T) {
		multibyte := strings.Repeat("é", 36) + "1"
		require.Len(t, []rune(multibyte), 37)
		require.Len(t, multibyte, 73)

		err := Struct(&signup{Name: "Jane", Email: "jane@x.com", Password: multibyte})
		assert.Equal(t, []internal_errors.FieldError{
			{Field: "password", Message: "Password must include letters and numbers"},
		}, fields(t, err))

		assert.NoError(t, Struct(&signup{Name: "Jane", Email: "jane@x.com", Password: strings.Repeat("é", 35) + "12"}))
	})

	t.Run("optional pointer", func(t *testing.T) {
		assert.NoError(t, Struct(&patch{}))
		empty := ""
		err := Struct(&patch{Title: &empty})
		assert.Equal(t, []internal_errors.FieldError{{Field: "title", Message: "Title cannot be empty"}}, fields(t, err))
	})

	t.Run("fallback message", func(t *testing.T) {
		err := Struct(&patch{Note: "toolong"})
		assert.Equal(t, "Invalid value for note", fields(t, err)[0].Message)
	})
}

func TestField(t *testing.T) {
	ve := Field(&signup{}, "email")
	assert.Equal(t, "Enter a valid email", ve.Fields[0].Message)
	assert.Equal(t, 400, internal_errors.StatusCode(ve))
}
