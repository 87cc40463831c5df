package validation

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/mentormind-api/pkg/errors"
)

type payload struct {
	Email   string `json:"email" validate:"required,email"`
	DueAt   string `json:"dueAt" validate:"required,isodatetime"`
	Minutes int    `json:"minutes" validate:"required,gt=0"`
}

func fieldsOf(details []FieldError) map[string]string {
	out := map[string]string{}
	for _, d := range details {
		out[d.Field] = d.Message
	}
	return out
}

func TestValidatorUsesJSONNamesAndEnglishMessages(t *testing.T) {
	v := New()
	err := v.Struct(payload{Email: "nope", DueAt: "invalid-date", Minutes: -1})
	require.Error(t, err)

	fields := fieldsOf(v.Details(err))
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "dueAt must be a valid ISO-8601 date-time", fields["dueAt"])
	assert.Equal(t, "minutes must be greater than 0", fields["minutes"])
}

func TestValidatorAcceptsValidPayload(t *testing.T) {
	v := New()
	assert.NoError(t, v.Struct(payload{Email: "a@b.co", DueAt: "2024-01-15T10:00:00.000Z", Minutes: 5}))
	assert.NoError(t, v.Struct(payload{Email: "a@b.co", DueAt: "2024-01-15T10:00:00+07:00", Minutes: 5}))
}

func TestDetailsForDecodeErrors(t *testing.T) {
	v := New()

	var p payload
	err := json.Unmarshal([]byte(`{"minutes":"ten"}`), &p)
	require.Error(t, err)
	assert.Equal(t, []FieldError{{Field: "minutes", Message: "minutes must be of type integer"}}, v.Details(err))

	err = json.Unmarshal([]byte(`{"minutes":`), &p)
	assert.Equal(t, "body", v.Details(err)[0].Field)

	assert.Equal(t, "request body is required", v.Details(io.EOF)[0].Message)
	assert.Nil(t, v.Details(nil))
}

func TestInvalidWrapsAsValidationError(t *testing.T) {
	v := New()
	err := v.Invalid(v.Struct(payload{}))

	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Invalid input", appErr.Message)
	assert.Len(t, appErr.Details, 3)
}

func TestParseDateTime(t *testing.T) {
	ts, err := ParseDateTime("2024-01-15T10:00:00.123Z")
	require.NoError(t, err)
	assert.Equal(t, 123000000, ts.Nanosecond())

	_, err = ParseDateTime("2024-01-15")
	assert.Error(t, err)
}
