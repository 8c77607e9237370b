package middleware

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusUpdate struct {
	Status  string `json:"status" binding:"required" validate:"required,order_status"`
	Payment string `json:"paymentMethod" validate:"omitempty,payment_method"`
	LogType string `form:"type" validate:"omitempty,sync_log_type"`
	LogStat string `form:"status" validate:"omitempty,sync_log_status"`
}

func newTestValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

func TestRegisterValidations(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.Struct(statusUpdate{Status: "SHIPPED", Payment: "gopay", LogType: "sync_all", LogStat: "partial"}))

	err := v.Struct(statusUpdate{Status: "LOST", LogType: "bogus"})
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	require.NotNil(t, resp.Error)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	require.Len(t, resp.Error.Fields, 2)
	assert.Equal(t, "status", resp.Error.Fields[0].Field)
	assert.Equal(t, "Unknown order status", resp.Error.Fields[0].Message)
	assert.Equal(t, "type", resp.Error.Fields[1].Field)
	assert.Equal(t, "Unknown sync log type", resp.Error.Fields[1].Message)
}

func TestFormatValidationErrors_PlainError(t *testing.T) {
	resp := FormatValidationErrors(errors.New("invalid character '}'"), "")

	assert.Equal(t, "invalid character '}'", resp.Error.Message)
	assert.Empty(t, resp.Error.Fields)
}
