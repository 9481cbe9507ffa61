package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(err error) (int, HTTPError) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, err, "failed_to_do_it")

	var out HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func TestFromError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrBusiness("slot_taken"), http.StatusConflict, "slot_taken"},
		{ErrBusiness("invalid_day"), http.StatusBadRequest, "invalid_day"},
		{ErrBusiness("not_allowed"), http.StatusForbidden, "not_allowed"},
		{fmt.Errorf("wrap: %w", ErrBusiness("not_found")), http.StatusNotFound, "not_found"},
		{ErrBusiness("something_new"), http.StatusBadRequest, "something_new"},
		{errors.New("db down"), http.StatusInternalServerError, "failed_to_do_it"},
	}

	for _, tt := range tests {
		status, body := write(tt.err)
		assert.Equal(t, tt.status, status, tt.code)
		assert.Equal(t, tt.code, body.Code)
		require.NotEmpty(t, body.Message)
	}
}

func TestFromError_HidesFaultDetails(t *testing.T) {
	_, body := write(errors.New("pq: password authentication failed"))
	assert.NotContains(t, body.Message, "pq")
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("create: %w", ErrBusiness("slot_taken"))

	assert.True(t, IsBusiness(err, "slot_taken"))
	assert.False(t, IsBusiness(err, "past_date"))
	assert.False(t, IsBusiness(errors.New("slot_taken"), "slot_taken"))
}
