package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/wordgroups/internal/database"
	"github.com/mrlokans/wordgroups/internal/database/wordgroups"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	id, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, uint(0), id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid id")
}

func TestParseIDParam_Negative(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "-1"}}

	_, ok := parseIDParam(c, "id")

	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseIntQuery(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/?limit=5", nil)

	v, ok := parseIntQuery(c, "limit", 20)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	v, ok = parseIntQuery(c, "offset", 7)
	assert.True(t, ok)
	assert.Equal(t, 7, v, "absent parameter falls back to the default")
}

func TestParseIntQuery_Invalid(t *testing.T) {
	for _, raw := range []string{"ten", "-3"} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/?limit="+raw, nil)

		_, ok := parseIntQuery(c, "limit", 20)
		assert.False(t, ok, raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
	}
}

func TestRespondStoreError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{wordgroups.ErrWordGroupNotFound, http.StatusNotFound},
		{fmt.Errorf("update: %w", wordgroups.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("resolve: %w", database.ErrUnknownLanguage), http.StatusBadRequest},
		{fmt.Errorf("insert: %w", database.ErrConstraintViolation), http.StatusBadRequest},
		{wordgroups.ErrInvalidLimit, http.StatusBadRequest},
		{errors.New("disk I/O error"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondStoreError(c, tc.err, "test")
		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondInternalError(c, errors.New("password=hunter2"), "test")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "hunter2")
	assert.Contains(t, w.Body.String(), "internal server error")
}
