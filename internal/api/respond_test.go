package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tactical-server/internal/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	respondError(c, err)
	return w
}

func TestRespondErrorValidation(t *testing.T) {
	ve := (&errs.ValidationError{}).Add("codename", "is required").Add("status", "must be one of ACTIVE, STANDBY")

	w := recordError(t, ve)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field  string `json:"field"`
			Reason string `json:"reason"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	require.Len(t, body.Fields, 2)
	assert.Equal(t, "codename", body.Fields[0].Field)
}

func TestRespondErrorNotFound(t *testing.T) {
	w := recordError(t, errs.NotFound("agent", "G-999Z"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "agent not found: G-999Z")
}

func TestRespondErrorConflict(t *testing.T) {
	w := recordError(t, errs.Conflict("agent", "agentId", "codename"))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "agentId or codename already exists")
}

func TestRespondErrorDependencyHidesCause(t *testing.T) {
	w := recordError(t, errs.Dependency("create agent", errors.New("pq: connection refused")))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "connection refused")
}
