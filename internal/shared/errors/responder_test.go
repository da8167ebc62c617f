package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var errQuota = errors.New("quota exceeded")

func serve(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/v1/reminders/:id", func(c *gin.Context) { r.RespondError(c, err) })
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reminders/abc", nil))
	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_UsesMappers(t *testing.T) {
	r := NewResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errQuota) {
			return ErrStorageUnavailable.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := serve(t, r, errQuota)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, TypeStorageUnavailable, problem.Type)
	require.Equal(t, "/v1/reminders/abc", problem.Instance)
}

func TestResponder_FallsBackToInternal(t *testing.T) {
	rec, problem := serve(t, NewResponder("https://petcare.example"), errors.New("boom"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "https://petcare.example"+TypeInternal, problem.Type)
	require.Equal(t, "boom", problem.Detail)
}

func TestResponder_PassesProblemThrough(t *testing.T) {
	rec, problem := serve(t, NewResponder(""), NewValidationProblem("petId", "is required"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, map[string]string{"petId": "is required"}, problem.Fields)
	require.Equal(t, "petId is required", problem.Detail)
}

func TestProblemDetail_WithFieldCopies(t *testing.T) {
	base := NewValidationProblem("title", "is required")
	extended := base.WithField("dueDate", "must match YYYY-MM-DD")
	require.Len(t, base.Fields, 1)
	require.Len(t, extended.Fields, 2)
}
