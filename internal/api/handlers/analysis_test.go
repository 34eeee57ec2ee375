package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	// Validation rejects these requests before any service is touched.
	h := &AnalysisHandler{}
	router := gin.New()
	router.GET("/analysis/week", h.GetWeeklyAnalysis)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetWeeklyAnalysisRejectsBadDate(t *testing.T) {
	router := newValidationRouter()
	w := get(router, "/analysis/week?date=not-a-date")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestGetWeeklyAnalysisRejectsBadDays(t *testing.T) {
	router := newValidationRouter()

	w := get(router, "/analysis/week?days=Monday,Funday")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(router, "/analysis/week?days=,,")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWeeklyAnalysisRejectsBadOwnership(t *testing.T) {
	router := newValidationRouter()

	for _, value := range []string{"abc", "-5", "150"} {
		w := get(router, "/analysis/week?min_ownership="+value)
		assert.Equal(t, http.StatusBadRequest, w.Code, "min_ownership=%s should be rejected", value)
	}
}

func TestGetWeeklyAnalysisRejectsBadWaiversFlag(t *testing.T) {
	router := newValidationRouter()
	w := get(router, "/analysis/week?include_waivers=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseTargetDays(t *testing.T) {
	days, err := parseTargetDays("monday,TUESDAY, Friday ")
	require.NoError(t, err)
	assert.Equal(t, []string{"Monday", "Tuesday", "Friday"}, days)

	_, err = parseTargetDays("Mon")
	assert.Error(t, err, "abbreviations are not accepted")
}
