package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/questx-lab/vesting/internal/common"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	common.PromCounters[common.ClaimsTotal].WithLabelValues("success").Inc()

	w := httptest.NewRecorder()
	NewHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "claims_total")
	require.Contains(t, w.Body.String(), "go_goroutines")
}
