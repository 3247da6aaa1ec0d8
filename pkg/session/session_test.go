package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_Flashes(t *testing.T) {
	store, err := NewEphemeralCookieStore("vesting")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, store.AddFlash(r, w, "Claim submitted"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	require.Equal(t, []string{"Claim submitted"}, store.PopFlashes(next, httptest.NewRecorder()))

	require.Empty(t, store.PopFlashes(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
}
