package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, s *Service, msg Message) *Message {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Set(rec, msg)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	return s.Pop(httptest.NewRecorder(), req)
}

func TestSetAndPop(t *testing.T) {
	s := NewService(nil)

	got := roundTrip(t, s, Success("File звіт.txt uploaded; 100% \"done\""))
	require.NotNil(t, got)
	assert.Equal(t, KindSuccess, got.Kind)
	assert.Equal(t, "File звіт.txt uploaded; 100% \"done\"", got.Text)

	got = roundTrip(t, s, Error("File a.txt not found"))
	require.NotNil(t, got)
	assert.Equal(t, KindError, got.Kind)
}

func TestPopClearsCookie(t *testing.T) {
	s := NewService(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "flash", Value: "garbage!"})
	rec := httptest.NewRecorder()

	assert.Nil(t, s.Pop(rec, req))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "flash", cookies[0].Name)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestPopWithoutCookie(t *testing.T) {
	s := NewService(nil)
	rec := httptest.NewRecorder()
	assert.Nil(t, s.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestUnknownKindIsError(t *testing.T) {
	got := roundTrip(t, NewService(nil), Message{Kind: "weird", Text: "x"})
	require.NotNil(t, got)
	assert.Equal(t, KindError, got.Kind)
}
