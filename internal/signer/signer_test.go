package signer

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSigned(t *testing.T, raw string) (path string, query url.Values) {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Path, u.Query()
}

func TestSignedURLRoundTrip(t *testing.T) {
	s := New("clave-secreta")

	raw, exp := s.SignedURL("http://assets:9100", "/stream/42/720p.mp4", "sess-1", time.Hour)
	assert.True(t, strings.HasPrefix(raw, "http://assets:9100/stream/42/720p.mp4?"))
	assert.Greater(t, exp, time.Now().Unix())

	path, q := parseSigned(t, raw)
	assert.Equal(t, "sess-1", q.Get("sid"))
	require.NoError(t, s.Verify(path, q, time.Now()))
}

func TestVerifyExpired(t *testing.T) {
	s := New("clave-secreta")

	raw, _ := s.SignedURL("http://assets:9100", "/stream/42/720p.mp4", "sess-1", time.Minute)
	path, q := parseSigned(t, raw)

	// dentro de la ventana pasa, después de la ventana da expirado
	require.NoError(t, s.Verify(path, q, time.Now()))
	err := s.Verify(path, q, time.Now().Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyTampered(t *testing.T) {
	s := New("clave-secreta")

	raw, _ := s.SignedURL("http://assets:9100", "/stream/42/720p.mp4", "sess-1", time.Hour)
	path, q := parseSigned(t, raw)

	t.Run("otro path", func(t *testing.T) {
		err := s.Verify("/stream/42/1080p.mp4", q, time.Now())
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("exp adulterado", func(t *testing.T) {
		q2, _ := url.ParseQuery(q.Encode())
		q2.Set("exp", "9999999999")
		err := s.Verify(path, q2, time.Now())
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("otra sesion", func(t *testing.T) {
		q2, _ := url.ParseQuery(q.Encode())
		q2.Set("sid", "sess-2")
		err := s.Verify(path, q2, time.Now())
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("firma truncada", func(t *testing.T) {
		q2, _ := url.ParseQuery(q.Encode())
		q2.Set("sig", q.Get("sig")[:10])
		err := s.Verify(path, q2, time.Now())
		assert.ErrorIs(t, err, ErrBadSignature)
	})

	t.Run("otra clave", func(t *testing.T) {
		otro := New("otra-clave")
		err := otro.Verify(path, q, time.Now())
		assert.ErrorIs(t, err, ErrBadSignature)
	})
}

func TestVerifyMissingParams(t *testing.T) {
	s := New("clave-secreta")
	err := s.Verify("/stream/1/480p.mp4", url.Values{}, time.Now())
	assert.ErrorIs(t, err, ErrBadSignature)
}
