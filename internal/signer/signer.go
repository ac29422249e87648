// Package signer firma y verifica las URLs de streaming.
//
// La firma cubre path + expiración + sesión con HMAC-SHA256 y una clave
// compartida entre el API y los nodos assetd, así assetd puede validar sin
// tocar Mongo ni Redis.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

var (
	ErrExpired      = errors.New("signed url expired")
	ErrBadSignature = errors.New("invalid signature")
)

type Signer struct {
	key []byte
}

func New(key string) *Signer {
	return &Signer{key: []byte(key)}
}

// payload canónico: path|exp|sid
func (s *Signer) sign(path string, exp int64, sessionID string) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "%s|%d|%s", path, exp, sessionID)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedURL arma la URL prefirmada completa para un archivo de asset.
// `base` es la base pública de assetd (p.e. http://assets:9100), `path`
// el path absoluto del recurso (p.e. /stream/42/720p.mp4).
func (s *Signer) SignedURL(base, path, sessionID string, ttl time.Duration) (string, int64) {
	exp := time.Now().Add(ttl).Unix()
	sig := s.sign(path, exp, sessionID)

	q := url.Values{}
	q.Set("exp", strconv.FormatInt(exp, 10))
	q.Set("sid", sessionID)
	q.Set("sig", sig)

	return base + path + "?" + q.Encode(), exp
}

// Verify valida firma y vigencia de una petición entrante en assetd.
// `query` son los parámetros de la URL recibida.
func (s *Signer) Verify(path string, query url.Values, now time.Time) error {
	expStr := query.Get("exp")
	sid := query.Get("sid")
	sig := query.Get("sig")

	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return ErrBadSignature
	}

	want := s.sign(path, exp, sid)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrBadSignature
	}

	// la expiración se chequea después de la firma: un exp adulterado
	// ya habría invalidado la firma
	if now.Unix() > exp {
		return ErrExpired
	}
	return nil
}
