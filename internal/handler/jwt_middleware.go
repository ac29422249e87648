package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	CtxUserID   ctxKey = "userId"
	CtxUserRole ctxKey = "role"
)

// parseBearer valida el token del header Authorization y devuelve el
// userId y el rol de sus claims (los mismos que emite el login).
func parseBearer(secret []byte, header string) (int, string, error) {
	if !strings.HasPrefix(header, "Bearer ") {
		return 0, "", fmt.Errorf("falta el header Authorization con esquema Bearer")
	}

	token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("token inválido")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("claims inválidos")
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("token sin sub")
	}
	role, _ := claims["role"].(string)
	return int(sub), role, nil
}

// JWTAuth valida el JWT de la petición y deja userId y role en el contexto.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	secretBytes := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, role, err := parseBearer(secretBytes, r.Header.Get("Authorization"))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), CtxUserID, userID)
			ctx = context.WithValue(ctx, CtxUserRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly solo deja pasar a role == "admin".
func AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != "admin" {
				http.Error(w, "solo admin", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext saca el userId que dejó JWTAuth; 0 si no hay.
func UserIDFromContext(ctx context.Context) int {
	id, _ := ctx.Value(CtxUserID).(int)
	return id
}

// RoleFromContext saca el rol que dejó JWTAuth; vacío si no hay.
func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(CtxUserRole).(string)
	return role
}
