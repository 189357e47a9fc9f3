package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/atech/cms/internal/api/types"
	"github.com/atech/cms/internal/api/validators"
)

// AdminSubject is the subject of every admin token; there is a single
// shared admin password.
const AdminSubject = "admin"

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	passwordHash []byte
	hmacSecret   []byte
	validate     *validator.Validate
	now          func() time.Time
}

// NewAuthHandler hashes the admin password once so it is never compared in
// plain text.
func NewAuthHandler(password string, secret []byte, v *validator.Validate) (*AuthHandler, error) {
	ph, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AuthHandler{passwordHash: ph, hmacSecret: secret, validate: v, now: time.Now}, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, validators.Message(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		writeErrorStr(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := h.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   AdminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})
	tokenString, err := token.SignedString(h.hmacSecret)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, types.TokenResponse{Token: tokenString, ExpiresIn: int64(tokenTTL.Seconds())})
}
