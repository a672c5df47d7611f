package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"farmhub/internal/model"
	"farmhub/internal/service"
)

type registerRequest struct {
	Role     model.Role `json:"role"`
	Login    string     `json:"login"`
	Password string     `json:"password"`
	FullName string     `json:"full_name"`
	Phone    string     `json:"phone"`
}

func RegisterHandler(authSvc *service.AuthService, secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if req.Login == "" || req.Password == "" {
			http.Error(w, "login and password required", http.StatusBadRequest)
			return
		}
		if !req.Role.Valid() {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		if req.Role == model.RoleAdmin {
			http.Error(w, "admin accounts cannot self-register", http.StatusForbidden)
			return
		}

		user, err := authSvc.Register(r.Context(), req.Role, req.Login, req.Password, req.FullName, req.Phone)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrLoginTaken):
				http.Error(w, "login already exists", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		tokenString, err := issueToken(user, secret)
		if err != nil {
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Authorization", "Bearer "+tokenString)
		w.WriteHeader(http.StatusOK)
	}
}

func issueToken(user *model.User, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	return token.SignedString([]byte(secret))
}
