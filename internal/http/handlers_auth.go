package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

// authResponse is the login/register payload: a bearer token plus the
// public user fields.
type authResponse struct {
	Token string    `json:"token"`
	User  core.User `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email e senha obrigatórios")
		return
	}

	user, err := s.store.UserByEmail(r.Context(), req.Email)
	if err != nil || user.Password != req.Password {
		if err != nil && !errors.Is(err, ledger.ErrNotFound) {
			slog.ErrorContext(r.Context(), "Login lookup error", "error", err, "email", req.Email)
		}
		writeError(w, http.StatusUnauthorized, "Credenciais inválidas")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue error", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "Todos os campos são obrigatórios")
		return
	}

	user, err := s.store.CreateUser(r.Context(), core.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "Email já cadastrado")
			return
		}
		slog.ErrorContext(r.Context(), "Register error", "error", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue error", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	user, err := s.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Profile lookup error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// handlePatchProfile updates the display name and, with the current
// password confirmed, the password. A fresh token is returned because the
// claims embed the name.
func (s *Server) handlePatchProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		Name            string `json:"name"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.store.UserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Usuário não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Profile lookup error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			writeError(w, http.StatusBadRequest, "Senha atual é obrigatória")
			return
		}
		if user.Password != req.CurrentPassword {
			writeError(w, http.StatusUnauthorized, "Senha atual incorreta")
			return
		}
		user.Password = req.NewPassword
	}

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		slog.ErrorContext(r.Context(), "Profile update error", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issue error", "error", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		User  core.User `json:"user"`
		Token string    `json:"token"`
	}{User: user, Token: token})
}
