package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/auth"
	"github.com/mahimDev/bistro-boss-server/pkg/bind"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// AuthController issues access tokens and answers role probes.
type AuthController struct {
	users repositories.UserStore
}

func NewAuthController(users repositories.UserStore) *AuthController {
	return &AuthController{users: users}
}

// IssueToken signs a JWT for the claims asserted in the request body.
// No credential check happens here; the token only proves what the caller
// already claimed, and privileged routes re-verify against stored records.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
		Name  string `json:"name"`
	}

	errs, err := bind.JSON(r, &body)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, err := auth.IssueToken(body.Email, body.Name)
	if err != nil {
		logger.WithCtx(r.Context()).Error("token signing failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not issue token")
		return
	}

	response.Success(w, map[string]string{"token": token})
}

// CheckAdmin reports whether the addressed account holds the admin role.
// Unknown accounts read as non-admin rather than an error.
func (c *AuthController) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := c.users.FindByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("admin probe failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	response.Success(w, map[string]bool{"admin": user.Role.IsAdmin()})
}
