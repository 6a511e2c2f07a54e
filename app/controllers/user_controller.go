package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/bind"
	"github.com/mahimDev/bistro-boss-server/pkg/logger"
	"github.com/mahimDev/bistro-boss-server/pkg/response"
)

// UserController manages account records.
type UserController struct {
	users repositories.UserStore
}

func NewUserController(users repositories.UserStore) *UserController {
	return &UserController{users: users}
}

// Create registers an account unless the email is already taken. Repeat
// registrations (e.g. social logins) are acknowledged without inserting a
// duplicate.
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"required,email"`
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

	_, err = c.users.FindByEmail(r.Context(), body.Email)
	if err == nil {
		response.Success(w, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		logger.WithCtx(r.Context()).Error("user lookup failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}

	user := models.User{Name: body.Name, Email: body.Email, Role: models.RoleRegular}
	if err := c.users.Create(r.Context(), &user); err != nil {
		logger.WithCtx(r.Context()).Error("user insert failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not create user")
		return
	}

	response.Created(w, map[string]string{"insertedId": user.ID.Hex()})
}

// List returns every account. Admin only.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("user list failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "service unavailable")
		return
	}
	response.Success(w, users)
}

// Promote grants the admin role to the addressed account. Admin only.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := c.users.SetRole(r.Context(), id, models.RoleAdmin)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("role update failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not update role")
		return
	}

	response.Success(w, map[string]int{"modifiedCount": 1})
}

// Delete removes the addressed account. Admin only. Deleting an absent
// account succeeds.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.users.Delete(r.Context(), id); err != nil {
		logger.WithCtx(r.Context()).Error("user delete failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "could not delete user")
		return
	}

	response.Success(w, map[string]int{"deletedCount": 1})
}
