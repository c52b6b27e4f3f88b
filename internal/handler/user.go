package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// UserHandler is the admin user directory.
type UserHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Tokens: t}
}

type createUserReq struct {
	registerReq
	Role string `json:"role" validate:"omitempty,oneof=guest staff admin"`
}

type updateUserReq struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Phone     *string `json:"phone" validate:"omitempty,max=32"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Role      *string `json:"role" validate:"omitempty,oneof=guest staff admin"`
	IsActive  *bool   `json:"is_active"`
}

type resetPasswordReq struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// List handles GET /api/users?role=.
func (h *UserHandler) List(c echo.Context) error {
	role := c.QueryParam("role")
	if role != "" && !model.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}
	p := pageParams(c)
	users, total, err := h.Users.List(c.Request().Context(), role, p)
	if err != nil {
		return err
	}
	return paged(c, users, total, p)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Create lets an admin add a user of any role; guest is the default.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	u := model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Role:      req.Role,
	}
	if err := h.Users.Create(c.Request().Context(), &u, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with this email already exists"})
		}
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /api/users/:id.  Deactivating a user also revokes
// their refresh tokens.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req updateUserReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Email != nil && repository.NormalizeEmail(*req.Email) != u.Email {
		if err := h.Users.UpdateEmail(ctx, id, *req.Email); err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "Email is already in use"})
			}
			return err
		}
		u.Email = repository.NormalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	wasActive := u.IsActive
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if err := h.Users.Update(ctx, &u); err != nil {
		return err
	}
	if wasActive && !u.IsActive {
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword handles PUT /api/users/:id/reset-password.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req resetPasswordReq
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.Users.UpdatePassword(ctx, id, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return err
	}
	if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Password reset successfully"})
}
