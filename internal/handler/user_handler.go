package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// /users のHTTP
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
	Role      string `json:"role" validate:"omitempty,oneof=customer admin"`
}

func (h *UserHandler) RegisterRoutes(r Router) {
	r.POST("/users", h.create)
	r.GET("/users/:id", h.detail)
}

func (h *UserHandler) create(c echo.Context) error {
	var req CreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *UserHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
