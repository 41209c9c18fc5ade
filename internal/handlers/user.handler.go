package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/aminrz/transfer-registry/internal/model"
	xhttp "github.com/aminrz/transfer-registry/pkg/http"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserHandler struct {
	svc UserService
}

func RegisterUserRoutes(e *router.Group, h *UserHandler) {
	e.POST("/users", h.CreateUser)
	e.GET("/users", h.ListUsers)
	e.GET("/users/{id}", h.GetUser)
	e.PUT("/users/{id}", h.UpdateUser)
	e.DELETE("/users/{id}", h.DeleteUser)
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		svc: userService,
	}
}

type createUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	IsVerified  bool   `json:"is_verified"`
}

type updateUserRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	IsVerified  *bool   `json:"is_verified"`
}

type userListResponse struct {
	Users []*model.User `json:"users"`
}

func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *UserHandler) CreateUser(ctx *xhttp.RequestCtx) {
	var req createUserRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	var hash string
	if req.Password != "" {
		var err error
		if hash, err = hashPassword(req.Password); err != nil {
			writeError(ctx, xhttp.StatusInternalServerError, "internal error")
			return
		}
	}

	u, err := h.svc.Create(ctx, model.UserCreateRequest{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		IsVerified:   req.IsVerified,
	})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, u)
}

func (h *UserHandler) GetUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.svc.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, u)
}

func (h *UserHandler) ListUsers(ctx *xhttp.RequestCtx) {
	users, err := h.svc.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(ctx, xhttp.StatusOK, userListResponse{Users: users})
}

func (h *UserHandler) UpdateUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	patch := model.UserPatch{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		IsVerified:  req.IsVerified,
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			writeError(ctx, xhttp.StatusInternalServerError, "internal error")
			return
		}
		patch.PasswordHash = &hash
	}

	u, err := h.svc.Update(ctx, id, patch)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, u)
}

func (h *UserHandler) DeleteUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "user deleted"})
}
