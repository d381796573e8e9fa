package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/homecare/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// List は役割で絞り込んだユーザー一覧を返す。役割が空の場合は全件を返す。
	List(ctx context.Context, role model.Role) ([]*model.User, error)
	// Me は現在のユーザーを返す。認証ユーザーが存在しない場合はエラーを返す。
	Me(ctx context.Context) (*model.User, error)
	// Update はユーザーのプロフィールを部分更新する。
	Update(ctx context.Context, id int64, update model.UserUpdate) (*model.User, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// updateUserRequest はユーザー更新リクエストのボディ。
// 省略されたフィールドは更新しない。
type updateUserRequest struct {
	Role           *string `json:"role"`
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	AvatarURL      *string `json:"avatarUrl"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
	Bio            *string `json:"bio"`
	Specialization *string `json:"specialization"`
	Rating         *int    `json:"rating"`
}

// ListUsers はユーザー一覧を取得する。roleクエリパラメータで絞り込める。
// GET /api/users?role=provider
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	role := model.Role(r.URL.Query().Get("role"))
	if role != "" && !role.IsValid() {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("role", "roleはcustomer、provider、adminのいずれかを指定してください。"))
		return
	}

	users, err := h.service.List(r.Context(), role)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponses(users))
}

// Me は現在のユーザーを取得する。
// GET /api/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateUser はユーザーのプロフィールを部分更新する。
// PATCH /api/users/:id
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idURLParam(w, r, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	update := model.UserUpdate{
		Name:           req.Name,
		Email:          req.Email,
		AvatarURL:      req.AvatarURL,
		Phone:          req.Phone,
		Address:        req.Address,
		Bio:            req.Bio,
		Specialization: req.Specialization,
		Rating:         req.Rating,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		update.Role = &role
	}

	user, err := h.service.Update(r.Context(), id, update)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
