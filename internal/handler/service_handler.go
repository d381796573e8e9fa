package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/homecare/internal/model"
)

// CatalogServiceInterface はサービスカタログハンドラーが必要とするサービスインターフェース。
type CatalogServiceInterface interface {
	// List は全サービスを返す。
	List(ctx context.Context) ([]*model.Service, error)
}

// ServiceHandler はサービスカタログのHTTPハンドラー。
type ServiceHandler struct {
	service CatalogServiceInterface
}

// NewServiceHandler はServiceHandlerを生成する。
func NewServiceHandler(service CatalogServiceInterface) *ServiceHandler {
	return &ServiceHandler{
		service: service,
	}
}

// ListServices はサービス一覧を取得する。
// GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toServiceResponses(services))
}
