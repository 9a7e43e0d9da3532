package handlers

import (
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/boardstate/internal/adapters/http/dto"
	"github.com/jsamuelsen11/boardstate/internal/domain"
	"github.com/jsamuelsen11/boardstate/internal/ports"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	catalog ports.ProductCatalog
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog ports.ProductCatalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ListProducts handles GET /api/v1/products.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.ToProductListResponse(h.catalog.State()))
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	p, ok := h.catalog.Product(id)
	if !ok {
		dto.WriteErrorResponse(w, r, fmt.Errorf("product %s: %w", id, domain.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(&p))
}

// CreateProduct handles POST /api/v1/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.catalog.AddProduct(req.Name, *req.Price, req.Description)

	writeJSON(w, http.StatusCreated, dto.ToProductListResponse(h.catalog.State()))
}

// UpdateProduct handles PATCH /api/v1/products/{id}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.catalog.UpdateProduct(id, req.ToPatch())

	p, ok := h.catalog.Product(id)
	if !ok {
		dto.WriteErrorResponse(w, r, fmt.Errorf("product %s: %w", id, domain.ErrNotFound))
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(&p))
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if !requestLive(w, r) {
		return
	}
	h.catalog.RemoveProduct(id)

	w.WriteHeader(http.StatusNoContent)
}

// Events handles GET /api/v1/products/events.
func (h *ProductHandler) Events(w http.ResponseWriter, r *http.Request) {
	streamState(w, r, h.catalog, dto.ToProductListResponse)
}
