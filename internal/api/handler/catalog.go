package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/request"
	"github.com/mcoot/pizzeria/internal/api/response"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/catalog"
)

// CatalogHandler handles products, promotions and customization records
type CatalogHandler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(svc *catalog.Service, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ListFromModels(products, response.ProductFromModel))
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), model.ProductID(id))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ProductFromModel(p))
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req request.CreateProductRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.CreateProduct(r.Context(), model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Color:       req.Color,
		Weight:      req.Weight,
		Calories:    req.Calories,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.ProductFromModel(p))
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req request.UpdateProductRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.UpdateProduct(r.Context(), model.ProductID(id), func(p *model.Product) {
		setIf(&p.Name, req.Name)
		setIf(&p.Description, req.Description)
		setIf(&p.Image, req.Image)
		setIf(&p.Color, req.Color)
		setIf(&p.Price, req.Price)
		setIf(&p.Weight, req.Weight)
		setIf(&p.Calories, req.Calories)
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ProductFromModel(p))
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), model.ProductID(id)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.NoContent(w)
}

// ListPromotions handles GET /api/promotions
func (h *CatalogHandler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.catalog.ListPromotions(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ListFromModels(promotions, response.PromotionFromModel))
}

// GetPromotion handles GET /api/promotions/{id}
func (h *CatalogHandler) GetPromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.GetPromotion(r.Context(), model.PromotionID(id))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PromotionFromModel(p))
}

// CreatePromotion handles POST /api/promotions
func (h *CatalogHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePromotionRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.CreatePromotion(r.Context(), model.Promotion{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Discount:    req.Discount,
		ProductID:   model.ProductID(req.ProductID),
		SizeID:      model.RecordID(req.SizeID),
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.PromotionFromModel(p))
}

// UpdatePromotion handles PATCH /api/promotions/{id}
func (h *CatalogHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req request.UpdatePromotionRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	p, err := h.catalog.UpdatePromotion(r.Context(), model.PromotionID(id), func(p *model.Promotion) {
		setIf(&p.Name, req.Name)
		setIf(&p.Description, req.Description)
		setIf(&p.Image, req.Image)
		setIf(&p.Discount, req.Discount)
		if req.ProductID != nil {
			p.ProductID = model.ProductID(*req.ProductID)
		}
		if req.SizeID != nil {
			p.SizeID = model.RecordID(*req.SizeID)
		}
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PromotionFromModel(p))
}

// DeletePromotion handles DELETE /api/promotions/{id}
func (h *CatalogHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeletePromotion(r.Context(), model.PromotionID(id)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.NoContent(w)
}

// ListRecords handles GET /api/records
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.catalog.ListRecords(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ListFromModels(records, response.RecordFromModel))
}

// GetRecord handles GET /api/records/{id}
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.catalog.GetRecord(r.Context(), model.RecordID(id))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RecordFromModel(rec))
}

// CreateRecord handles POST /api/records
func (h *CatalogHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRecordRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.catalog.CreateRecord(r.Context(), model.Record{
		Name:  req.Name,
		Type:  model.RecordType(req.Type),
		Price: req.Price,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.RecordFromModel(rec))
}

// UpdateRecord handles PATCH /api/records/{id}
func (h *CatalogHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req request.UpdateRecordRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	rec, err := h.catalog.UpdateRecord(r.Context(), model.RecordID(id), func(rec *model.Record) {
		setIf(&rec.Name, req.Name)
		setIf(&rec.Price, req.Price)
		if req.Type != nil {
			rec.Type = model.RecordType(*req.Type)
		}
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, response.RecordFromModel(rec))
}

// DeleteRecord handles DELETE /api/records/{id}
func (h *CatalogHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.catalog.DeleteRecord(r.Context(), model.RecordID(id)); err != nil {
		writeError(w, h.logger, err)
		return
	}
	response.NoContent(w)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
