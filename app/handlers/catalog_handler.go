package handlers

import (
	"log"
	"net/http"

	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/avtozap/carservice/app/helpers"
)

type CatalogHandler struct {
	parts            *repositories.PartRegistry
	categoryRepo     repositories.CategoryRepository
	manufacturerRepo repositories.ManufacturerRepository
	cartSvc          *services.CartService
	render           *render.Render
}

func NewCatalogHandler(
	parts *repositories.PartRegistry,
	categoryRepo repositories.CategoryRepository,
	manufacturerRepo repositories.ManufacturerRepository,
	cartSvc *services.CartService,
	render *render.Render,
) *CatalogHandler {
	return &CatalogHandler{
		parts:            parts,
		categoryRepo:     categoryRepo,
		manufacturerRepo: manufacturerRepo,
		cartSvc:          cartSvc,
		render:           render,
	}
}

func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := h.categoryRepo.All(ctx)
	if err != nil {
		log.Printf("CatalogHandler.Home: error loading categories: %v", err)
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	manufacturers, err := h.manufacturerRepo.All(ctx)
	if err != nil {
		log.Printf("CatalogHandler.Home: error loading manufacturers: %v", err)
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	parts, err := h.parts.AllParts(ctx)
	if err != nil {
		log.Printf("CatalogHandler.Home: error loading parts: %v", err)
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CatalogHandler.Home: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":         "Car Parts Store",
		"Categories":    categories,
		"Manufacturers": manufacturers,
		"Parts":         parts,
		"Cart":          cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "home", data)
}

func (h *CatalogHandler) PartDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vars := mux.Vars(r)
	kind := models.PartKind(vars["kind"])
	slug := vars["slug"]

	if !kind.Valid() {
		http.NotFound(w, r)
		return
	}

	part, err := h.parts.ResolveSlug(ctx, kind, slug)
	if err != nil {
		log.Printf("CatalogHandler.PartDetail: error loading part %s/%s: %v", kind, slug, err)
		http.Error(w, "failed to load part", http.StatusInternalServerError)
		return
	}
	if part == nil {
		http.NotFound(w, r)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CatalogHandler.PartDetail: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": part.Title,
		"Part":  part,
		"Cart":  cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "part_detail", data)
}

func (h *CatalogHandler) CategoryDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := mux.Vars(r)["slug"]

	category, err := h.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("CatalogHandler.CategoryDetail: error loading category %s: %v", slug, err)
		http.Error(w, "failed to load category", http.StatusInternalServerError)
		return
	}
	if category == nil {
		http.NotFound(w, r)
		return
	}

	parts, err := h.parts.PartsByCategory(ctx, category.ID)
	if err != nil {
		log.Printf("CatalogHandler.CategoryDetail: error loading parts for category %s: %v", slug, err)
		http.Error(w, "failed to load category", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CatalogHandler.CategoryDetail: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":    category.Name,
		"Category": category,
		"Parts":    parts,
		"Cart":     cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "category_detail", data)
}
