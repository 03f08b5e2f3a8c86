package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/services"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc *services.CartService
	parts   *repositories.PartRegistry
	render  *render.Render
}

func NewCartHandler(cartSvc *services.CartService, parts *repositories.PartRegistry, render *render.Render) *CartHandler {
	return &CartHandler{
		cartSvc: cartSvc,
		parts:   parts,
		render:  render,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CartHandler.GetCart: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	cart, err = h.cartSvc.CartWithItems(ctx, cart.ID)
	if err != nil {
		log.Printf("CartHandler.GetCart: error loading cart items: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Your Cart",
		"Cart":  cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "cart", data)
}

// partRefFromRequest resolves the {kind}/{slug} path pair into a part
// reference, mirroring how the catalog links into cart mutations.
func (h *CartHandler) partRefFromRequest(r *http.Request) (models.PartRef, error) {
	vars := mux.Vars(r)
	kind := models.PartKind(vars["kind"])
	if !kind.Valid() {
		return models.PartRef{}, services.ErrPartNotFound
	}
	part, err := h.parts.ResolveSlug(r.Context(), kind, vars["slug"])
	if err != nil {
		return models.PartRef{}, err
	}
	if part == nil {
		return models.PartRef{}, services.ErrPartNotFound
	}
	return part.Ref(), nil
}

func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref, err := h.partRefFromRequest(r)
	if err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CartHandler.AddToCart: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	if _, err := h.cartSvc.AddToCart(ctx, cart, ref); err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	redirectWithMessage(w, r, "/cart", "info", "Part added to cart")
}

func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ref, err := h.partRefFromRequest(r)
	if err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CartHandler.RemoveFromCart: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	if err := h.cartSvc.RemoveFromCart(ctx, cart, ref); err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	redirectWithMessage(w, r, "/cart", "info", "Part removed from cart")
}

func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/cart", "error", "Could not read form data")
		return
	}

	qty, err := strconv.Atoi(r.FormValue("qty"))
	if err != nil {
		redirectWithMessage(w, r, "/cart", "error", "Quantity must be a whole number")
		return
	}

	ref, err := h.partRefFromRequest(r)
	if err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CartHandler.ChangeQuantity: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	if _, err := h.cartSvc.ChangeQuantity(ctx, cart, ref, qty); err != nil {
		h.redirectCartError(w, r, err)
		return
	}

	redirectWithMessage(w, r, "/cart", "info", "Quantity updated")
}

func (h *CartHandler) redirectCartError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrPartNotFound):
		redirectWithMessage(w, r, "/cart", "error", "Part not found")
	case errors.Is(err, services.ErrLineItemNotFound):
		redirectWithMessage(w, r, "/cart", "error", "That part is not in your cart")
	case errors.Is(err, services.ErrInvalidQuantity):
		redirectWithMessage(w, r, "/cart", "error", "Quantity must be at least 1")
	case errors.Is(err, services.ErrCartOrdered):
		redirectWithMessage(w, r, "/cart", "error", "This cart has already been checked out")
	default:
		log.Printf("CartHandler: cart mutation failed: %v", err)
		http.Error(w, "cart operation failed", http.StatusInternalServerError)
	}
}
