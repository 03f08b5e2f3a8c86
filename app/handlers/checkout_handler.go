package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/services"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	cartSvc      *services.CartService
	checkoutSvc  *services.CheckoutService
	customerRepo repositories.CustomerRepository
	render       *render.Render
}

func NewCheckoutHandler(
	cartSvc *services.CartService,
	checkoutSvc *services.CheckoutService,
	customerRepo repositories.CustomerRepository,
	render *render.Render,
) *CheckoutHandler {
	return &CheckoutHandler{
		cartSvc:      cartSvc,
		checkoutSvc:  checkoutSvc,
		customerRepo: customerRepo,
		render:       render,
	}
}

func (h *CheckoutHandler) CheckoutGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.cartSvc.ResolveCart(ctx, identityFromRequest(r))
	if err != nil {
		log.Printf("CheckoutHandler.CheckoutGet: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	cart, err = h.cartSvc.CartWithItems(ctx, cart.ID)
	if err != nil {
		log.Printf("CheckoutHandler.CheckoutGet: error loading cart: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Checkout",
		"Cart":  cart,
	})
	_ = h.render.HTML(w, http.StatusOK, "checkout", data)
}

// MakeOrder is the one POST that consumes a cart. Login is enforced by the
// route; the whole order creation is transactional inside the service.
func (h *CheckoutHandler) MakeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFromRequest(r)

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/checkout", "error", "Could not read form data")
		return
	}

	form := services.OrderForm{
		FirstName:  r.FormValue("first_name"),
		LastName:   r.FormValue("last_name"),
		Phone:      r.FormValue("phone"),
		Address:    r.FormValue("address"),
		BuyingType: r.FormValue("buying_type"),
		Comment:    r.FormValue("comment"),
	}
	if rawDate := r.FormValue("order_date"); rawDate != "" {
		orderDate, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			redirectWithMessage(w, r, "/checkout", "error", "Order date must look like 2006-01-02")
			return
		}
		form.OrderDate = orderDate
	}

	customer, err := h.customerRepo.GetOrCreateByUserID(ctx, identity.UserID)
	if err != nil {
		log.Printf("CheckoutHandler.MakeOrder: error resolving customer: %v", err)
		http.Error(w, "failed to resolve customer", http.StatusInternalServerError)
		return
	}

	cart, err := h.cartSvc.ResolveCart(ctx, identity)
	if err != nil {
		log.Printf("CheckoutHandler.MakeOrder: error resolving cart: %v", err)
		http.Error(w, "failed to resolve cart", http.StatusInternalServerError)
		return
	}

	if _, err := h.checkoutSvc.PlaceOrder(ctx, customer.ID, cart.ID, form); err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			redirectWithMessage(w, r, "/checkout", "error", verr.Error())
		case errors.Is(err, services.ErrCartOrdered):
			redirectWithMessage(w, r, "/checkout", "error", "This cart has already been checked out")
		default:
			log.Printf("CheckoutHandler.MakeOrder: placing order failed: %v", err)
			redirectWithMessage(w, r, "/checkout", "error", "Could not place the order, please try again")
		}
		return
	}

	redirectWithMessage(w, r, "/", "info", "Thank you for your order! A manager will contact you shortly")
}
