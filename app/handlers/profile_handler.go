package handlers

import (
	"log"
	"net/http"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/services"
	"github.com/unrolled/render"
)

type ProfileHandler struct {
	orderSvc     *services.OrderService
	customerRepo repositories.CustomerRepository
	render       *render.Render
}

func NewProfileHandler(orderSvc *services.OrderService, customerRepo repositories.CustomerRepository, render *render.Render) *ProfileHandler {
	return &ProfileHandler{
		orderSvc:     orderSvc,
		customerRepo: customerRepo,
		render:       render,
	}
}

func (h *ProfileHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := identityFromRequest(r)

	customer, err := h.customerRepo.GetOrCreateByUserID(ctx, identity.UserID)
	if err != nil {
		log.Printf("ProfileHandler.Profile: error resolving customer: %v", err)
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		return
	}

	orders, err := h.orderSvc.ListByCustomer(ctx, customer.ID)
	if err != nil {
		log.Printf("ProfileHandler.Profile: error loading orders: %v", err)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":  "Your Orders",
		"Orders": orders,
	})
	_ = h.render.HTML(w, http.StatusOK, "profile", data)
}
