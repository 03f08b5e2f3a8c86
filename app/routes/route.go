package routes

import (
	"net/http"

	"github.com/avtozap/carservice/app/audit"
	"github.com/avtozap/carservice/app/configs"
	"github.com/avtozap/carservice/app/handlers"
	"github.com/avtozap/carservice/app/middlewares"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/services"
	"github.com/avtozap/carservice/app/utils/renderer"
	"github.com/avtozap/carservice/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, sessionKeys *configs.SessionKeys, auditLog *audit.Logger) http.Handler {
	render := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(sessionKeys.AuthKey, sessionKeys.EncKey)

	partRegistry := repositories.NewPartRegistry(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	manufacturerRepo := repositories.NewManufacturerRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	transactor := repositories.NewTransactor(db)

	cartSvc := services.NewCartService(cartRepo, cartItemRepo, customerRepo, partRegistry, auditLog)
	checkoutSvc := services.NewCheckoutService(transactor, cartRepo, orderRepo, customerRepo, validate, auditLog)
	orderSvc := services.NewOrderService(orderRepo)

	catalogHandler := handlers.NewCatalogHandler(partRegistry, categoryRepo, manufacturerRepo, cartSvc, render)
	cartHandler := handlers.NewCartHandler(cartSvc, partRegistry, render)
	checkoutHandler := handlers.NewCheckoutHandler(cartSvc, checkoutSvc, customerRepo, render)
	authHandler := handlers.NewAuthHandler(userRepo, customerRepo, sessionStore, validate, render)
	profileHandler := handlers.NewProfileHandler(orderSvc, customerRepo, render)

	router := mux.NewRouter()
	router.Use(middlewares.MethodOverrideMiddleware)
	router.Use(middlewares.IdentityMiddleware(sessionStore, userRepo))

	router.HandleFunc("/", catalogHandler.Home).Methods("GET")
	router.HandleFunc("/parts/{kind}/{slug}", catalogHandler.PartDetail).Methods("GET")
	router.HandleFunc("/categories/{slug}", catalogHandler.CategoryDetail).Methods("GET")

	router.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/cart/add/{kind}/{slug}", cartHandler.AddToCart).Methods("GET")
	router.HandleFunc("/cart/remove/{kind}/{slug}", cartHandler.RemoveFromCart).Methods("GET")
	router.HandleFunc("/cart/qty/{kind}/{slug}", cartHandler.ChangeQuantity).Methods("POST")

	router.HandleFunc("/login", authHandler.LoginGet).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/registration", authHandler.RegisterGet).Methods("GET")
	router.HandleFunc("/registration", authHandler.RegisterPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	protected := router.NewRoute().Subrouter()
	protected.Use(middlewares.RequireLogin)
	protected.HandleFunc("/checkout", checkoutHandler.CheckoutGet).Methods("GET")
	protected.HandleFunc("/checkout", checkoutHandler.MakeOrder).Methods("POST")
	protected.HandleFunc("/profile", profileHandler.Profile).Methods("GET")

	csrfMiddleware := csrf.Protect(
		[]byte(configs.LoadENV.CSRFKey),
		csrf.Secure(false),
		csrf.Path("/"),
	)
	return csrfMiddleware(router)
}
