package handlers

import (
	"log"
	"net/http"

	"github.com/avtozap/carservice/app/helpers"
	"github.com/avtozap/carservice/app/models"
	"github.com/avtozap/carservice/app/repositories"
	"github.com/avtozap/carservice/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo     repositories.UserRepository
	customerRepo repositories.CustomerRepository
	sessionStore sessions.SessionStore
	validator    *validator.Validate
	render       *render.Render
}

func NewAuthHandler(
	userRepo repositories.UserRepository,
	customerRepo repositories.CustomerRepository,
	sessionStore sessions.SessionStore,
	validator *validator.Validate,
	render *render.Render,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		sessionStore: sessionStore,
		validator:    validator,
		render:       render,
	}
}

type RegistrationForm struct {
	Username  string `form:"username" validate:"required,min=3,max=100"`
	Email     string `form:"email" validate:"required,email"`
	FirstName string `form:"first_name" validate:"max=100"`
	LastName  string `form:"last_name" validate:"max=100"`
	Password  string `form:"password" validate:"required,min=6"`
	Phone     string `form:"phone" validate:"max=20"`
	Address   string `form:"address" validate:"max=255"`
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Registration"})
	_ = h.render.HTML(w, http.StatusOK, "registration", data)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/registration", "error", "Could not read form data")
		return
	}

	form := RegistrationForm{
		Username:  r.FormValue("username"),
		Email:     r.FormValue("email"),
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Password:  r.FormValue("password"),
		Phone:     r.FormValue("phone"),
		Address:   r.FormValue("address"),
	}
	if err := h.validator.Struct(&form); err != nil {
		message := "Invalid registration data"
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, msg := range helpers.FormatValidationErrors(verrs) {
				message = msg
				break
			}
		}
		redirectWithMessage(w, r, "/registration", "error", message)
		return
	}

	if existing, err := h.userRepo.FindByUsername(ctx, form.Username); err != nil {
		log.Printf("AuthHandler.RegisterPost: error checking username: %v", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	} else if existing != nil {
		redirectWithMessage(w, r, "/registration", "error", "Username is already taken")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("AuthHandler.RegisterPost: error hashing password: %v", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Username:  form.Username,
		Email:     form.Email,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Password:  string(hashed),
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		log.Printf("AuthHandler.RegisterPost: error creating user: %v", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	// The shop-side profile appears right away so the first checkout does
	// not need a lazy create.
	customer := &models.Customer{
		UserID:  user.ID,
		Phone:   form.Phone,
		Address: form.Address,
	}
	if err := h.customerRepo.Create(ctx, customer); err != nil {
		log.Printf("AuthHandler.RegisterPost: error creating customer: %v", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.RegisterPost: error starting session: %v", err)
	}
	redirectWithMessage(w, r, "/", "info", "Welcome aboard!")
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	data := helpers.GetBaseData(r, map[string]interface{}{"Title": "Login"})
	_ = h.render.HTML(w, http.StatusOK, "login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		redirectWithMessage(w, r, "/login", "error", "Could not read form data")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.userRepo.FindByUsername(ctx, username)
	if err != nil {
		log.Printf("AuthHandler.LoginPost: error loading user %s: %v", username, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		redirectWithMessage(w, r, "/login", "error", "Wrong username or password")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.LoginPost: error starting session: %v", err)
		redirectWithMessage(w, r, "/login", "error", "Could not start a session")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("AuthHandler.Logout: error clearing session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
