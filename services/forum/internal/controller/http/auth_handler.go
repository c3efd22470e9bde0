package http

import (
	"errors"
	"net/http"
	"time"

	"qa-forum/pkg/flash"
	"qa-forum/pkg/logger"
	"qa-forum/pkg/middleware"
	"qa-forum/services/forum/internal/entity"
	"qa-forum/services/forum/internal/usecase"

	"github.com/gin-gonic/gin"
)

const (
	msgLoginFailed   = "Please enter a correct username and password. Note that both fields may be case-sensitive."
	msgLoginInactive = "This account is inactive."
)

type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	session     SessionCookie
	logger      *logger.Logger
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, session SessionCookie, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		session:     session,
		logger:      logger,
	}
}

type RegisterForm struct {
	Username  string `form:"username"`
	Email     string `form:"email"`
	Password1 string `form:"password1"`
	Password2 string `form:"password2"`
}

type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{
		"Title":  "Register",
		"Form":   RegisterForm{},
		"Errors": map[string][]string(nil),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form RegisterForm
	_ = c.ShouldBind(&form)

	_, err := h.authUseCase.Register(c.Request.Context(), usecase.RegistrationInput{
		Username:        form.Username,
		Email:           form.Email,
		Password:        form.Password1,
		PasswordConfirm: form.Password2,
	})
	if err != nil {
		var verr *entity.ValidationError
		errs := map[string][]string(nil)
		if errors.As(err, &verr) {
			errs = verr.Fields
		} else {
			flash.Add(c, flash.Error, "Error during registration: "+err.Error())
		}
		form.Password1, form.Password2 = "", ""
		render(c, http.StatusOK, "register.html", gin.H{
			"Title":  "Register",
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	flash.Add(c, flash.Success, "Registration successful. Please log in.")
	c.Redirect(http.StatusFound, LoginPath)
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"Title":        "Log in",
		"Next":         c.Query("next"),
		"FormUsername": "",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	_ = c.ShouldBind(&form)

	_, token, err := h.authUseCase.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		message := msgLoginFailed
		switch {
		case errors.Is(err, entity.ErrInactiveUser):
			message = msgLoginInactive
		case errors.Is(err, entity.ErrInvalidCredentials):
		default:
			flash.Add(c, flash.Error, "Something went wrong.")
		}
		render(c, http.StatusOK, "login.html", gin.H{
			"Title":        "Log in",
			"Error":        message,
			"Next":         form.Next,
			"FormUsername": form.Username,
		})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.Name, token, int(h.session.TTL.Seconds()), "/", "", h.session.Secure, true)
	c.Redirect(http.StatusFound, safeNext(form.Next))
}

// Logout ends the session. Revocation failures are logged and the cookie
// is cleared anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authUseCase.Logout(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		h.logger.Warn("Logout without revocation: %v", err)
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.session.Name, "", -1, "/", "", h.session.Secure, true)
	c.Redirect(http.StatusFound, LoginPath)
}
