package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/miyako/todoweb/internal/constants"
	"github.com/miyako/todoweb/internal/flash"
	"github.com/miyako/todoweb/internal/services"
)

// AuthHandler coordinates registration, login and logout.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"flashes": flash.Pop(c),
	})
}

// Register creates a new account from the submitted form.
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	password2 := c.PostForm("password2")

	if username == "" || password == "" {
		flash.Add(c, flash.CategoryDanger, "Username and password are required.")
		c.Redirect(http.StatusFound, "/register")
		return
	}
	if password != password2 {
		flash.Add(c, flash.CategoryDanger, "Passwords do not match.")
		c.Redirect(http.StatusFound, "/register")
		return
	}

	if _, err := h.authService.Signup(services.SignupInput{
		Username: username,
		Password: password,
	}); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			flash.Add(c, flash.CategoryDanger, "Username already taken.")
		} else {
			flash.Add(c, flash.CategoryDanger, "Could not create account.")
		}
		c.Redirect(http.StatusFound, "/register")
		return
	}

	flash.Add(c, flash.CategorySuccess, "Account created. Please login.")
	c.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"flashes": flash.Pop(c),
		"next":    c.Query("next"),
	})
}

// Login authenticates the submitted credentials and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.authService.Login(services.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		flash.Add(c, flash.CategoryDanger, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	// Drop any state held by the anonymous session before binding the new
	// identity, so a pre-login session cannot be fixated.
	session := sessions.Default(c)
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	session.Set(constants.SessionKeyUsername, user.Username)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	flash.Add(c, flash.CategorySuccess, "Logged in successfully.")

	next := c.PostForm("next")
	if next == "" {
		next = c.Query("next")
	}
	c.Redirect(http.StatusFound, safeNext(next))
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Failed to logout")
		return
	}

	flash.Add(c, flash.CategoryInfo, "Logged out.")
	c.Redirect(http.StatusFound, "/login")
}

// safeNext returns next if it is a local path, otherwise the dashboard.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
