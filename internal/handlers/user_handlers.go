package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srilaxmialankar/storefront-golang/internal/backend"
)

// --- Auth handlers ---
// These all delegate the actual credential checks to the remote auth
// backend; on success the session (token + user) is persisted locally and
// the favorites set is reloaded for the signed-in user.

// LoginInput is the JSON payload for /auth/login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Session.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if backend.IsAuthFailure(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Login failed"})
		return
	}

	// Favorites follow the signed-in user.
	if user != nil {
		h.Wishlist.Load(c.Request.Context(), user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SignupInput is the JSON payload for /auth/signup.
type SignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

func (h *Handlers) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Session.Signup(c.Request.Context(), backend.SignupInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Signup failed"})
		return
	}

	if user != nil {
		h.Wishlist.Load(c.Request.Context(), user.ID)
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// GoogleSigninInput carries the Google identity token to exchange.
type GoogleSigninInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

func (h *Handlers) GoogleSignin(c *gin.Context) {
	var input GoogleSigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.Session.GoogleSignin(c.Request.Context(), input.IDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed"})
		return
	}

	if user != nil {
		h.Wishlist.Load(c.Request.Context(), user.ID)
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout clears the local session. The backend holds no session state.
func (h *Handlers) Logout(c *gin.Context) {
	h.Session.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfile serves the signed-in user's profile, refreshing it from the
// backend when possible and falling back to the locally persisted copy.
func (h *Handlers) GetProfile(c *gin.Context) {
	user, err := h.Backend.Profile(c.Request.Context())
	if err != nil {
		if cached := h.Session.User(); cached != nil {
			c.JSON(http.StatusOK, gin.H{"user": cached, "message": "Showing cached profile."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
