package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required,min=3,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginInput accepts the identifier under either key; the forum
// frontend sends "login", the blog one "username".
type LoginInput struct {
	Login    string `json:"login"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// Register handles POST /api/auth/register.
func (e *Env) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	if _, err := e.Auth.Register(input.Username, input.Email, input.Password); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

// Login handles POST /api/auth/login.
func (e *Env) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindingError(c, err)
		return
	}
	login := input.Login
	if login == "" {
		login = input.Username
	}
	if login == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login or username is required"})
		return
	}

	user, err := e.Auth.Authenticate(login, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := e.Tokens.Issue(user.Username, user.RoleNames())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, LoginResponse{AccessToken: token, TokenType: "Bearer"})
}
