package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kleberrossi/procman/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Created(c, user)
}

type loginRequest struct {
	Email string `json:"email" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	user, pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, gin.H{
		"user":   user,
		"tokens": pair,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Success(c, pair)
}

// Me devolve a identidade extraída do token.
func (h *AuthHandler) Me(c *gin.Context) {
	uid := GetUserID(c)
	if uid == nil {
		Unauthorized(c, "não autenticado")
		return
	}
	Success(c, gin.H{
		"id":    *uid,
		"nome":  c.GetString("user_name"),
		"email": c.GetString("user_email"),
		"papel": c.GetString("papel"),
	})
}
