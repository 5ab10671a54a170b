package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"accountd/internal/services"
)

type RegisterHandler struct {
	registration services.RegistrationService
}

func NewRegisterHandler(registration services.RegistrationService) *RegisterHandler {
	return &RegisterHandler{registration: registration}
}

type registerRequest struct {
	Login    string `json:"user_login" binding:"required,min=3"`
	Password string `json:"user_password" binding:"required,min=6"`
	Email    string `json:"user_mail" binding:"required,email"`
}

type confirmRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary      Начало регистрации
// @Description  Создаёт заявку и отправляет код подтверждения на почту
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Данные регистрации"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /register/init [post]
func (h *RegisterHandler) Init(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.registration.InitRegistration(c.Request.Context(), req.Login, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login or email already in use"})
			return
		}
		log.Printf("[register][init] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start registration"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "confirmation code sent",
		"email":   req.Email,
	})
}

// @Summary      Подтверждение регистрации
// @Description  Обменивает код из письма на подтверждённый аккаунт
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      confirmRequest  true  "Почта и код"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /register/confirm [post]
func (h *RegisterHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.registration.Confirm(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFoundOrExpired):
			// «не найдено» и «истёк» неразличимы наружу
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired code"})
		case errors.Is(err, services.ErrDuplicateIdentity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "login or email already in use"})
		default:
			log.Printf("[register][confirm] service error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "confirmation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "success"})
}

// @Summary      Повторная отправка кода
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      resendRequest  true  "Почта"
// @Success      200   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /register/resend [post]
func (h *RegisterHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.registration.Resend(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, services.ErrResendThrottled) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try later"})
			return
		}
		log.Printf("[register][resend] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resend failed"})
		return
	}

	// для неизвестной почты ответ такой же — существование заявки не раскрываем
	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent"})
}

// @Summary      Регистрация без подтверждения
// @Description  Одношаговый вариант: аккаунт создаётся сразу
// @Tags         Register
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Данные регистрации"
// @Success      201   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *RegisterHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.registration.Register(c.Request.Context(), req.Login, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateIdentity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "login or email already in use"})
			return
		}
		log.Printf("[register][direct] service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// PasswordHash помечен json:"-", наружу не уйдёт
	c.JSON(http.StatusCreated, user)
}
