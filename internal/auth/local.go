package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jobboard-backend/internal/apperror"
	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
	"jobboard-backend/internal/validation"
)

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Name       string  `json:"name" binding:"required,notblank,min=2"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6,max=72"`
	Role       string  `json:"role" binding:"omitempty,oneof=user employer"`
	ResumeLink *string `json:"resumeLink" binding:"omitempty,url"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterHandler creates a seeker or employer account and signs a token for it.
// @Summary Register a new account
// @Description Email must be unique. Role defaults to 'user' (job seeker).
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Role can be only 'user' or 'employer'"
// @Success 201 {object} model.AuthResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body, or email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (h *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}

	email := normalizeEmail(info.Email)
	role := info.Role
	if role == "" {
		role = model.RoleSeeker
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// max counts characters, bcrypt counts bytes
		utilities.RespondError(c, apperror.Validation("password must be at most 72 bytes", err))
		return
	}
	if err != nil {
		utilities.RespondError(c, apperror.New(apperror.KindUnknown, "Failed to hash password", err))
		return
	}

	user := model.User{
		Name:       strings.TrimSpace(info.Name),
		Email:      email,
		Password:   hashedPassword,
		Role:       role,
		ResumeLink: info.ResumeLink,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			LogAuthAttempt(log.WarnLevel, "Register", "Fail", email, "email already registered")
			utilities.RespondError(c, apperror.Conflict("User already exists", err))
			return
		}
		utilities.RespondError(c, apperror.Storage("Failed to create user", err))
		return
	}

	token, err := GenerateStandardToken(user.ID)
	if err != nil {
		utilities.RespondError(c, apperror.New(apperror.KindUnknown, "Failed to generate access token", err))
		return
	}

	LogAuthAttempt(log.InfoLevel, "Register", "Success", user.ID.String(), "")
	c.JSON(http.StatusCreated, model.AuthResponse{Token: token, User: user})
}

// LoginHandler checks an email and password and signs a token for the account.
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AuthResponse "Logged in"
// @Failure 400 {object} utilities.ErrorResponse "Invalid body"
// @Failure 401 {object} utilities.ErrorResponse "Unknown email or wrong password"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (h *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.RespondError(c, apperror.Validation(validation.Message(err, "Invalid request body"), err))
		return
	}

	email := normalizeEmail(info.Email)

	var user model.User
	err := h.DB.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		LogAuthAttempt(log.WarnLevel, "Login", "Fail", email, "unknown email")
		utilities.RespondError(c, apperror.Unauthenticated("Invalid credentials", nil))
		return
	case err != nil:
		utilities.RespondError(c, apperror.Storage("Failed to retrieve user", err))
		return
	}

	if !utilities.VerifyPassword(user.Password, info.Password) {
		LogAuthAttempt(log.WarnLevel, "Login", "Fail", email, "wrong password")
		utilities.RespondError(c, apperror.Unauthenticated("Invalid credentials", nil))
		return
	}

	token, err := GenerateStandardToken(user.ID)
	if err != nil {
		utilities.RespondError(c, apperror.New(apperror.KindUnknown, "Failed to generate access token", err))
		return
	}

	LogAuthAttempt(log.InfoLevel, "Login", "Success", user.ID.String(), "")
	c.JSON(http.StatusOK, model.AuthResponse{Token: token, User: user})
}

// MeHandler returns the authenticated user.
// @Summary Get the current user
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.MeResponse "Current user"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (h *LocalAuthHandler) MeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		utilities.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MeResponse{User: user})
}
