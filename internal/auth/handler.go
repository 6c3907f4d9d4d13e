package auth

import (
	"errors"
	"net/http"

	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles user registration
// @Summary      Register a new user
// @Description  Create an account. The client must log in separately to obtain a token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body Credentials true "Registration credentials"
// @Success      201 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.MessageResponse "Missing email or password"
// @Failure      409 {object} httputil.MessageResponse "User already exists"
// @Failure      500 {object} httputil.MessageResponse "Internal server error"
// @Router       /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req Credentials
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid registration request body", "error", err.Error())
		httputil.RespondMessage(w, MsgCredentialsRequired, http.StatusBadRequest)
		return
	}

	logger = logger.With("email", req.Email)

	if err := h.service.Register(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			logger.Warn("registration failed: validation error", "error", err.Error())
			httputil.RespondMessage(w, MsgCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrUserExists):
			logger.Warn("registration failed: email already exists")
			httputil.RespondMessage(w, MsgUserExists, http.StatusConflict)
		default:
			logger.Error("registration failed: internal error", "error", err.Error())
			httputil.RespondInternal(w, MsgRegistrationFailed, MsgInternalError)
		}
		return
	}

	logger.Info("user registered successfully")
	httputil.RespondMessage(w, MsgRegistered, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body Credentials true "Login credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} httputil.MessageResponse "Missing email or password"
// @Failure      401 {object} httputil.MessageResponse "Invalid credentials"
// @Failure      500 {object} httputil.MessageResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req Credentials
	if err := httputil.DecodeJSON(r, &req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondMessage(w, MsgCredentialsRequired, http.StatusBadRequest)
		return
	}

	logger = logger.With("email", req.Email)

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrCredentialsRequired):
			logger.Warn("login failed: validation error", "error", err.Error())
			httputil.RespondMessage(w, MsgCredentialsRequired, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid credentials")
			httputil.RespondMessage(w, MsgInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.Error("login failed: internal error", "error", err.Error())
			httputil.RespondInternal(w, MsgLoginFailed, MsgInternalError)
		}
		return
	}

	logger.Info("user logged in successfully")
	httputil.RespondJSON(w, TokenResponse{Token: token}, http.StatusOK)
}

// Me returns the identity carried by the presented token
// @Summary      Current identity
// @Description  Echo the claims attached by the access gate
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Identity
// @Failure      401 {object} httputil.MessageResponse "No token provided"
// @Failure      403 {object} httputil.MessageResponse "Invalid token"
// @Router       /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondMessage(w, MsgNoToken, http.StatusUnauthorized)
		return
	}
	httputil.RespondJSON(w, identity, http.StatusOK)
}
