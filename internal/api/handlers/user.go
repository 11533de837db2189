package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	"github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type UserHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService, validator: validator.New()}
}

// Login godoc
//	@Summary		Sign a cashier in
//	@Description	Checks the credentials and opens a session. The returned token identifies both the cashier and the session.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			credentials	body		models.LoginRequest		true	"Cashier credentials"
//	@Success		200			{object}	models.LoginResponse
//	@Failure		400			{object}	response.ErrorResponse	"Validation error"
//	@Failure		401			{object}	response.ErrorResponse	"Invalid email or password"
//	@Failure		429			{object}	response.ErrorResponse	"Too many attempts"
//	@Router			/users/login [post]
func (h *UserHandler) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.LoginRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		resp, err := h.userService.Login(r.Context(), &req)
		if err != nil {
			logger.Error("Login failed", slog.String("email", req.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if !resp.Success {
			if resp.RetryAfter > 0 {
				response.Error(w, errors.TooManyRequestsError(resp.Message))
				return
			}

			response.Error(w, errors.UnauthorizedError(resp.Message))
			return
		}

		response.Success(w, http.StatusOK, resp)
	}
}

// Logout godoc
//	@Summary		Sign the cashier out
//	@Description	Closes the session. Any unfinished sale on the session's terminal is discarded.
//	@Tags			Users
//	@Produce		json
//	@Success		204
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/users/logout [post]
func (h *UserHandler) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			logger.Warn("Unauthorized logout attempt")
			response.Error(w, errors.UnauthorizedError("Authentication required"))
			return
		}

		if err := h.userService.Logout(r.Context(), claims); err != nil {
			response.Error(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
