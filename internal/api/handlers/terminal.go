package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/pos-terminal/internal/api/middleware"
	appErrors "github.com/aaravmahajanofficial/pos-terminal/internal/errors"
	"github.com/aaravmahajanofficial/pos-terminal/internal/models"
	"github.com/aaravmahajanofficial/pos-terminal/internal/pos"
	service "github.com/aaravmahajanofficial/pos-terminal/internal/services"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils"
	"github.com/aaravmahajanofficial/pos-terminal/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type TerminalHandler struct {
	terminalService service.TerminalService
	validator       *validator.Validate
}

func NewTerminalHandler(terminalService service.TerminalService) *TerminalHandler {
	return &TerminalHandler{terminalService: terminalService, validator: validator.New()}
}

func identityFromRequest(r *http.Request) (pos.Identity, *slog.Logger, bool) {

	logger := middleware.LoggerFromContext(r.Context())

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return pos.Identity{}, logger, false
	}

	return pos.Identity{CashierID: claims.UserID.String(), SessionID: claims.SessionID()}, logger, true
}

// GetTerminal godoc
//	@Summary		Current terminal state
//	@Description	Returns the field values, cart lines and derived totals of the signed-in cashier's terminal.
//	@Tags			Terminal
//	@Produce		json
//	@Success		200	{object}	models.TerminalView
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Security		BearerAuth
//	@Router			/terminal [get]
func (h *TerminalHandler) GetTerminal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized terminal access attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		response.Success(w, http.StatusOK, h.terminalService.View(r.Context(), identity.SessionID))
	}
}

// UpdateFields godoc
//	@Summary		Edit terminal fields
//	@Description	Applies raw operator input to the item and sale fields. Omitted fields are left unchanged; grand_total and change are read-only.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			fields	body		models.UpdateFieldsRequest	true	"Raw field values"
//	@Success		200		{object}	models.TerminalView
//	@Failure		400		{object}	response.ErrorResponse	"Invalid or read-only field"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse	"Checkout in progress"
//	@Security		BearerAuth
//	@Router			/terminal/fields [patch]
func (h *TerminalHandler) UpdateFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized field update attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.UpdateFieldsRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.terminalService.UpdateFields(r.Context(), identity.SessionID, &req)
		if err != nil {
			logger.Warn("Field update rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// AddLine godoc
//	@Summary		Add the current item to the cart
//	@Description	Adds the barcode, quantity and discount fields as a cart line, merging with an existing line for the same sku. Values in the body override the fields first; an empty body uses the fields as they are.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			line	body		models.AddLineRequest	false	"Item field overrides"
//	@Success		200		{object}	models.TerminalView
//	@Failure		400		{object}	response.ErrorResponse	"Invalid quantity or discount"
//	@Failure		404		{object}	response.ErrorResponse	"Item not found"
//	@Failure		409		{object}	response.ErrorResponse	"Checkout in progress"
//	@Security		BearerAuth
//	@Router			/terminal/lines [post]
func (h *TerminalHandler) AddLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized add line attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.AddLineRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil && !errors.Is(err, utils.ErrEmptyBody) {
			logger.Warn("Invalid add line body", slog.String("error", err.Error()))
			response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
			return
		}

		view, err := h.terminalService.AddLine(r.Context(), identity.SessionID, &req)
		if err != nil {
			logger.Warn("Add line rejected", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// RemoveLine godoc
//	@Summary		Remove a cart line
//	@Description	Removes the line for the sku. An sku that is not in the cart is ignored.
//	@Tags			Terminal
//	@Produce		json
//	@Param			sku	path		string	true	"Product sku"
//	@Success		200	{object}	models.TerminalView
//	@Failure		409	{object}	response.ErrorResponse	"Checkout in progress"
//	@Security		BearerAuth
//	@Router			/terminal/lines/{sku} [delete]
func (h *TerminalHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized remove line attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.terminalService.RemoveLine(r.Context(), identity.SessionID, r.PathValue("sku"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// SelectCustomer godoc
//	@Summary		Attach a customer to the sale
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			customer	body		models.SelectCustomerRequest	true	"Customer"
//	@Success		200			{object}	models.TerminalView
//	@Failure		404			{object}	response.ErrorResponse	"Customer not found"
//	@Failure		409			{object}	response.ErrorResponse	"Checkout in progress"
//	@Security		BearerAuth
//	@Router			/terminal/customer [post]
func (h *TerminalHandler) SelectCustomer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized customer selection attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		var req models.SelectCustomerRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		view, err := h.terminalService.SelectCustomer(r.Context(), identity.SessionID, req.CustomerID)
		if err != nil {
			logger.Warn("Customer selection failed", slog.String("customerId", req.CustomerID.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, view)
	}
}

// ClearTerminal godoc
//	@Summary		Clear the cart and every field
//	@Tags			Terminal
//	@Produce		json
//	@Success		200	{object}	models.TerminalView
//	@Failure		409	{object}	response.ErrorResponse	"Checkout in progress"
//	@Security		BearerAuth
//	@Router			/terminal [delete]
func (h *TerminalHandler) ClearTerminal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized clear attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		view, err := h.terminalService.Clear(r.Context(), identity.SessionID)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Terminal cleared")
		response.Success(w, http.StatusOK, view)
	}
}

// Checkout godoc
//	@Summary		Submit the sale
//	@Description	Verifies the session and submits the cart and sale fields as one sale. The terminal is cleared only when the sale is recorded; on any error the cart and fields are kept so the cashier can retry.
//	@Tags			Terminal
//	@Produce		json
//	@Success		201	{object}	models.CheckoutResponse	"Sale recorded"
//	@Failure		400	{object}	response.ErrorResponse	"Empty cart or insufficient payment"
//	@Failure		401	{object}	response.ErrorResponse	"Session invalid"
//	@Failure		402	{object}	response.ErrorResponse	"Payment required"
//	@Failure		409	{object}	response.ErrorResponse	"Checkout already in progress"
//	@Failure		422	{object}	response.ErrorResponse	"Sale rejected by the backend"
//	@Failure		504	{object}	response.ErrorResponse	"Outcome unknown, verify before retrying"
//	@Security		BearerAuth
//	@Router			/terminal/checkout [post]
func (h *TerminalHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		identity, logger, ok := identityFromRequest(r)
		if !ok {
			logger.Warn("Unauthorized checkout attempt")
			response.Error(w, appErrors.UnauthorizedError("Authentication required"))
			return
		}

		resp, err := h.terminalService.Checkout(r.Context(), identity)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, resp)
	}
}
