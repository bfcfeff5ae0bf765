package handlers

import (
	"net/http"
	"strings"

	request "laboratorio_dental/internal/adapter/http/dto/request"
	response "laboratorio_dental/internal/adapter/http/dto/response"
	"laboratorio_dental/internal/adapter/http/middleware"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
)

// LedgerHandler serves the payments and notes embedded in an order.
// Every operation answers with the whole updated order.
type LedgerHandler struct {
	payments usecase.IPaymentUseCase
	notes    usecase.INoteUseCase
}

func NewLedgerHandler(payments usecase.IPaymentUseCase, notes usecase.INoteUseCase) *LedgerHandler {
	return &LedgerHandler{payments: payments, notes: notes}
}

// AddPayment godoc
// @Summary      Add a payment
// @Description  With mp_payload the card is charged through Mercado Pago for exactly amount first. A payment that settles the balance notifies it.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path      string                  true  "Order id"
// @Param        payment  body      request.PaymentRequest  true  "Payment"
// @Success      201      {object}  response.OrderResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Failure      409      {object}  pkg.HTTPError
// @Failure      422      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /orders/{id}/payments [post]
func (h *LedgerHandler) AddPayment(c *gin.Context) {
	var payload request.PaymentRequest
	if !bindJSON(c, &payload) {
		return
	}

	o, err := h.payments.AddPayment(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// UpdatePayment godoc
// @Summary      Replace a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id          path      string                  true  "Order id"
// @Param        payment_id  path      string                  true  "Payment id"
// @Param        payment     body      request.PaymentRequest  true  "Payment"
// @Success      200         {object}  response.OrderResponse
// @Failure      400         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /orders/{id}/payments/{payment_id} [put]
func (h *LedgerHandler) UpdatePayment(c *gin.Context) {
	var payload request.PaymentRequest
	if !bindJSON(c, &payload) {
		return
	}

	in := payload.ToInput()
	in.ProviderPayload = nil
	o, err := h.payments.UpdatePayment(c.Request.Context(), c.Param("id"), c.Param("payment_id"), in)
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// DeletePayment godoc
// @Summary      Delete a payment
// @Tags         payments
// @Produce      json
// @Security     Bearer
// @Param        id          path      string  true  "Order id"
// @Param        payment_id  path      string  true  "Payment id"
// @Success      200         {object}  response.OrderResponse
// @Failure      403         {object}  pkg.HTTPError
// @Failure      404         {object}  pkg.HTTPError
// @Router       /orders/{id}/payments/{payment_id} [delete]
func (h *LedgerHandler) DeletePayment(c *gin.Context) {
	o, err := h.payments.DeletePayment(c.Request.Context(), c.Param("id"), c.Param("payment_id"))
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// AddNote godoc
// @Summary      Add a note
// @Description  author defaults to the display name of the caller.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path      string               true  "Order id"
// @Param        note  body      request.NoteRequest  true  "Note"
// @Success      201   {object}  response.OrderResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Router       /orders/{id}/notes [post]
func (h *LedgerHandler) AddNote(c *gin.Context) {
	var payload request.NoteRequest
	if !bindJSON(c, &payload) {
		return
	}

	author := strings.TrimSpace(payload.Author)
	if author == "" {
		if p, ok := middleware.PrincipalFrom(c); ok {
			author = p.Name
			if author == "" {
				author = p.Username
			}
		}
	}

	o, err := h.notes.AddNote(c.Request.Context(), c.Param("id"), usecase.NoteInput{Text: payload.Text, Author: author})
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// UpdateNote godoc
// @Summary      Edit a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path      string                     true  "Order id"
// @Param        note_id  path      string                     true  "Note id"
// @Param        note     body      request.UpdateNoteRequest  true  "Note"
// @Success      200      {object}  response.OrderResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /orders/{id}/notes/{note_id} [put]
func (h *LedgerHandler) UpdateNote(c *gin.Context) {
	var payload request.UpdateNoteRequest
	if !bindJSON(c, &payload) {
		return
	}

	o, err := h.notes.UpdateNote(c.Request.Context(), c.Param("id"), c.Param("note_id"), payload.Text)
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// DeleteNote godoc
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     Bearer
// @Param        id       path      string  true  "Order id"
// @Param        note_id  path      string  true  "Note id"
// @Success      200      {object}  response.OrderResponse
// @Failure      403      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /orders/{id}/notes/{note_id} [delete]
func (h *LedgerHandler) DeleteNote(c *gin.Context) {
	o, err := h.notes.DeleteNote(c.Request.Context(), c.Param("id"), c.Param("note_id"))
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}
