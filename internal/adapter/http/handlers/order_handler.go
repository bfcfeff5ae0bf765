package handlers

import (
	"net/http"
	"strings"

	request "laboratorio_dental/internal/adapter/http/dto/request"
	response "laboratorio_dental/internal/adapter/http/dto/response"
	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
)

const populateDoctor = "doctor"

// OrderHandler serves the order ledger. Doctors are only read to populate responses.
type OrderHandler struct {
	orders  usecase.IOrderUseCase
	doctors usecase.IDoctorUseCase
}

func NewOrderHandler(orders usecase.IOrderUseCase, doctors usecase.IDoctorUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, doctors: doctors}
}

// CreateOrder godoc
// @Summary      Create an order
// @Description  Assigns the next order number for the category of the first job item and starts the order as Pendiente.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        order  body      request.CreateOrderRequest  true  "Order"
// @Success      201    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if !bindJSON(c, &payload) {
		return
	}

	o, err := h.orders.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromOrder(o))
}

// ListOrders godoc
// @Summary      List orders
// @Description  Newest first. populate=doctor embeds the doctor of each order.
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        status     query     string  false  "Pendiente, Procesando or Completado"
// @Param        doctor_id  query     string  false  "Doctor id"
// @Param        populate   query     string  false  "doctor"
// @Success      200        {array}   response.OrderResponse
// @Failure      400        {object}  pkg.HTTPError
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := usecase.OrderFilter{
		Status:   entities.OrderStatus(strings.TrimSpace(c.Query("status"))),
		DoctorID: c.Query("doctor_id"),
	}
	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}

	doctors, err := h.doctorsFor(c, orders)
	if err != nil {
		writeError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders, doctors))
}

// GetOrder godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     Bearer
// @Param        id        path      string  true   "Order id"
// @Param        populate  query     string  false  "doctor"
// @Success      200       {object}  response.OrderResponse
// @Failure      404       {object}  pkg.HTTPError
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}

	doctors, err := h.doctorsFor(c, []entities.Order{o})
	if err != nil {
		writeError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.WithDoctor(response.FromOrder(o), doctors))
}

// UpdateOrder godoc
// @Summary      Update an order
// @Description  Partial update. Entering Completado stamps completion_date and notifies a pending balance.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id     path      string                      true  "Order id"
// @Param        order  body      request.UpdateOrderRequest  true  "Fields to change"
// @Success      200    {object}  response.OrderResponse
// @Failure      400    {object}  pkg.HTTPError
// @Failure      404    {object}  pkg.HTTPError
// @Failure      409    {object}  pkg.HTTPError
// @Router       /orders/{id} [patch]
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var payload request.UpdateOrderRequest
	if !bindJSON(c, &payload) {
		return
	}

	o, err := h.orders.Update(c.Request.Context(), c.Param("id"), payload.ToPatch())
	if err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(o))
}

// DeleteOrder godoc
// @Summary      Delete an order
// @Tags         orders
// @Security     Bearer
// @Param        id  path  string  true  "Order id"
// @Success      204
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapLedgerError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// doctorsFor returns nil unless the caller asked for populate=doctor.
func (h *OrderHandler) doctorsFor(c *gin.Context, orders []entities.Order) (map[string]entities.Doctor, error) {
	if c.Query("populate") != populateDoctor || len(orders) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		if o.DoctorID != "" && !seen[o.DoctorID] {
			seen[o.DoctorID] = true
			ids = append(ids, o.DoctorID)
		}
	}
	return h.doctors.GetByIDs(c.Request.Context(), ids)
}
