package handlers

import (
	"net/http"

	request "laboratorio_dental/internal/adapter/http/dto/request"
	response "laboratorio_dental/internal/adapter/http/dto/response"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctors usecase.IDoctorUseCase
}

func NewDoctorHandler(doctors usecase.IDoctorUseCase) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

// CreateDoctor godoc
// @Summary  Create a doctor
// @Tags     doctors
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    doctor  body      request.DoctorRequest  true  "Doctor"
// @Success  201     {object}  response.DoctorResponse
// @Failure  400     {object}  pkg.HTTPError
// @Router   /doctors [post]
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var payload request.DoctorRequest
	if !bindJSON(c, &payload) {
		return
	}

	d, err := h.doctors.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromDoctor(d))
}

// ListDoctors godoc
// @Summary  List doctors by name
// @Tags     doctors
// @Produce  json
// @Security Bearer
// @Success  200  {array}  response.DoctorResponse
// @Router   /doctors [get]
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	ds, err := h.doctors.List(c.Request.Context())
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDoctors(ds))
}

// GetDoctor godoc
// @Summary  Get a doctor
// @Tags     doctors
// @Produce  json
// @Security Bearer
// @Param    id   path      string  true  "Doctor id"
// @Success  200  {object}  response.DoctorResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	d, err := h.doctors.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDoctor(d))
}

// UpdateDoctor godoc
// @Summary  Replace a doctor
// @Tags     doctors
// @Accept   json
// @Produce  json
// @Security Bearer
// @Param    id      path      string                 true  "Doctor id"
// @Param    doctor  body      request.DoctorRequest  true  "Doctor"
// @Success  200     {object}  response.DoctorResponse
// @Failure  400     {object}  pkg.HTTPError
// @Failure  404     {object}  pkg.HTTPError
// @Router   /doctors/{id} [put]
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var payload request.DoctorRequest
	if !bindJSON(c, &payload) {
		return
	}

	d, err := h.doctors.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromDoctor(d))
}

// DeleteDoctor godoc
// @Summary      Delete a doctor and all of its orders
// @Description  All-or-nothing: either the doctor and every order go, or nothing changes.
// @Tags         doctors
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Doctor id"
// @Success      200  {object}  response.DoctorDeletedResponse
// @Failure      403  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      422  {object}  pkg.HTTPError
// @Router       /doctors/{id} [delete]
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	id := c.Param("id")
	n, err := h.doctors.Delete(c.Request.Context(), id)
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusOK, response.DoctorDeletedResponse{ID: id, OrdersDeleted: n})
}

// ListDoctorOrders godoc
// @Summary  List the orders of a doctor
// @Tags     doctors
// @Produce  json
// @Security Bearer
// @Param    id   path      string  true  "Doctor id"
// @Success  200  {array}   response.OrderResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /doctors/{id}/orders [get]
func (h *DoctorHandler) ListDoctorOrders(c *gin.Context) {
	orders, err := h.doctors.ListOrders(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapDoctorError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromOrders(orders, nil))
}
