package handlers

import (
	"net/http"
	"strconv"

	response "laboratorio_dental/internal/adapter/http/dto/response"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications usecase.INotificationUseCase
}

func NewNotificationHandler(notifications usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications godoc
// @Summary  List notifications, newest first
// @Tags     notifications
// @Produce  json
// @Security Bearer
// @Param    unread  query     bool  false  "Only unread"
// @Success  200     {array}   response.NotificationResponse
// @Failure  400     {object}  pkg.HTTPError
// @Router   /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	unreadOnly := false
	if raw := c.Query("unread"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(c, invalid("unread", "boolean"))
			return
		}
		unreadOnly = v
	}

	ns, err := h.notifications.List(c.Request.Context(), unreadOnly)
	if err != nil {
		writeError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNotifications(ns))
}

// MarkNotificationRead godoc
// @Summary  Mark a notification as read
// @Tags     notifications
// @Produce  json
// @Security Bearer
// @Param    id   path      string  true  "Notification id"
// @Success  200  {object}  response.NotificationResponse
// @Failure  404  {object}  pkg.HTTPError
// @Router   /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	n, err := h.notifications.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromNotification(n))
}

// DeleteNotification godoc
// @Summary  Delete a notification
// @Tags     notifications
// @Security Bearer
// @Param    id  path  string  true  "Notification id"
// @Success  204
// @Failure  403  {object}  pkg.HTTPError
// @Failure  404  {object}  pkg.HTTPError
// @Router   /notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	if err := h.notifications.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapNotificationError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearNotifications godoc
// @Summary  Delete every notification
// @Tags     notifications
// @Produce  json
// @Security Bearer
// @Success  200  {object}  response.CountResponse
// @Failure  403  {object}  pkg.HTTPError
// @Router   /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *gin.Context) {
	n, err := h.notifications.Clear(c.Request.Context())
	if err != nil {
		writeError(c, mapNotificationError(err))
		return
	}
	c.JSON(http.StatusOK, response.CountResponse{Count: n})
}
