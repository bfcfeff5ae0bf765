package routes

import (
	"laboratorio_dental/internal/adapter/http/handlers"
	"laboratorio_dental/internal/adapter/http/middleware"
	"laboratorio_dental/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders        = "/orders"
	PathDoctors       = "/doctors"
	PathNotifications = "/notifications"
)

// operadorDenied gates the destructive endpoints.
var operadorDenied = middleware.DenyRoles(entities.RoleOperador)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.OrderHandler, ledgerHandler *handlers.LedgerHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/:id", orderHandler.UpdateOrder)
		orders.DELETE("/:id", operadorDenied, orderHandler.DeleteOrder)

		orders.POST("/:id/payments", ledgerHandler.AddPayment)
		orders.PUT("/:id/payments/:payment_id", ledgerHandler.UpdatePayment)
		orders.DELETE("/:id/payments/:payment_id", operadorDenied, ledgerHandler.DeletePayment)

		orders.POST("/:id/notes", ledgerHandler.AddNote)
		orders.PUT("/:id/notes/:note_id", ledgerHandler.UpdateNote)
		orders.DELETE("/:id/notes/:note_id", operadorDenied, ledgerHandler.DeleteNote)
	}
}

func addDoctorRoutes(rg *gin.RouterGroup, doctorHandler *handlers.DoctorHandler) {
	doctors := rg.Group(PathDoctors)
	{
		doctors.POST("", doctorHandler.CreateDoctor)
		doctors.GET("", doctorHandler.ListDoctors)
		doctors.GET("/:id", doctorHandler.GetDoctor)
		doctors.PUT("/:id", doctorHandler.UpdateDoctor)
		doctors.DELETE("/:id", operadorDenied, doctorHandler.DeleteDoctor)
		doctors.GET("/:id/orders", doctorHandler.ListDoctorOrders)
	}
}

func addNotificationRoutes(rg *gin.RouterGroup, notificationHandler *handlers.NotificationHandler) {
	notifications := rg.Group(PathNotifications)
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.PATCH("/:id/read", notificationHandler.MarkNotificationRead)
		notifications.DELETE("/:id", operadorDenied, notificationHandler.DeleteNotification)
		notifications.DELETE("", operadorDenied, notificationHandler.ClearNotifications)
	}
}
