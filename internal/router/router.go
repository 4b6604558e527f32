// Package router wires HTTP routes to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/golapp/field-booking/internal/handler"
	"github.com/golapp/field-booking/internal/middleware"
)

// Deps bundles everything the route table needs.  Cache may be nil when the
// Redis response cache is disabled.
type Deps struct {
	Auth         *handler.AuthHandler
	Reservations *handler.ReservationHandler
	Dashboard    *handler.DashboardHandler
	Loans        *handler.LoanHandler
	Equipment    *handler.EquipmentHandler
	Fields       *handler.FieldHandler
	FieldTypes   *handler.FieldTypeHandler
	Rates        *handler.RateHandler
	Users        *handler.UserHandler
	JWTSecret    string
	Cache        echo.MiddlewareFunc
}

// Register builds the full route table under /api.  The metric routes are
// registered before /:id so Echo never swallows "hoy" as an id.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.POST("/auth/login", d.Auth.Login)

	res := api.Group("/reservas")
	if d.Cache != nil {
		res.GET("/hoy", d.Dashboard.Today, d.Cache)
		res.GET("/ingresos-mensuales", d.Dashboard.MonthlyRevenue, d.Cache)
		res.GET("/ocupacion-promedio", d.Dashboard.AverageOccupancy, d.Cache)
	} else {
		res.GET("/hoy", d.Dashboard.Today)
		res.GET("/ingresos-mensuales", d.Dashboard.MonthlyRevenue)
		res.GET("/ocupacion-promedio", d.Dashboard.AverageOccupancy)
	}
	res.GET("/horarios-ocupados", d.Reservations.OccupiedSlots)
	res.GET("", d.Reservations.List)
	res.POST("", d.Reservations.Create)
	res.GET("/:id", d.Reservations.Get)
	res.PUT("/:id", d.Reservations.Update)
	res.PATCH("/:id/cancelar", d.Reservations.Cancel)
	res.DELETE("/:id", d.Reservations.Delete)

	loans := api.Group("/prestamos")
	loans.GET("/stats", d.Loans.Stats)
	loans.GET("", d.Loans.List)
	loans.POST("", d.Loans.Create)
	loans.GET("/:id", d.Loans.Get)
	loans.PUT("/:id", d.Loans.Update)
	loans.PATCH("/:id/estado", d.Loans.UpdateStatus)
	loans.DELETE("/:id", d.Loans.Delete)

	products := api.Group("/productos")
	products.GET("/stats", d.Equipment.Stats)
	products.GET("", d.Equipment.List)
	products.POST("", d.Equipment.Create)
	products.GET("/:id", d.Equipment.Get)
	products.PUT("/:id", d.Equipment.Update)
	products.DELETE("/:id", d.Equipment.Delete)

	fields := api.Group("/canchas")
	fields.GET("", d.Fields.List)
	fields.POST("", d.Fields.Create)
	fields.GET("/:id", d.Fields.Get)
	fields.PUT("/:id", d.Fields.Update)
	fields.DELETE("/:id", d.Fields.Delete)

	types := api.Group("/tipocanchas")
	types.GET("", d.FieldTypes.List)
	types.POST("", d.FieldTypes.Create)
	types.GET("/:id", d.FieldTypes.Get)
	types.PUT("/:id", d.FieldTypes.Update)
	types.DELETE("/:id", d.FieldTypes.Delete)

	rates := api.Group("/tarifas")
	rates.GET("", d.Rates.List)
	rates.POST("", d.Rates.Create)
	rates.GET("/:id", d.Rates.Get)
	rates.PUT("/:id", d.Rates.Update)
	rates.DELETE("/:id", d.Rates.Delete)

	// Account management requires a session; mutations are admin-only.
	users := api.Group("/usuarios", middleware.JWTAuth(d.JWTSecret))
	users.GET("", d.Users.List)
	users.GET("/:id", d.Users.Get)
	admin := middleware.RequireRole("administrador")
	users.POST("", d.Users.Create, admin)
	users.PUT("/:id", d.Users.Update, admin)
	users.DELETE("/:id", d.Users.Delete, admin)
}
