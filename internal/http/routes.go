package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(h *Handler, rl *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Metrics())

	r.GET("/healthz", h.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", rl.Limit("register"), h.Register)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/resend-otp", rl.Limit("resend-otp"), h.ResendOTP)
		auth.POST("/login", rl.Limit("login"), h.Login)
		auth.POST("/google", h.GoogleAuth)
		auth.GET("/me", h.AuthRequired(), h.Me)
	}

	pets := api.Group("/pets")
	{
		pets.GET("", h.GetPets)
		pets.GET("/featured", h.GetFeaturedPets)
		pets.GET("/:id", h.GetPetByID)
		pets.POST("", h.AuthRequired(), h.CreatePet)
		pets.PUT("/:id", h.AuthRequired(), h.UpdatePet)
		pets.DELETE("/:id", h.AuthRequired(), h.DeletePet)
		pets.POST("/:id/save", h.AuthRequired(), h.ToggleSavePet)
	}

	adoption := api.Group("/adoption", h.AuthRequired())
	{
		adoption.POST("", h.CreateAdoption)
		adoption.GET("/my-applications", h.GetMyApplications)
		adoption.GET("/:id", h.GetAdoptionByID)
		adoption.DELETE("/:id", h.CancelAdoption)
	}

	admin := api.Group("/admin", h.AuthRequired(), AdminOnly())
	{
		admin.GET("/stats", h.GetDashboardStats)
		admin.GET("/adoptions", h.GetAllAdoptions)
		admin.GET("/users", h.GetAllUsers)
		admin.GET("/pets", h.GetAllPets)
		admin.PUT("/adoptions/:id", h.UpdateAdoptionStatus)
		admin.PUT("/pets/:id/verify", h.VerifyPet)
		admin.PUT("/pets/:id/feature", h.ToggleFeaturedPet)
	}

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "Route "+c.Request.URL.Path+" not found")
	})

	return r
}
