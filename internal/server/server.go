package server

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"courtbook/internal/booking"
	"courtbook/internal/coach"
	"courtbook/internal/config"
	"courtbook/internal/court"
	"courtbook/internal/email"
	"courtbook/internal/equipment"
	"courtbook/internal/pricing"
	"courtbook/internal/user"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	courtRepo := court.NewRepository(db)
	coachRepo := coach.NewRepository(db)
	equipmentRepo := equipment.NewRepository(db)
	userRepo := user.NewRepository(db)
	ruleRepo := pricing.NewRepository(db)
	bookingRepo := booking.NewRepository(db)

	pricingService := pricing.NewService(courtRepo, coachRepo, equipmentRepo, ruleRepo)
	evaluator := booking.NewEvaluator(bookingRepo, equipmentRepo)

	var notifier booking.Notifier
	if emailService != nil {
		notifier = emailService
	}
	bookingService := booking.NewService(bookingRepo, evaluator, courtRepo, coachRepo, userRepo, pricingService, notifier)

	courtHandler := court.NewHandler(courtRepo)
	coachHandler := coach.NewHandler(coachRepo)
	equipmentHandler := equipment.NewHandler(equipmentRepo)
	userHandler := user.NewHandler(userRepo)
	pricingHandler := pricing.NewHandler(ruleRepo, pricingService)
	bookingHandler := booking.NewHandler(bookingService)

	courts := router.Group("/courts")
	{
		courts.GET("", courtHandler.ListCourts)
		courts.POST("", courtHandler.CreateCourt)
		courts.GET("/:courtID", courtHandler.GetCourt)
		courts.PUT("/:courtID", courtHandler.UpdateCourt)
		courts.DELETE("/:courtID", courtHandler.DeleteCourt)
	}

	coaches := router.Group("/coaches")
	{
		coaches.GET("", coachHandler.ListCoaches)
		coaches.POST("", coachHandler.CreateCoach)
		coaches.GET("/:coachID", coachHandler.GetCoach)
		coaches.PUT("/:coachID", coachHandler.UpdateCoach)
		coaches.DELETE("/:coachID", coachHandler.DeleteCoach)
	}

	equipmentGroup := router.Group("/equipment")
	{
		equipmentGroup.GET("", equipmentHandler.ListEquipment)
		equipmentGroup.POST("", equipmentHandler.CreateEquipment)
		equipmentGroup.GET("/:equipmentID", equipmentHandler.GetEquipment)
		equipmentGroup.PUT("/:equipmentID", equipmentHandler.UpdateEquipment)
		equipmentGroup.DELETE("/:equipmentID", equipmentHandler.DeleteEquipment)
	}

	users := router.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateOrFindUser)
		users.GET("/:userID", userHandler.GetUser)
		users.GET("/:userID/bookings", bookingHandler.GetUserBookings)
	}

	rules := router.Group("/pricing-rules")
	{
		rules.GET("", pricingHandler.ListRules)
		rules.POST("", pricingHandler.CreateRule)
		rules.GET("/:ruleID", pricingHandler.GetRule)
		rules.PUT("/:ruleID", pricingHandler.UpdateRule)
		rules.DELETE("/:ruleID", pricingHandler.DeleteRule)
	}

	bookings := router.Group("/bookings")
	{
		bookings.GET("", bookingHandler.GetBookings)
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("/:bookingID", bookingHandler.GetBooking)
		bookings.POST("/:bookingID/cancel", bookingHandler.CancelBooking)
	}

	utils := router.Group("/utils")
	{
		utils.POST("/check", bookingHandler.CheckAvailability)
		utils.POST("/calculate-price", pricingHandler.CalculatePrice)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	if emailService != nil {
		router.GET("/test-email", TestEmail(emailService))
	}
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	addr := ":" + port
	return s.router.Run(addr)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
