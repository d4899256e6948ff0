package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/eventhive/ticketing-api/docs"
	v1 "github.com/eventhive/ticketing-api/internal/api/handler/v1"
	"github.com/eventhive/ticketing-api/internal/api/middleware"
	"github.com/eventhive/ticketing-api/internal/config"
	"github.com/eventhive/ticketing-api/internal/pkg/payment"
	"github.com/eventhive/ticketing-api/internal/pkg/policy"
	"github.com/eventhive/ticketing-api/internal/repository"
	"github.com/eventhive/ticketing-api/internal/repository/dao"
	"github.com/eventhive/ticketing-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	policy *policy.Policy
}

func NewServer(conf *config.AppConfig, db *gorm.DB, verifier payment.Verifier) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
		policy: buildPolicy(conf.Policy),
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	eventHandler := s.initEventHandler(db)
	ticketHandler := s.initTicketHandler(db, verifier)
	adminHandler := s.initAdminHandler(db, verifier)
	s.MountHandlers(authHandler, userHandler, eventHandler, ticketHandler, adminHandler)

	return s
}

func buildPolicy(conf *config.PolicyConfig) *policy.Policy {
	if conf == nil || len(conf.Grants) == 0 {
		return policy.Default()
	}

	return policy.New(conf.Grants)
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewEventHandler(svc, uSvc, s.policy)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB, verifier payment.Verifier) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTicketService(repo, eventRepo, userRepo, verifier, s.policy)
	uSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	handler := v1.NewTicketHandler(svc, uSvc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB, verifier payment.Verifier) *v1.AdminHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewTicketService(repo, eventRepo, userRepo, verifier, s.policy)
	uSvc := service.NewUserService(userRepo)
	handler := v1.NewAdminHandler(svc, uSvc, s.policy)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, ticketHandler *v1.TicketHandler, adminHandler *v1.AdminHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
		auth.POST("/auth/otp/request", authHandler.HandleRequestOTP)
		auth.POST("/auth/otp/verify", authHandler.HandleVerifyOTP)
	}

	public := s.Router.Group(basePath)
	{
		public.GET("/events", eventHandler.HandleGetEvents)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)

		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.POST("/events/seed", eventHandler.HandleSeedEvents)

		authed.POST("/tickets", ticketHandler.HandleIssueTicket)
		authed.GET("/tickets", ticketHandler.HandleListTickets)
		authed.GET("/tickets/:ticketID", ticketHandler.HandleGetTicket)
		authed.POST("/tickets/:ticketID/scan", ticketHandler.HandleScanTicket)
		authed.POST("/tickets/:ticketID/cancel", ticketHandler.HandleCancelTicket)

		authed.GET("/admin/stats", adminHandler.HandleGetStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventHive Ticketing API"
	docs.SwaggerInfo.Description = "Event ticketing with atomic inventory reservation."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
