package stub

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"aptbill/client/internal/config"
)

type Server struct {
	store      *Store
	log        zerolog.Logger
	jwtSecret  string
	jwtTTL     time.Duration
	uploadsDir string
	engine     *gin.Engine
}

func NewServer(cfg config.StubConfig, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:      NewStore(),
		log:        log,
		jwtSecret:  cfg.JWTSecret,
		jwtTTL:     cfg.JWTTTL,
		uploadsDir: cfg.UploadsDir,
	}

	engine := gin.New()
	engine.Use(requestID(), requestLogger(log), recovery(log))

	engine.Static("/uploads", s.uploadsDir)

	api := engine.Group("/api")
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/register_house_admin", s.handleRegisterHouseAdmin)

	authed := api.Group("")
	authed.Use(s.authRequired())
	{
		authed.GET("/floors", s.handleListFloors)
		authed.GET("/apartments", s.handleListApartments)
		authed.GET("/debts", s.handleListDebts)
		authed.GET("/payments", s.handleListPayments)
		authed.POST("/payments", s.handleCreatePayment)
		authed.GET("/metrics/payments", s.handleMetrics)
		authed.GET("/metrics/history", s.handleHistory)
		authed.GET("/users/profile", s.handleProfile)
		authed.POST("/push-token", s.handleRegisterPushToken)
		authed.DELETE("/push-token", s.handleUnregisterPushToken)
	}

	admin := api.Group("")
	admin.Use(s.authRequired(), adminRequired())
	{
		admin.POST("/floors", s.handleCreateFloor)
		admin.PUT("/floors/:id", s.handleUpdateFloor)
		admin.DELETE("/floors/:id", s.handleDeleteFloor)

		admin.POST("/apartments", s.handleCreateApartment)
		admin.PUT("/apartments/:id", s.handleUpdateApartment)
		admin.DELETE("/apartments/:id", s.handleDeleteApartment)

		admin.POST("/debts", s.handleCreateDebt)
		admin.PUT("/debts/:id", s.handleUpdateDebt)
		admin.DELETE("/debts/:id", s.handleDeleteDebt)

		admin.PUT("/payments/:id/status", s.handleSetPaymentStatus)

		admin.GET("/users", s.handleListUsers)
		admin.POST("/users", s.handleCreateUser)
		admin.PUT("/users/:id", s.handleUpdateUser)
		admin.DELETE("/users/:id", s.handleDeleteUser)
	}

	s.engine = engine
	return s
}

// Store exposes the backing data for tests that want to seed or
// inspect it directly.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the router, ready for http.Server or httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}
