package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotelbooking/internal/cache"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/facility"
	"hotelbooking/internal/modules/hotel"
	"hotelbooking/internal/modules/image"
	"hotelbooking/internal/modules/room"
	"hotelbooking/internal/notification"
	"hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
	"hotelbooking/internal/tasks"
)

// Deps is everything the HTTP layer needs from the process.
type Deps struct {
	DB           *repository.Manager
	Tokens       *jwt.Service
	Cache        cache.Store
	CacheTTL     time.Duration
	Queue        tasks.Enqueuer
	Hub          *notification.Hub
	ImagesDir    string
	MaxImageSize int64
	CookieSecure bool
	Log          *zap.Logger
}

// NewRouter wires middleware, modules and routes.
//
// Route groups:
//   - public: cached GETs (hotels, rooms, facilities, images)
//   - writes: unauthenticated mutations and /auth
//   - protected: requires access_token; GETs cached per user
//   - ws: requires access_token, never cached
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(d.Log),
		middleware.CORS(),
		middleware.JSONBody(),
		middleware.InvalidateCache(d.Cache, d.Log),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	if d.ImagesDir != "" {
		r.Static("/static/images", d.ImagesDir)
	}

	public := r.Group("", middleware.Cache(d.Cache, d.CacheTTL, d.Log))
	writes := r.Group("")
	protected := r.Group("", middleware.Auth(d.Tokens), middleware.Cache(d.Cache, d.CacheTTL, d.Log))
	ws := r.Group("", middleware.Auth(d.Tokens))

	hotel.NewHandler(hotel.NewService(d.DB)).RegisterRoutes(public, writes)
	room.NewHandler(room.NewService(d.DB)).RegisterRoutes(public, writes)
	facility.NewHandler(facility.NewService(d.DB)).RegisterRoutes(public, writes)
	image.NewHandler(image.NewService(d.DB.Images, d.Queue, d.ImagesDir, d.MaxImageSize, d.Log)).
		RegisterRoutes(public, writes)

	booking.NewHandler(booking.NewService(d.DB)).RegisterRoutes(protected)

	authHandler := auth.NewHandler(auth.NewService(d.DB.Users, d.Tokens), d.Tokens.TTL(), d.CookieSecure)
	authHandler.RegisterPublicRoutes(writes)
	authHandler.RegisterProtectedRoutes(protected)

	if d.Hub != nil {
		notification.NewHandler(d.Hub).RegisterRoutes(ws)
	}

	return r
}

// NewWorkers builds the task pool with every background handler registered,
// plus the scheduler that enqueues the daily check-in scan.
func NewWorkers(db *repository.Manager, queue tasks.Queue, hub *notification.Hub, workers int, checkinEvery time.Duration, log *zap.Logger) (*tasks.Pool, *tasks.Scheduler) {
	pool := tasks.NewPool(queue, workers, log)
	pool.Register(tasks.TaskResizeImage, tasks.NewResizer(db.Images, log).Handle)

	var notifier tasks.Notifier
	if hub != nil {
		notifier = hub
	}
	pool.Register(tasks.TaskBookingTodayCheckin, tasks.NewCheckinJob(db.Bookings, notifier, log).Handle)

	return pool, tasks.NewScheduler(queue, tasks.TaskBookingTodayCheckin, checkinEvery, log)
}
