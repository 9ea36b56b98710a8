// Package httpapi exposes the PhoneSaver service over HTTP using gin.
// Handlers are thin: bind a typed request, call the service, map sentinel
// errors to status codes. Everything stateful lives in the service layer.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/phonesaver/phonesaver/internal/logging"
	"github.com/phonesaver/phonesaver/internal/server/config"
	"github.com/phonesaver/phonesaver/internal/server/models"
	"github.com/phonesaver/phonesaver/internal/server/repositories/contacts"
	"github.com/phonesaver/phonesaver/internal/server/services"
)

// userService is the slice of UserService the handlers need.
type userService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type contactService interface {
	Create(ctx context.Context, c *models.Contact) (int64, error)
	BulkCreate(ctx context.Context, userID int64, items []*models.Contact) ([]int64, error)
	Get(ctx context.Context, id, userID int64) (*models.Contact, error)
	List(ctx context.Context, userID int64, f contacts.Filter) ([]*models.Contact, error)
	Patch(ctx context.Context, id, userID int64, p models.ContactPatch) error
	Delete(ctx context.Context, id, userID int64) error
	AddReminder(ctx context.Context, contactID, userID int64, at time.Time, message string) (*models.Reminder, error)
	ListReminders(ctx context.Context, contactID, userID int64) ([]*models.Reminder, error)
	SetReminderCompleted(ctx context.Context, reminderID string, contactID, userID int64, completed bool) error
	DeleteReminder(ctx context.Context, reminderID string, contactID, userID int64) error
	CreateShareLink(ctx context.Context, contactID, userID int64) (*models.ShareLink, error)
	ResolveShareLink(ctx context.Context, token string) (*models.Contact, error)
	GetInsights(ctx context.Context, userID int64) (*services.Insights, error)
}

type backupService interface {
	Backup(ctx context.Context, userID int64) (string, error)
	Restore(ctx context.Context, userID int64) (int, error)
}

type Server struct {
	users    userService
	contacts contactService
	backups  backupService
	log      logging.Logger
	cfg      *config.Config
}

func NewServer(users userService, contacts contactService, backups backupService,
	log logging.Logger, cfg *config.Config) *Server {
	return &Server{
		users:    users,
		contacts: contacts,
		backups:  backups,
		log:      log,
		cfg:      cfg,
	}
}

// Router assembles the middleware chain and the route table.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(securityHeaders())
	r.Use(requestLogger(s.log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	limiter := rate.NewLimiter(rate.Limit(s.cfg.RateLimitRPS), s.cfg.RateLimitBurst)
	r.Use(rateLimit(limiter))

	api := r.Group("/api")

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.POST("/auth/refresh", s.refresh)

	// Share links are resolvable without a session; the token is the grant.
	api.GET("/share/:token", s.resolveShare)

	protected := api.Group("/")
	protected.Use(authRequired([]byte(s.cfg.SecretKey)))
	{
		protected.GET("/contacts", s.listContacts)
		protected.POST("/contacts", s.createContact)
		protected.POST("/contacts/bulk", s.bulkCreateContacts)
		protected.GET("/contacts/:id", s.getContact)
		protected.PUT("/contacts/:id", s.updateContact)
		protected.DELETE("/contacts/:id", s.deleteContact)

		protected.PUT("/contacts/:id/tags", s.updateTags)
		protected.PUT("/contacts/:id/last-interaction", s.updateLastInteraction)
		protected.PUT("/contacts/:id/birthday", s.updateBirthday)
		protected.PUT("/contacts/:id/frequency", s.updateFrequency)
		protected.PUT("/contacts/:id/preferred-time", s.updatePreferredTime)
		protected.PUT("/contacts/:id/notes", s.updateNotes)

		protected.GET("/contacts/:id/reminders", s.listReminders)
		protected.POST("/contacts/:id/reminders", s.addReminder)
		protected.PUT("/contacts/:id/reminders/:rid/complete", s.completeReminder)
		protected.DELETE("/contacts/:id/reminders/:rid", s.deleteReminder)

		protected.POST("/contacts/:id/share", s.createShare)

		protected.POST("/backup", s.backup)
		protected.POST("/restore", s.restore)
		protected.GET("/insights", s.insights)
	}

	return r
}
