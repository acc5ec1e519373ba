package handlers

import (
	"GiftHunt/internal/config"
	"GiftHunt/internal/linkmeta"
	"GiftHunt/internal/middleware"
	"GiftHunt/internal/service"
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// Services — сервисный слой, который обслуживает HTTP API.
type Services struct {
	Users       *service.UserService
	Wishlists   *service.WishlistService
	Invitations *service.InvitationService
	Admins      *service.AdminService
	ShareLinks  *service.ShareLinkService
	Claims      *service.ClaimService
}

// LinkFetcher достаёт превью страницы по ссылке.
type LinkFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*linkmeta.Metadata, error)
}

// NewHandler разводящий для хендлеров
func NewHandler(
	svc Services,
	fetcher LinkFetcher,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	userHandler := NewUserHandler(svc.Users, logger, config)
	wishlistHandler := NewWishlistHandler(svc.Wishlists, svc.Claims, logger)
	accessHandler := NewAccessHandler(svc.Invitations, svc.Admins, logger)
	shareHandler := NewShareHandler(svc.ShareLinks, svc.Claims, logger)
	linkHandler := NewLinkMetaHandler(fetcher, logger)

	// Public routes
	r.Post("/api/user/register", userHandler.Register)
	r.Post("/api/user/login", userHandler.Login)
	r.Post("/api/user/test", userHandler.Status)
	r.Get("/api/invitations/token/{token}", accessHandler.Preview)
	r.Get("/api/share/{token}", shareHandler.Resolve)
	r.Post("/api/share/{token}/items/{itemID}/claim", shareHandler.Claim)
	// ответ и так сжимает WithGzip
	r.Handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{DisableCompression: true}))

	// Authorized routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/api/user/profile", userHandler.Profile)
		r.Put("/api/user/profile", userHandler.UpdateProfile)

		r.Get("/api/wishlists", wishlistHandler.List)
		r.Post("/api/wishlists", wishlistHandler.Create)
		r.Route("/api/wishlists/{id}", func(r chi.Router) {
			r.Get("/", wishlistHandler.Get)
			r.Put("/", wishlistHandler.Update)
			r.Delete("/", wishlistHandler.Delete)

			r.Post("/items", wishlistHandler.AddItem)
			r.Put("/items/{itemID}", wishlistHandler.UpdateItem)
			r.Delete("/items/{itemID}", wishlistHandler.DeleteItem)
			r.Post("/items/{itemID}/untake", wishlistHandler.Untake)
			r.Delete("/items/{itemID}/claims/{claimID}", wishlistHandler.RemoveClaim)

			r.Get("/invitations", accessHandler.ListInvitations)
			r.Post("/invitations", accessHandler.CreateInvitation)
			r.Get("/admin", accessHandler.GetAdmin)
			r.Delete("/admin/{adminID}", accessHandler.RevokeAdmin)

			r.Post("/share", shareHandler.GetOrCreate)
			r.Delete("/share", shareHandler.Delete)
		})

		r.Delete("/api/invitations/{invitationID}", accessHandler.RemoveInvitation)
		r.Post("/api/invitations/token/{token}/accept", accessHandler.Accept)

		r.Post("/api/link-metadata", linkHandler.Fetch)
	})

	return &Handler{Router: r}
}
