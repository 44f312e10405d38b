package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvillagranc/mesaboard-backend/api/controllers"
	"github.com/mvillagranc/mesaboard-backend/api/middleware"
	"github.com/mvillagranc/mesaboard-backend/internal/branches"
	"github.com/mvillagranc/mesaboard-backend/internal/catalog"
	"github.com/mvillagranc/mesaboard-backend/internal/menu"
	"github.com/mvillagranc/mesaboard-backend/internal/staff"
	"github.com/mvillagranc/mesaboard-backend/pkg/auth/session"
	"github.com/mvillagranc/mesaboard-backend/pkg/config"
	"github.com/mvillagranc/mesaboard-backend/pkg/enums"
	"github.com/mvillagranc/mesaboard-backend/pkg/logger"
	"github.com/mvillagranc/mesaboard-backend/pkg/redis"
)

// NewRouter wires every HTTP surface of the back office. Auth routes sit
// outside the session-checked group; everything under /api/v1 (except auth)
// requires a live access session.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	gatherer prometheus.Gatherer,
	staffService staff.Service,
	catalogService catalog.Service,
	branchService branches.Service,
	resolver *menu.Resolver,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, redisClient, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(staffService, logg))
		r.Post("/refresh", controllers.Refresh(staffService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
			r.Post("/logout", controllers.Logout(staffService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/staff", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.StaffRoleAdmin))
			r.Post("/", controllers.CreateStaff(staffService, logg))
			r.Get("/", controllers.ListStaff(staffService, logg))
			r.Get("/{staffId}", controllers.GetStaff(staffService, logg))
			r.Put("/{staffId}/active", controllers.SetStaffActive(staffService, logg))
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Post("/", controllers.CreateIngredient(catalogService, logg))
			r.Get("/", controllers.ListIngredients(catalogService, logg))
			r.Get("/{ingredientId}", controllers.GetIngredient(catalogService, logg))
			r.Patch("/{ingredientId}", controllers.UpdateIngredient(catalogService, logg))
			r.Delete("/{ingredientId}", controllers.DeleteIngredient(catalogService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(catalogService, logg))
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(catalogService, logg))
		})

		r.Route("/product-groups", func(r chi.Router) {
			r.Post("/", controllers.CreateProductGroup(catalogService, logg))
			r.Get("/", controllers.ListProductGroups(catalogService, logg))
			r.Get("/{groupId}", controllers.GetProductGroup(catalogService, logg))
			r.Patch("/{groupId}", controllers.UpdateProductGroup(catalogService, logg))
			r.Delete("/{groupId}", controllers.DeleteProductGroup(catalogService, logg))
			r.Get("/{groupId}/resolve", controllers.ResolveProductGroup(resolver, logg))
		})

		r.Route("/group-items", func(r chi.Router) {
			r.Post("/", controllers.CreateGroupItem(catalogService, logg))
			r.Get("/", controllers.ListGroupItems(catalogService, logg))
			r.Get("/{itemId}", controllers.GetGroupItem(catalogService, logg))
			r.Patch("/{itemId}", controllers.UpdateGroupItem(catalogService, logg))
			r.Delete("/{itemId}", controllers.DeleteGroupItem(catalogService, logg))
		})

		r.Get("/catalog/{kind}/{id}/can-delete", controllers.CheckDeletable(catalogService, logg))

		r.Route("/branches", func(r chi.Router) {
			r.Post("/", controllers.CreateBranch(branchService, logg))
			r.Get("/", controllers.ListBranches(branchService, logg))
			r.Get("/{branchId}", controllers.GetBranch(branchService, logg))
			r.Patch("/{branchId}", controllers.UpdateBranch(branchService, logg))
			r.Delete("/{branchId}", controllers.DeleteBranch(branchService, logg))

			r.Put("/{branchId}/products/{productId}/availability", controllers.SetProductAvailability(branchService, logg))
			r.Put("/{branchId}/ingredients/{ingredientId}/availability", controllers.SetIngredientAvailability(branchService, logg))
			r.Get("/{branchId}/availability/products/{productId}", controllers.GetProductAvailability(branchService, logg))
			r.Get("/{branchId}/availability/ingredients/{ingredientId}", controllers.GetIngredientAvailability(branchService, logg))
		})
	})

	return r
}
