package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/feastline/feastline-backend/api/controllers"
	"github.com/feastline/feastline-backend/api/middleware"
	"github.com/feastline/feastline-backend/internal/address"
	authsvc "github.com/feastline/feastline-backend/internal/auth"
	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/catalog"
	"github.com/feastline/feastline-backend/internal/checkout"
	"github.com/feastline/feastline-backend/internal/orders"
	"github.com/feastline/feastline-backend/internal/payments"
	"github.com/feastline/feastline-backend/pkg/auth/session"
	"github.com/feastline/feastline-backend/pkg/config"
	"github.com/feastline/feastline-backend/pkg/logger"
	redisclient "github.com/feastline/feastline-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs. The stores are the same
// handles the sequencer holds; handlers never reach around them.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       redisclient.Pinger
	Sessions    session.AccessSessionChecker
	AuthService authsvc.Service
	Catalog     *catalog.Reader
	Cart        *cart.Store
	Addresses   *address.Book
	Instruments *payments.Store
	Ledger      *orders.Ledger
	Sequencer   *checkout.Sequencer
	Registry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.CatalogList(deps.Catalog, logg))
			r.Get("/{id}", controllers.CatalogGet(deps.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, deps.Catalog, logg))
			r.Post("/items/{id}/increment", controllers.CartIncrement(deps.Cart, logg))
			r.Post("/items/{id}/decrement", controllers.CartDecrement(deps.Cart, logg))
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Addresses, logg))
			r.Post("/", controllers.AddressAdd(deps.Addresses, logg))
			r.Post("/select", controllers.AddressSelect(deps.Addresses, logg))
			r.Put("/{id}", controllers.AddressUpdate(deps.Addresses, logg))
			r.Delete("/{id}", controllers.AddressRemove(deps.Addresses, logg))
			r.Post("/{id}/default", controllers.AddressSetDefault(deps.Addresses, logg))
		})

		r.Route("/payments", func(r chi.Router) {
			r.Get("/", controllers.PaymentInstrumentsList(deps.Instruments, logg))
			r.Post("/cards", controllers.PaymentCardAdd(deps.Instruments, logg))
			r.Put("/cards/{id}", controllers.PaymentCardUpdate(deps.Instruments, logg))
			r.Delete("/cards/{id}", controllers.PaymentCardRemove(deps.Instruments, logg))
			r.Post("/upi", controllers.PaymentUpiAdd(deps.Instruments, logg))
			r.Put("/upi/{id}", controllers.PaymentUpiUpdate(deps.Instruments, logg))
			r.Delete("/upi/{id}", controllers.PaymentUpiRemove(deps.Instruments, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.CheckoutState(deps.Sequencer, logg))
			r.Post("/fulfillment", controllers.CheckoutChooseFulfillment(deps.Sequencer, logg))
			r.Post("/method", controllers.CheckoutChooseMethod(deps.Sequencer, logg))
			r.Post("/verify", controllers.CheckoutSubmitVerification(deps.Sequencer, logg))
			r.Post("/retry", controllers.CheckoutRetry(deps.Sequencer, logg))
			r.Post("/cancel", controllers.CheckoutCancel(deps.Sequencer, logg))
			r.Get("/upi/qr", controllers.CheckoutUpiQR(deps.Cart, cfg.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Ledger, logg))
			r.Delete("/", controllers.OrdersClear(deps.Ledger, logg))
			r.Get("/{id}", controllers.OrdersGet(deps.Ledger, logg))
			r.Post("/{id}/reorder", controllers.OrdersReorder(deps.Ledger, deps.Cart, logg))
		})
	})

	return r
}
