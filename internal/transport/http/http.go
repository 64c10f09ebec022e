package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	_ "github.com/corray333/tutti-amici/internal/docs"
	"github.com/corray333/tutti-amici/internal/service/models/document"
	"github.com/corray333/tutti-amici/internal/service/models/menuitem"
	"github.com/corray333/tutti-amici/internal/service/models/order"
	"github.com/corray333/tutti-amici/internal/service/services/diagsvc"
	createmenuitem "github.com/corray333/tutti-amici/internal/transport/http/create_menu_item"
	createorder "github.com/corray333/tutti-amici/internal/transport/http/create_order"
	"github.com/corray333/tutti-amici/internal/transport/http/diagnostics"
	listmenuitems "github.com/corray333/tutti-amici/internal/transport/http/list_menu_items"
	listorders "github.com/corray333/tutti-amici/internal/transport/http/list_orders"
	"github.com/corray333/tutti-amici/internal/transport/http/response"
	"github.com/corray333/tutti-amici/pkg/http/middleware/trace"
	"github.com/corray333/tutti-amici/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const welcomeMessage = "Welcome to Tutti Amici API"

type menuService interface {
	CreateMenuItem(ctx context.Context, item menuitem.MenuItem) (string, error)
	ListMenuItems(ctx context.Context, category string) ([]document.Document, error)
}

type orderService interface {
	CreateOrder(ctx context.Context, o order.Order) (string, error)
	ListOrders(ctx context.Context, status string) ([]document.Document, error)
}

type diagnosticsService interface {
	Diagnose(ctx context.Context) diagsvc.Report
}

type welcomeResponse struct {
	Message string `json:"message"`
}

type HTTPTransport struct {
	server      *http.Server
	router      *chi.Mux
	menuSvc     menuService
	orderSvc    orderService
	diagnostics diagnosticsService
}

func NewHTTPTransport(menuSvc menuService, orderSvc orderService, diagnostics diagnosticsService) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:      server,
		router:      router,
		menuSvc:     menuSvc,
		orderSvc:    orderSvc,
		diagnostics: diagnostics,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// Handler returns the router with every route registered.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.welcome)
	h.router.Get("/test", h.diagnose)
	h.router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/menu", h.listMenuItems)
		r.Post("/menu", h.createMenuItem)
		r.Get("/orders", h.listOrders)
		r.Post("/orders", h.createOrder)
	})
}

func (h *HTTPTransport) welcome(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, welcomeResponse{Message: welcomeMessage})
}

func (h *HTTPTransport) diagnose(w http.ResponseWriter, r *http.Request) {
	diagnostics.Diagnose(w, r, h.diagnostics)
}

func (h *HTTPTransport) createMenuItem(w http.ResponseWriter, r *http.Request) {
	createmenuitem.CreateMenuItem(w, r, h.menuSvc)
}

func (h *HTTPTransport) listMenuItems(w http.ResponseWriter, r *http.Request) {
	listmenuitems.ListMenuItems(w, r, h.menuSvc)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.orderSvc)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	if viper.GetBool("tracing.enabled") {
		router.Use(trace.NewTraceMiddleware)
	}
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
