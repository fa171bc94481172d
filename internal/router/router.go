package router

import (
	"net/http"
	"strings"

	"konaseema-kart/internal/handler"
	"konaseema-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	couponHandler *handler.CouponHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	tokenParser middleware.TokenParser,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/products", catalogHandler.Products)
	mux.HandleFunc("/api/combos", catalogHandler.Combos)

	// Cart routes: the bare path serves get/clear, the items subtree serves
	// add and per-line mutations.
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cartHandler.Get(w, r)
		case http.MethodDelete:
			cartHandler.Clear(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", cartRouteHandler)

	cartItemsHandler := func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/cart/items" || r.URL.Path == "/api/cart/items/" {
			cartHandler.Add(w, r)
			return
		}
		cartHandler.Mutate(w, r)
	}
	mux.HandleFunc("/api/cart/items", cartItemsHandler)
	mux.HandleFunc("/api/cart/items/", cartItemsHandler)

	mux.HandleFunc("/api/coupons/apply", couponHandler.Apply)

	mux.HandleFunc("/api/checkout", checkoutHandler.PlaceOrder)
	mux.HandleFunc("/api/checkout/draft", checkoutHandler.Draft)

	// Order lookup requires an id in the path.
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/orders/") && r.URL.Path != "/api/orders/" {
			orderHandler.GetByID(w, r)
			return
		}
		http.Error(w, "not found", http.StatusNotFound)
	}
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> Identity
	var h http.Handler = mux
	h = middleware.Identity(tokenParser, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
