// internal/platform/di/container.go
package di

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"storefront/internal/adapters/in/http/handler"
	"storefront/internal/adapters/in/http/middleware"
	dbadapter "storefront/internal/adapters/out/db"
	mailadapter "storefront/internal/adapters/out/mail"
	usecase "storefront/internal/application/usecase"
	"storefront/internal/platform/config"
)

// Container owns the process-wide resources: the database pool, the wired
// usecases and the HTTP router.
type Container struct {
	Cfg config.Config
	DB  *sql.DB
	Log *logrus.Logger

	CartUC     *usecase.CartUsecase
	CheckoutUC *usecase.CheckoutUsecase
	CatalogUC  *usecase.CatalogUsecase
	WishlistUC *usecase.WishlistUsecase

	Router http.Handler
}

func NewContainer(cfg config.Config, log *logrus.Logger) (*Container, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open database")
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "ping database")
	}

	products := dbadapter.NewProductRepositoryPG(db)
	carts := dbadapter.NewCartRepositoryPG(db)
	orders := dbadapter.NewOrderRepositoryPG(db)
	wishlists := dbadapter.NewWishlistRepositoryPG(db)
	tx := dbadapter.NewTxManagerPG(db)

	var notifier usecase.OrderNotifier = mailadapter.NoopNotifier{}
	if cfg.MailEnabled() {
		client := mailadapter.NewSendGridClient(cfg.SendGridAPIKey, log)
		notifier = mailadapter.NewOrderMailer(client, cfg.MailFrom, cfg.MailTo)
		log.WithField("component", "di").Info("order confirmation mail enabled")
	}

	c := &Container{
		Cfg:        cfg,
		DB:         db,
		Log:        log,
		CartUC:     usecase.NewCartUsecase(carts, products, tx),
		CheckoutUC: usecase.NewCheckoutUsecase(carts, products, orders, tx, notifier, log),
		CatalogUC:  usecase.NewCatalogUsecase(products),
		WishlistUC: usecase.NewWishlistUsecase(wishlists, products),
	}
	c.Router = c.buildRouter()
	return c, nil
}

func (c *Container) buildRouter() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	catalog := handler.NewCatalogHandler(c.CatalogUC, c.Log)
	api.HandleFunc("/products", catalog.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", catalog.GetProduct).Methods(http.MethodGet)

	cart := handler.NewCartHandler(c.CartUC, c.Log)
	api.HandleFunc("/cart", cart.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart", cart.ClearCart).Methods(http.MethodDelete)
	api.HandleFunc("/cart/items", cart.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/cart/items", cart.UpdateItem).Methods(http.MethodPut)
	api.HandleFunc("/cart/items/{productId}", cart.RemoveItem).Methods(http.MethodDelete)
	api.HandleFunc("/cart/merge", cart.MergeCarts).Methods(http.MethodPost)

	order := handler.NewOrderHandler(c.CheckoutUC, c.Log)
	api.HandleFunc("/orders", order.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", order.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/{orderId}", order.GetOrder).Methods(http.MethodGet)

	wishlist := handler.NewWishlistHandler(c.WishlistUC, c.Log)
	api.HandleFunc("/wishlist", wishlist.Get).Methods(http.MethodGet)
	api.HandleFunc("/wishlist/items", wishlist.AddItem).Methods(http.MethodPost)
	api.HandleFunc("/wishlist/items/{productId}", wishlist.RemoveItem).Methods(http.MethodDelete)

	var h http.Handler = r
	h = middleware.RequestLog(c.Log)(h)
	h = middleware.Recover(c.Log)(h)
	h = middleware.CORS(c.Cfg.CORSOrigin)(h)
	return h
}

func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
