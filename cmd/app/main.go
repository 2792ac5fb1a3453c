package main

import (
	"context"
	"database/sql"
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/stgcatalog/storefront-backend/internal/cache"
	"github.com/stgcatalog/storefront-backend/internal/cart"
	"github.com/stgcatalog/storefront-backend/internal/config"
	"github.com/stgcatalog/storefront-backend/internal/order"
	"github.com/stgcatalog/storefront-backend/internal/prefs"
	"github.com/stgcatalog/storefront-backend/internal/product"
	"github.com/stgcatalog/storefront-backend/internal/relay"
	"github.com/stgcatalog/storefront-backend/internal/user"
	"github.com/stgcatalog/storefront-backend/internal/wishlist"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()
	ensureSchema(db)

	durable := mustOpenRedis(cfg.RedisAddr)
	volatile := cache.NewMemoryStore()

	if missing := cfg.MissingRelaySettings(); len(missing) > 0 {
		panic("relay settings missing: " + strings.Join(missing, ", "))
	}
	sender := relay.NewWhatsAppClient(cfg.RelayBaseURL, cfg.RelayToken, cfg.RelayReceiver)

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	cartManager := cart.NewManager(cart.NewPostgresRepository(db), durable, cart.LogNotifier{})
	cartHandler := cart.NewHandler(cartManager, productService)

	wishlistManager := wishlist.NewManager(wishlist.NewPostgresRepository(db))
	wishlistHandler := wishlist.NewHandler(wishlistManager, productService)

	orderService := order.NewService(order.NewPostgresRepository(db), cartManager, userService, sender)
	orderHandler := order.NewHandler(orderService, sender)

	prefsHandler := prefs.NewHandler(volatile, durable)

	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	orderHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// catalog browsing stays public even though the CRUD routes under the
		// same prefix require a token
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			p := c.Path()
			if p == "/api/v1/products" {
				return true
			}
			if strings.HasPrefix(p, "/api/v1/product/") {
				seg := strings.TrimPrefix(p, "/api/v1/product/")
				if _, err := strconv.Atoi(seg); err == nil {
					return true
				}
			}
			return false
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	prefsHandler.RegisterProtectedRoutes(app)

	// sign-out drops the per-user in-memory sessions so the next sign-in
	// starts from the persisted state
	app.Post("/api/v1/sign-out", func(c *fiber.Ctx) error {
		userID, err := user.GetUserIDFromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
		}
		cartManager.SignOut(c.Context(), userID)
		wishlistManager.SignOut(userID)
		return c.SendStatus(fiber.StatusNoContent)
	})

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	if url == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

func mustOpenRedis(addr string) *cache.RedisStore {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}
	return cache.NewRedisStore(client)
}

func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC NOT NULL DEFAULT 0,
			image_url TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS cart_items (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			product_id INT NOT NULL REFERENCES products(id),
			quantity INT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS wishlist (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(id),
			product_id INT NOT NULL REFERENCES products(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			reference TEXT NOT NULL UNIQUE,
			user_id INT NOT NULL REFERENCES users(id),
			total NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(id),
			product_id INT NOT NULL REFERENCES products(id),
			quantity INT NOT NULL DEFAULT 1,
			price NUMERIC NOT NULL DEFAULT 0
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
