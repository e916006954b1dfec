package main

import (
	"github.com/RobertoSuarez97/almacenBackend/internal/catalog"
	"github.com/RobertoSuarez97/almacenBackend/internal/handler"
	mid "github.com/RobertoSuarez97/almacenBackend/internal/middleware"
	"github.com/RobertoSuarez97/almacenBackend/internal/payment"
	"github.com/RobertoSuarez97/almacenBackend/internal/upload"
	"github.com/RobertoSuarez97/almacenBackend/pkg/config"
	"github.com/RobertoSuarez97/almacenBackend/pkg/database"
	"github.com/RobertoSuarez97/almacenBackend/pkg/ftpstore"
	"github.com/RobertoSuarez97/almacenBackend/pkg/jwtutil"
	"github.com/RobertoSuarez97/almacenBackend/pkg/logger"
	"github.com/RobertoSuarez97/almacenBackend/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env is optional, environment wins)
	appConfig, err := config.Load("almacen")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting almacen backend", appConfig.LogFields()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Local staging area for incoming images, created once at startup
	staging, err := upload.New(&appConfig.Upload)
	if err != nil {
		log.Fatal("Failed to initialize upload staging", zap.Error(err))
	}
	log.Info("Upload staging ready", zap.String("dir", staging.Dir()))

	// Remote asset store client and the product write pipeline
	ftpClient := ftpstore.New(&appConfig.FTP, log)
	writer := catalog.NewWriter(catalog.NewGormStore(database.GetDB()), ftpClient, log)

	// Payment collaborator
	payments, err := payment.New(appConfig, log)
	if err != nil {
		log.Fatal("Failed to initialize payment client", zap.Error(err))
	}

	handler.Init(appConfig)
	productHandler := handler.NewProductHandler(writer, staging)
	categoriaHandler := handler.NewCategoriaHandler(handler.NewGormDetalleStore(database.GetDB()))
	checkoutHandler := handler.NewCheckoutHandler(payments)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	api := e.Group("/api")

	productos := api.Group("/productos")
	productos.GET("", productHandler.ListProductos)
	productos.GET("/novedades", productHandler.Novedades)
	productos.GET("/ofertas", productHandler.Ofertas)
	productos.GET("/getProductosPorCategorias", productHandler.PorCategorias)
	productos.GET("/gallery/:id", productHandler.Gallery)
	productos.GET("/:id", productHandler.GetProducto)
	productos.POST("/photoUpload", productHandler.PhotoUpload, mid.AuthMiddleware)
	productos.PUT("/:id", productHandler.UpdateProducto, mid.AuthMiddleware)

	marcas := api.Group("/marcas")
	marcas.GET("", handler.ListMarcas)
	marcas.GET("/:id", handler.GetMarca)
	marcas.POST("/addMarca", handler.AddMarca, mid.AuthMiddleware)
	marcas.PUT("/:id", handler.UpdateMarca, mid.AuthMiddleware)

	categorias := api.Group("/categorias")
	categorias.GET("", handler.ListCategorias)
	categorias.POST("/addDetalleCategoria/:id", categoriaHandler.AddDetalleCategoria, mid.AuthMiddleware)
	categorias.GET("/getDetalleCategoria/:id", categoriaHandler.GetDetalleCategoria)
	categorias.DELETE("/deleteDetalleCategoria/:id", categoriaHandler.DeleteDetalleCategoria, mid.AuthMiddleware)

	api.POST("/auth/login", handler.Login)

	checkout := api.Group("/checkout")
	checkout.POST("/crear-preferencia", checkoutHandler.CrearPreferencia)
	checkout.POST("/webhook", checkoutHandler.Webhook)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
