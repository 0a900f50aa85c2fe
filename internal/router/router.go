package router

import (
	"time"

	"gestionhomeclean/internal/config"
	"gestionhomeclean/internal/handler"
	"gestionhomeclean/internal/middleware"
	"gestionhomeclean/internal/repository"
	"gestionhomeclean/internal/service"
	"gestionhomeclean/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	suplidorRepo := repository.NewSuplidorRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	materiaRepo := repository.NewMateriaPrimaRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	ingresoRepo := repository.NewIngresoRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)
	notificador := worker.NewNotificador(dispatcher)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	suplidorSvc := service.NewSuplidorService(suplidorRepo)
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo, notificador)
	materiaSvc := service.NewMateriaPrimaService(materiaRepo, suplidorRepo)
	egresoSvc := service.NewEgresoService(egresoRepo, suplidorRepo)
	ingresoSvc := service.NewIngresoService(ingresoRepo, clienteRepo)
	inventarioSvc := service.NewInventarioService(productoRepo, materiaRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	suplidoresH := handler.NewSuplidoresHandler(suplidorSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc, rdb)
	materiasH := handler.NewMateriasPrimasHandler(materiaSvc)
	egresosH := handler.NewEgresosHandler(egresoSvc)
	ingresosH := handler.NewIngresosHandler(ingresoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	consultaH := handler.NewConsultaHandler(productoSvc, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check — no auth required
	r.GET("/v1/precio/:sku", consultaH.GetPrecioPorSKU)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	lectura := middleware.RequireRole("vendedor", "supervisor", "administrador")
	escritura := middleware.RequireRole("supervisor", "administrador")
	admin := middleware.RequireRole("administrador")

	v1 := r.Group("/v1", jwtMW)
	{
		sup := v1.Group("/suplidores")
		{
			sup.GET("", lectura, suplidoresH.Listar)
			sup.GET("/exportar", lectura, suplidoresH.Exportar)
			sup.GET("/:id", lectura, suplidoresH.ObtenerPorID)
			sup.POST("", escritura, suplidoresH.Crear)
			sup.POST("/importar", escritura, suplidoresH.Importar)
			sup.PUT("/:id", escritura, suplidoresH.Actualizar)
			sup.DELETE("/:id", admin, suplidoresH.Eliminar)
		}

		cli := v1.Group("/clientes")
		{
			cli.GET("", lectura, clientesH.Listar)
			cli.GET("/exportar", lectura, clientesH.Exportar)
			cli.GET("/:id", lectura, clientesH.ObtenerPorID)
			cli.POST("", escritura, clientesH.Crear)
			cli.POST("/importar", escritura, clientesH.Importar)
			cli.PUT("/:id", escritura, clientesH.Actualizar)
			cli.DELETE("/:id", admin, clientesH.Eliminar)
		}

		prod := v1.Group("/productos")
		{
			prod.GET("", lectura, productosH.Listar)
			prod.GET("/exportar", lectura, productosH.Exportar)
			prod.GET("/:id", lectura, productosH.ObtenerPorID)
			prod.POST("", escritura, productosH.Crear)
			prod.POST("/importar", escritura, productosH.Importar)
			prod.PUT("/:id", escritura, productosH.Actualizar)
			prod.PATCH("/:id/stock", escritura, productosH.AjustarStock)
			prod.DELETE("/:id", admin, productosH.Eliminar)
		}

		mat := v1.Group("/materias-primas")
		{
			mat.GET("", lectura, materiasH.Listar)
			mat.GET("/exportar", lectura, materiasH.Exportar)
			mat.GET("/:id", lectura, materiasH.ObtenerPorID)
			mat.POST("", escritura, materiasH.Crear)
			mat.POST("/importar", escritura, materiasH.Importar)
			mat.PUT("/:id", escritura, materiasH.Actualizar)
			mat.DELETE("/:id", admin, materiasH.Eliminar)
		}

		egr := v1.Group("/egresos")
		{
			egr.GET("", lectura, egresosH.Listar)
			egr.GET("/pendientes", lectura, egresosH.Pendientes)
			egr.GET("/exportar", lectura, egresosH.Exportar)
			egr.GET("/:id", lectura, egresosH.ObtenerPorID)
			egr.POST("", escritura, egresosH.Crear)
			egr.POST("/importar", escritura, egresosH.Importar)
			egr.POST("/:id/pagos", escritura, egresosH.AgregarPago)
			egr.DELETE("/:id/pagos/:pago_id", escritura, egresosH.EliminarPago)
			egr.PUT("/:id", escritura, egresosH.Actualizar)
			egr.DELETE("/:id", admin, egresosH.Eliminar)
		}

		ing := v1.Group("/ingresos")
		{
			ing.GET("", lectura, ingresosH.Listar)
			ing.GET("/pendientes", lectura, ingresosH.Pendientes)
			ing.GET("/exportar", lectura, ingresosH.Exportar)
			ing.GET("/:id", lectura, ingresosH.ObtenerPorID)
			ing.POST("", escritura, ingresosH.Crear)
			ing.POST("/importar", escritura, ingresosH.Importar)
			ing.POST("/:id/pagos", escritura, ingresosH.AgregarPago)
			ing.DELETE("/:id/pagos/:pago_id", escritura, ingresosH.EliminarPago)
			ing.PUT("/:id", escritura, ingresosH.Actualizar)
			ing.DELETE("/:id", admin, ingresosH.Eliminar)
		}

		v1.GET("/inventario/alertas", escritura, inventarioH.ObtenerAlertas)

		usuarios := v1.Group("/usuarios", admin)
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
