package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rackworks/catalog/internal/attribute"
	attrdomain "github.com/rackworks/catalog/internal/attribute/domain"
	"github.com/rackworks/catalog/internal/baremetal"
	bmdomain "github.com/rackworks/catalog/internal/baremetal/domain"
	"github.com/rackworks/catalog/internal/bundle"
	bundledomain "github.com/rackworks/catalog/internal/bundle/domain"
	"github.com/rackworks/catalog/internal/config"
	"github.com/rackworks/catalog/internal/dedicatedhost"
	dhdomain "github.com/rackworks/catalog/internal/dedicatedhost/domain"
	"github.com/rackworks/catalog/internal/observability"
	obsmiddleware "github.com/rackworks/catalog/internal/observability/logger"
	obsmetrics "github.com/rackworks/catalog/internal/observability/metrics"
	obstracing "github.com/rackworks/catalog/internal/observability/tracing"
	"github.com/rackworks/catalog/internal/product"
	proddomain "github.com/rackworks/catalog/internal/product/domain"
	"github.com/rackworks/catalog/internal/productattr"
	padomain "github.com/rackworks/catalog/internal/productattr/domain"
	"github.com/rackworks/catalog/internal/ratelimit"
	"github.com/rackworks/catalog/internal/rateplan"
	rpdomain "github.com/rackworks/catalog/internal/rateplan/domain"
	"github.com/rackworks/catalog/internal/reference"
	"github.com/rackworks/catalog/internal/template"
	tmpldomain "github.com/rackworks/catalog/internal/template/domain"
	"github.com/rackworks/catalog/internal/templateattr"
	tadomain "github.com/rackworks/catalog/internal/templateattr/domain"
	"github.com/rackworks/catalog/internal/viewpref"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	attribute.Module,
	template.Module,
	templateattr.Module,
	product.Module,
	productattr.Module,
	rateplan.Module,
	bundle.Module,
	baremetal.Module,
	dedicatedhost.Module,
	reference.Module,
	viewpref.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine           *gin.Engine
	cfg              config.Config
	db               *gorm.DB
	genID            *snowflake.Node
	attributeSvc     attrdomain.Service
	templateSvc      tmpldomain.Service
	templateAttrSvc  tadomain.Service
	productSvc       proddomain.Service
	productAttrSvc   padomain.Service
	ratePlanSvc      rpdomain.Service
	bundleSvc        bundledomain.Service
	bareMetalSvc     bmdomain.Service
	dedicatedHostSvc dhdomain.Service
	referenceSvc     reference.Service
	viewPrefSvc      viewpref.Service
	writeLimiter     *ratelimit.WriteLimiter
}

type ServerParams struct {
	fx.In

	Gin              *gin.Engine
	Cfg              config.Config
	DB               *gorm.DB
	GenID            *snowflake.Node
	AttributeSvc     attrdomain.Service
	TemplateSvc      tmpldomain.Service
	TemplateAttrSvc  tadomain.Service
	ProductSvc       proddomain.Service
	ProductAttrSvc   padomain.Service
	RatePlanSvc      rpdomain.Service
	BundleSvc        bundledomain.Service
	BareMetalSvc     bmdomain.Service
	DedicatedHostSvc dhdomain.Service
	ReferenceSvc     reference.Service
	ViewPrefSvc      viewpref.Service
	WriteLimiter     *ratelimit.WriteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:           p.Gin,
		cfg:              p.Cfg,
		db:               p.DB,
		genID:            p.GenID,
		attributeSvc:     p.AttributeSvc,
		templateSvc:      p.TemplateSvc,
		templateAttrSvc:  p.TemplateAttrSvc,
		productSvc:       p.ProductSvc,
		productAttrSvc:   p.ProductAttrSvc,
		ratePlanSvc:      p.RatePlanSvc,
		bundleSvc:        p.BundleSvc,
		bareMetalSvc:     p.BareMetalSvc,
		dedicatedHostSvc: p.DedicatedHostSvc,
		referenceSvc:     p.ReferenceSvc,
		viewPrefSvc:      p.ViewPrefSvc,
		writeLimiter:     p.WriteLimiter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	write := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if s.writeLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{s.writeLimiter.Middleware(), handler}
	}

	api.GET("/attributes", s.ListAttributes)
	api.POST("/attributes", write(s.CreateAttribute)...)
	api.GET("/attributes/:id", s.GetAttribute)
	api.PATCH("/attributes/:id", write(s.UpdateAttribute)...)
	api.DELETE("/attributes/:id", write(s.ArchiveAttribute)...)

	api.GET("/templates", s.ListTemplates)
	api.POST("/templates", write(s.CreateTemplate)...)
	api.GET("/templates/:id", s.GetTemplate)
	api.PATCH("/templates/:id", write(s.UpdateTemplate)...)
	api.DELETE("/templates/:id", write(s.ArchiveTemplate)...)
	api.GET("/templates/:id/attributes", s.ListTemplateAttributes)
	api.PUT("/templates/:id/attributes", write(s.ReconcileTemplateAttributes)...)

	api.GET("/products", s.ListProducts)
	api.POST("/products", write(s.CreateProduct)...)
	api.GET("/products/:id", s.GetProduct)
	api.PATCH("/products/:id", write(s.UpdateProduct)...)
	api.DELETE("/products/:id", write(s.ArchiveProduct)...)
	api.GET("/products/:id/values", s.ListProductValues)
	api.PUT("/products/:id/values", write(s.ReconcileProductValues)...)

	api.GET("/rate-plans", s.ListRatePlans)
	api.POST("/rate-plans", write(s.CreateRatePlan)...)
	api.GET("/rate-plans/:id", s.GetRatePlan)
	api.PATCH("/rate-plans/:id", write(s.UpdateRatePlan)...)
	api.DELETE("/rate-plans/:id", write(s.ArchiveRatePlan)...)

	api.GET("/bundles", s.ListBundles)
	api.POST("/bundles", write(s.CreateBundle)...)
	api.GET("/bundles/:id", s.GetBundle)
	api.PATCH("/bundles/:id", write(s.UpdateBundle)...)
	api.DELETE("/bundles/:id", write(s.ArchiveBundle)...)

	api.GET("/bare-metal", s.ListBareMetal)
	api.POST("/bare-metal", write(s.CreateBareMetal)...)
	api.GET("/bare-metal/:id", s.GetBareMetal)
	api.PATCH("/bare-metal/:id", write(s.UpdateBareMetal)...)
	api.DELETE("/bare-metal/:id", write(s.ArchiveBareMetal)...)

	api.GET("/dedicated-hosts", s.ListDedicatedHosts)
	api.POST("/dedicated-hosts", write(s.CreateDedicatedHost)...)
	api.GET("/dedicated-hosts/:id", s.GetDedicatedHost)
	api.PATCH("/dedicated-hosts/:id", write(s.UpdateDedicatedHost)...)
	api.DELETE("/dedicated-hosts/:id", write(s.ArchiveDedicatedHost)...)

	api.GET("/reference/scopes", s.ListScopes)
	api.GET("/reference/services", s.ListServices)
	api.GET("/reference/service-types", s.ListServiceTypes)
	api.GET("/reference/regions", s.ListRegions)
	api.GET("/reference/enums/:type", s.GetEnumValues)

	api.GET("/view-preferences/:feature", s.GetViewPreferences)
	api.PUT("/view-preferences/:feature", write(s.SetViewPreferences)...)
}
