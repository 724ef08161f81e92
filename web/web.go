// Package web provides the shop's HTTP server: routing, sessions, templates
// and the maintenance cron.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/tiendaweb/tienda/config"
	"github.com/tiendaweb/tienda/logger"
	"github.com/tiendaweb/tienda/util/common"
	"github.com/tiendaweb/tienda/web/cache"
	"github.com/tiendaweb/tienda/web/controller"
	"github.com/tiendaweb/tienda/web/entity"
	"github.com/tiendaweb/tienda/web/job"
	"github.com/tiendaweb/tienda/web/middleware"
	"github.com/tiendaweb/tienda/web/service"
	"github.com/tiendaweb/tienda/web/session"
	"github.com/tiendaweb/tienda/web/storage"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the shop web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index    *controller.IndexController
	user     *controller.UserController
	category *controller.CategoryController
	article  *controller.ArticleController
	cart     *controller.CartController

	settingService service.SettingService
	userService    service.UserService
	images         *service.ImageService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(htmlFS, "html/*.html")
}

// initStores opens Redis and the image store.
func (s *Server) initStores() error {
	if err := cache.InitRedis(s.ctx, config.GetRedisAddr()); err != nil {
		return err
	}
	store, err := storage.New(s.ctx)
	if err != nil {
		return err
	}
	s.images = service.NewImageService(store)
	return nil
}

func (s *Server) sessionStore() (sessions.Store, error) {
	secret := []byte(config.GetSessionSecret())
	if len(secret) == 0 {
		var err error
		secret, err = s.settingService.GetSecret()
		if err != nil {
			return nil, err
		}
	}

	var store sessions.Store
	switch config.GetSessionStore() {
	case config.SessionStoreRedis:
		store = cache.NewRedisStore(cache.GetClient(), secret)
	default:
		store = cookie.NewStore(secret)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// initRouter builds the gin engine with middleware, templates and controllers.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(config.GetTrustedProxies()); err != nil {
		return nil, err
	}
	engine.Use(gin.Recovery())
	if config.IsDebug() {
		engine.Use(gin.Logger())
	}
	engine.Use(middleware.RequestID())
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPathsRegexs([]string{`^/static/img/`}),
	))

	store, err := s.sessionStore()
	if err != nil {
		return nil, err
	}
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(session.Middleware())

	entity.RegisterValidations()

	funcMap := template.FuncMap{
		"price": common.FormatPrice,
		"itoa":  strconv.Itoa,
	}
	tpl, err := s.getHtmlTemplate(funcMap)
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	limiter := middleware.DefaultRateLimitConfig(config.GetLoginRateLimit())
	limiter.Methods = []string{http.MethodPost}
	limiter.OnLimit = controller.TooManyRequests

	g := engine.Group("/")
	s.index = controller.NewIndexController(g, s.images, middleware.RateLimitMiddleware(limiter))
	s.user = controller.NewUserController(g)
	s.category = controller.NewCategoryController(g)
	s.article = controller.NewArticleController(g, s.images)
	s.cart = controller.NewCartController(g)

	engine.NoRoute(controller.NotFound)

	return engine, nil
}

func (s *Server) startTask() {
	if _, err := s.cron.AddJob("@daily", job.NewCheckpointDBJob()); err != nil {
		logger.Warning("add checkpoint job failed:", err)
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	if s.userService.HasDefaultAdmin() {
		logger.Warning("the default admin/admin account is active; change it with `tienda setting admin`")
	}

	s.cron = cron.New()
	s.cron.Start()

	if err = s.initStores(); err != nil {
		return err
	}
	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	certFile, keyFile := config.GetCertFile(), config.GetKeyFile()
	if certFile != "" || keyFile != "" {
		if cert, err := tls.LoadX509KeyPair(certFile, keyFile); err == nil {
			listener = tls.NewListener(listener, &tls.Config{Certificates: []tls.Certificate{cert}})
			logger.Info("Web server running HTTPS on", listener.Addr())
		} else {
			logger.Error("Error loading certificates:", err)
			logger.Info("Web server running HTTP on", listener.Addr())
		}
	} else {
		logger.Info("Web server running HTTP on", listener.Addr())
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()
	return nil
}

// Stop shuts down the HTTP server, the cron scheduler and Redis.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err1 = s.httpServer.Shutdown(ctx)
	} else if s.listener != nil {
		err1 = s.listener.Close()
	}
	err2 = cache.Close()
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
