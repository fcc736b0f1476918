package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/live"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/store"
)

var configPath = flag.String("config", "config.yaml", "path to optional configuration file")

// app holds everything the handlers share.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	store    *store.Store
	mailer   Mailer
	showcase *live.Server

	adminToken  string
	hashingSalt string

	// track records a page view; it runs in the background outside tests.
	track func(store.Visitor)
}

func newApp(cfg *config.Config, logger *zap.Logger, st *store.Store, mailer Mailer) (*app, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate admin token: %w", err)
	}
	salt, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	a := &app{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		mailer:      mailer,
		adminToken:  token,
		hashingSalt: salt,
	}
	a.track = func(v store.Visitor) { go a.recordVisit(v) }
	a.showcase = live.NewServer(cfg.CardSwap, projectSlugs(), len(Awards), st, logger.Named("showcase"))
	return a, nil
}

func (a *app) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(a.logger), a.visitorTracking())
	r.LoadHTMLGlob(a.cfg.Server.TemplatesGlob)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Home page route
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"heroTitle":      HeroTitle,
			"heroTagline":    HeroTagline,
			"heroRoles":      HeroRoles,
			"aboutMeContent": AboutMe,
			"projects":       Projects,
			"awards":         Awards,
			"skills":         Skills,
			"contactEmail":   ContactEmail,
			"cardWidth":      a.cfg.CardSwap.Width,
			"cardHeight":     a.cfg.CardSwap.Height,
		})
	})

	// HTMX contact form fragment
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})

	r.GET("/work-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "work-content.html", gin.H{
			"positions": Work,
		})
	})

	r.GET("/education-content", func(c *gin.Context) {
		c.HTML(http.StatusOK, "education-content.html", gin.H{
			"positions": Education,
		})
	})

	r.POST("/contact", func(c *gin.Context) {
		form := ContactForm{
			Name:    c.PostForm("fullName"),
			Email:   c.PostForm("email"),
			Message: c.PostForm("message"),
		}

		err := a.submitContact(c.Request.Context(), form)
		switch {
		case isValidationError(err):
			c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
				"error": err.Error(),
			})
		case err != nil:
			a.logger.Error("contact submission failed", zap.Error(err))
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
		default:
			c.HTML(http.StatusOK, "contact-success.html", gin.H{
				"success": "Thank you for your message! I'll get back to you soon.",
			})
		}
	})

	r.GET("/ws/showcase", gin.WrapH(a.showcase))

	a.setupAdminRoutes(r)
	return r
}

// pruneVisitors drops old visitor rows at startup and then daily.
func (a *app) pruneVisitors(ctx context.Context) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if _, err := a.store.PruneVisitors(ctx, a.cfg.Database.VisitorRetention); err != nil {
			a.logger.Warn("error cleaning up old visitor data", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer st.Close()

	if !cfg.SMTP.Configured() {
		logger.Warn("SMTP credentials not configured; contact messages will only be stored")
	}
	if cfg.Admin.PasswordHash == "" && cfg.Admin.Password == "admin123" {
		logger.Warn("using default admin password; set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}

	a, err := newApp(cfg, logger, st, newSMTPMailer(cfg.SMTP, logger))
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}
	if gin.Mode() == gin.DebugMode {
		logger.Debug("admin token (dev only)", zap.String("token", a.adminToken))
	}

	go a.pruneVisitors(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: a.routes(),
	}

	go func() {
		logger.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.Duration("card_interval", cfg.CardSwap.Interval),
			zap.String("card_preset", cfg.CardSwap.Easing),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	a.showcase.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
