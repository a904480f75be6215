package web

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/neflity/neflity-site/neflity/locale"
	"github.com/neflity/neflity-site/neflity/rank"
	"github.com/neflity/neflity-site/neflity/srv"
	"github.com/neflity/neflity-site/neflity/status"
)

//go:embed templates/*.html
var templates embed.FS

// Config holds what the pages show besides the live status.
type Config struct {
	SiteName        string
	Server          srv.Config
	ConnectProtocol string
	DiscordInvite   string
	Ranks           rank.Config

	// RateLimit is the number of API requests per second allowed per IP,
	// with bursts of up to RateBurst.
	RateLimit float64
	RateBurst int
}

// handler serves the site pages.
type handler struct {
	log     *slog.Logger
	conf    Config
	catalog *locale.Catalog

	provider *status.Provider
}

// New builds the router serving every page, the status API and the status
// websocket stream.
func New(log *slog.Logger, conf Config, provider *status.Provider, hub *status.Hub, catalog *locale.Catalog) (*gin.Engine, error) {
	tmpl, err := parseTemplates(catalog)
	if err != nil {
		return nil, err
	}

	h := &handler{
		log:      log,
		conf:     conf,
		catalog:  catalog,
		provider: provider,
	}

	router := gin.New()
	router.Use(recovery(log), requestLogger(log))
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.portal)
	router.GET("/portal", h.portal)
	router.GET("/staff", h.staff)
	router.GET("/commands", h.commands)
	router.GET("/ranks", h.ranks)
	router.GET("/join", h.join)
	router.GET("/connect", h.connect)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	limiter := newRateLimiter(conf.RateLimit, conf.RateBurst)
	api := router.Group("/api", limiter.middleware())
	api.GET("/status", h.status)

	ws := router.Group("/ws", limiter.middleware())
	ws.GET("/status", gin.WrapH(hub))

	router.NoRoute(h.notFound)
	return router, nil
}

// parseTemplates parses the embedded pages with the translation helpers.
func parseTemplates(catalog *locale.Catalog) (*template.Template, error) {
	funcs := template.FuncMap{
		"t": func(lang language.Tag, key string, args ...any) string {
			return catalog.Translate(lang, key, args...)
		},
		// tHTML is for strings that carry markup. Arguments are escaped.
		"tHTML": func(lang language.Tag, key string, args ...any) template.HTML {
			escaped := make([]any, len(args))
			for i, arg := range args {
				escaped[i] = html.EscapeString(fmt.Sprint(arg))
			}
			return template.HTML(catalog.Translate(lang, key, escaped...))
		},
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
