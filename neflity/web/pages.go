package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neflity/neflity-site/neflity/command"
	"github.com/neflity/neflity-site/neflity/rank"
	"github.com/neflity/neflity-site/neflity/staff"
)

// page returns the data every template needs, merged with extra.
func (h *handler) page(c *gin.Context, active string, extra gin.H) gin.H {
	data := gin.H{
		"Lang":     h.catalog.Match(c.GetHeader("Accept-Language")),
		"SiteName": h.conf.SiteName,
		"Year":     time.Now().Year(),
		"Active":   active,
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// render ...
func (h *handler) render(c *gin.Context, code int, name string, data gin.H) {
	c.HTML(code, name, data)
	if len(c.Errors) > 0 {
		h.log.Error("failed to render page", "page", name, "error", c.Errors.Last().Err)
	}
}

// portal renders the landing page with the latest server status.
func (h *handler) portal(c *gin.Context) {
	h.render(c, http.StatusOK, "portal.html", h.page(c, "portal", gin.H{
		"Status": h.provider.View(),
		// The game protocol scheme is not one html/template trusts.
		"ConnectURI": template.URL(h.conf.Server.ConnectURI(h.conf.ConnectProtocol)),
	}))
}

// staff ...
func (h *handler) staff(c *gin.Context) {
	h.render(c, http.StatusOK, "staff.html", h.page(c, "staff", gin.H{
		"Members": staff.All(),
	}))
}

// commands ...
func (h *handler) commands(c *gin.Context) {
	h.render(c, http.StatusOK, "commands.html", h.page(c, "commands", gin.H{
		"Commands": command.All(),
	}))
}

// ranks ...
func (h *handler) ranks(c *gin.Context) {
	h.render(c, http.StatusOK, "ranks.html", h.page(c, "ranks", gin.H{
		"Groups": rank.Roster(h.conf.Ranks),
	}))
}

// join ...
func (h *handler) join(c *gin.Context) {
	h.render(c, http.StatusOK, "join.html", h.page(c, "join", gin.H{
		"Invite": h.conf.DiscordInvite,
	}))
}

// connect redirects to the game's deep link, which opens the game client
// and joins the server.
func (h *handler) connect(c *gin.Context) {
	c.Redirect(http.StatusFound, h.conf.Server.ConnectURI(h.conf.ConnectProtocol))
}

// status returns the status block as JSON.
func (h *handler) status(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, h.provider.View())
}

// notFound ...
func (h *handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "notfound.html", h.page(c, "", gin.H{
		"Path": c.Request.URL.Path,
	}))
}
