package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studytube/config"
	"studytube/controller"
	"studytube/middleware"
)

// API assembles the gin engine: CORS, public auth routes, and the protected
// groups behind the JWT middleware.
func API(h *controller.Handler, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	router.Use(cors.New(corsCfg))

	// public
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	router.POST("/auth/register", h.Register)
	router.POST("/auth/login", h.Login)

	// protected
	authed := router.Group("/", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		authed.GET("/auth/me", h.GetProfile)
		authed.PUT("/auth/password", h.ChangePassword)
		authed.GET("/auth/stats", h.GetStats)

		authed.GET("/videos/search", h.SearchVideos)
		authed.GET("/videos/search/educational", h.SearchEducationalVideos)
		authed.POST("/videos/save", h.SaveVideo)
		authed.GET("/videos/saved", h.ListSavedVideos)
		authed.GET("/videos/categories", h.GetVideoCategories)
		authed.GET("/videos/saved/:id", h.GetSavedVideo)
		authed.PUT("/videos/saved/:id", h.UpdateSavedVideo)
		authed.DELETE("/videos/saved/:id", h.DeleteSavedVideo)

		authed.POST("/notes", h.CreateNote)
		authed.GET("/notes", h.ListNotes)
		authed.GET("/notes/search", h.SearchNotes)
		authed.GET("/notes/:id", h.GetNote)
		authed.PUT("/notes/:id", h.UpdateNote)
		authed.DELETE("/notes/:id", h.DeleteNote)

		authed.POST("/playlists", h.CreatePlaylist)
		authed.GET("/playlists", h.ListPlaylists)
		authed.GET("/playlists/:id", h.GetPlaylist)
		authed.PUT("/playlists/:id", h.UpdatePlaylist)
		authed.DELETE("/playlists/:id", h.DeletePlaylist)
		authed.POST("/playlists/:id/videos", h.AddPlaylistVideo)
		authed.PUT("/playlists/:id/videos/:video_id", h.MovePlaylistVideo)
		authed.DELETE("/playlists/:id/videos/:video_id", h.RemovePlaylistVideo)
	}
	return router
}
