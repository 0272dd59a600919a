package http

import (
	"context"
	"net/http"

	"github.com/dkeye/voicejoin/internal/adapters/signal"
	"github.com/dkeye/voicejoin/internal/config"
	"github.com/dkeye/voicejoin/internal/domain"
	"github.com/dkeye/voicejoin/internal/hub"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

const sessionTokenKey = "client_token"

// ClientTokenMiddleware pins a random client token in the cookie session.
// The token keys join rate limiting.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		token, _ := s.Get(sessionTokenKey).(string)
		if token == "" {
			token = uuid.NewString()
			s.Set(sessionTokenKey, token)
			if err := s.Save(); err != nil {
				log.Warn().Err(err).Str("module", "adapters.http").Msg("session save")
			}
		}
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

type createRoomRequest struct {
	Name string `json:"name"`
}

func SetupRouter(ctx context.Context, cfg *config.Config, rooms *hub.Manager, ctl *signal.Controller) http.Handler {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{Path: "/", MaxAge: 3600 * 24 * 7, HttpOnly: true})
	r.Use(sessions.Sessions("VoiceJoinSessions", store))
	r.Use(ClientTokenMiddleware())

	if cfg.StaticPath != "" {
		r.Static("/static", cfg.StaticPath)
		r.GET("/", func(c *gin.Context) {
			c.File(cfg.StaticPath + "/index.html")
		})
	}

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	api := r.Group("/api")

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, rooms.List())
	})

	api.POST("/rooms", func(c *gin.Context) {
		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.Name) > signal.MaxRoomNameLen {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_room_name"})
			return
		}
		room := rooms.FindOrCreate(domain.RoomName(req.Name))
		c.JSON(http.StatusOK, room.Info())
	})

	api.GET("/rooms/:name/publications", func(c *gin.Context) {
		room, ok := rooms.Get(domain.RoomName(c.Param("name")))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown_room"})
			return
		}
		c.JSON(http.StatusOK, room.Publications())
	})

	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("sid", c.GetString(sessionTokenKey)).Msg("ws signal endpoint hit")
		ctl.HandleSignal(ctx, c)
	})

	return cors.AllowAll().Handler(r)
}
