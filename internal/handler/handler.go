package handler

import (
	"context"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/huynhmanh2003/RAJI-BE/internal/service"
	"github.com/huynhmanh2003/RAJI-BE/internal/ws"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Handler struct {
	logger   *zap.Logger
	services *service.Service
	hub      *ws.Hub
	registry *ws.Registry
}

func New(logger *zap.Logger, services *service.Service, hub *ws.Hub, registry *ws.Registry) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
		hub:      hub,
		registry: registry,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{viper.GetString("client.origin")},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		comments := v1.Group("/comments")
		{
			comments.POST("", h.authMiddleware, h.commentsCreate)
			comments.GET("/task/:taskID", h.authMiddleware, h.commentsGetRoots)

			comment := comments.Group("/:commentID")
			{
				comment.GET("/replies", h.authMiddleware, h.commentsGetReplies)
				comment.PATCH("", h.authMiddleware, h.commentsEdit)
				comment.DELETE("", h.authMiddleware, h.commentsDelete)
			}
		}

		tasks := v1.Group("/tasks")
		{
			tasks.POST("", h.authMiddleware, h.tasksCreate)

			task := tasks.Group("/:taskID")
			{
				task.GET("", h.authMiddleware, h.tasksGetByID)
				task.PATCH("", h.authMiddleware, h.tasksUpdate)
				task.DELETE("", h.authMiddleware, h.tasksDelete)
			}
		}

		v1.GET("/ws", h.authMiddleware, h.wsConnect)
	}

	return r
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims, accessToken string) (*model.CachedUser, error) {
	idString, ok := claims["id"].(string)
	if !ok {
		return nil, errNotAuthorized
	}
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.UserCache.CreateOrGet(ctx, id, accessToken)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
