package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pharos-signage/pharos/internal/db"
	"github.com/pharos-signage/pharos/internal/executor"
	"github.com/pharos-signage/pharos/internal/http/api"
	adminapi "github.com/pharos-signage/pharos/internal/http/api/admin/endpoints"
	tvapi "github.com/pharos-signage/pharos/internal/http/api/tv/endpoints"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, store db.Store, exec *executor.Executor) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
	},
		adminapi.ScreenModule(store, exec),
		adminapi.ScheduleModule(store, exec),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/tv",
	},
		tvapi.ScreensModule(store),
	)
}
