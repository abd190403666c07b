package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// Controller wraps a gin group so modules can register HandlerFuncs without
// repeating the ResolveEndpoint adaptation.
type Controller struct {
	Group *gin.RouterGroup
}

func (c *Controller) GET(path string, h HandlerFunc)    { c.Group.GET(path, ResolveEndpoint(h)) }
func (c *Controller) POST(path string, h HandlerFunc)   { c.Group.POST(path, ResolveEndpoint(h)) }
func (c *Controller) PUT(path string, h HandlerFunc)    { c.Group.PUT(path, ResolveEndpoint(h)) }
func (c *Controller) DELETE(path string, h HandlerFunc) { c.Group.DELETE(path, ResolveEndpoint(h)) }

// GroupConfig tells the api package how to mount a group.
type GroupConfig struct {
	Prefix     string
	Middleware []gin.HandlerFunc // optional additional middleware
}

// MountGroup mounts one or more Modules under a prefix.
func MountGroup(parent gin.IRoutes, cfg GroupConfig, modules ...Module) {
	var grp *gin.RouterGroup

	switch v := parent.(type) {
	case *gin.Engine:
		grp = v.Group(cfg.Prefix)
	case *gin.RouterGroup:
		if cfg.Prefix != "" {
			grp = v.Group(cfg.Prefix)
		} else {
			grp = v
		}
	default:
		log.Fatal().Str("type", fmt.Sprintf("%T", parent)).Msg("api.MountGroup: unsupported router type")
	}

	// Apply middleware in a deterministic order.
	for _, mw := range cfg.Middleware {
		grp.Use(mw)
	}

	controller := &Controller{Group: grp}

	for _, m := range modules {
		m.Mount(controller)
	}
}
