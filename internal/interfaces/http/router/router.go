// Package router mounts route registrars under a versioned API prefix.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by anything that can attach its routes to
// a gin group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under /api/<version>.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router on the given engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar; its routes are mounted on Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every queued registrar under the versioned prefix
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup bundles the routes of one functional area under a shared
// prefix and middleware chain.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a named group mounted at the given prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use appends middleware applied to every route in the group
func (dg *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, mw...)
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string { return dg.name }

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string { return dg.prefix }
