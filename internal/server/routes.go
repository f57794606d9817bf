package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/danmuck/modhost/internal/auth"
	"github.com/danmuck/modhost/internal/manifest"
	"github.com/danmuck/modhost/internal/modular"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/health", s.health)
	r.GET("/ready", s.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	files := "/" + modular.ModulesPath + "/:module/*subpath"
	r.GET(files, s.moduleFile)
	r.HEAD(files, s.moduleFile)

	if s.admin == nil {
		return
	}
	admin := r.Group("/admin", auth.Require(s.admin))
	admin.GET("/application", s.application)
	admin.GET("/modules", s.modules)
	admin.GET("/modules/:module", s.module)
}

func (s *Server) moduleFile(c *gin.Context) {
	name := c.Param("module")
	subpath := strings.TrimPrefix(c.Param("subpath"), "/")

	m, err := s.Registry.Module(name)
	if err != nil {
		s.fail(c, "module", name, subpath, err)
		return
	}
	f, err := m.File(subpath)
	if err != nil {
		s.fail(c, "lookup", name, subpath, err)
		return
	}
	if !f.Exists() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "module": name, "path": subpath})
		return
	}

	rc, err := f.Open()
	if err != nil {
		s.fail(c, "open", name, subpath, err)
		return
	}
	defer rc.Close()

	content, ok := rc.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(rc)
		if err != nil {
			s.fail(c, "read", name, subpath, err)
			return
		}
		content = bytes.NewReader(data)
	}
	http.ServeContent(c.Writer, c.Request, f.Name(), f.ModTime(), content)
}

func (s *Server) fail(c *gin.Context, op, module, subpath string, err error) {
	log.Error().
		Str("host", s.ID).
		Str("op", op).
		Str("module", module).
		Str("subpath", subpath).
		Err(err).
		Msg("module file request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// ModuleView is the admin representation of a loaded module.
type ModuleView struct {
	Name         string              `json:"name"`
	SubPath      string              `json:"sub_path"`
	Root         string              `json:"root"`
	Info         manifest.ModuleInfo `json:"info"`
	Assets       []manifest.Asset    `json:"assets"`
	CachedFiles  int                 `json:"cached_files"`
	LastModified time.Time           `json:"last_modified"`
}

func moduleView(m *modular.Module) ModuleView {
	return ModuleView{
		Name:         m.Name,
		SubPath:      m.SubPath,
		Root:         m.Root,
		Info:         m.Info,
		Assets:       m.Assets,
		CachedFiles:  m.CachedFiles(),
		LastModified: m.LastModified(),
	}
}

func (s *Server) application(c *gin.Context) {
	app, err := s.Registry.Application()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":           app.Name,
		"modules":        app.ModuleNames,
		"loaded_modules": s.Registry.LoadedModules(),
	})
}

func (s *Server) modules(c *gin.Context) {
	mods, err := s.Registry.Modules()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	views := make([]ModuleView, 0, len(mods))
	for _, m := range mods {
		views = append(views, moduleView(m))
	}
	c.JSON(http.StatusOK, gin.H{"modules": views})
}

func (s *Server) module(c *gin.Context) {
	m, err := s.Registry.Module(c.Param("module"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !m.Exists() {
		c.JSON(http.StatusNotFound, gin.H{"error": "module not found"})
		return
	}
	c.JSON(http.StatusOK, moduleView(m))
}
