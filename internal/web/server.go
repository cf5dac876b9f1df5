package web

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/dualpick/core"
	"github.com/jask/dualpick/core/element"
	"github.com/jask/dualpick/internal/binding"
	"github.com/jask/dualpick/internal/database/repository"
)

//go:embed assets/dualpick.css
var stylesheet []byte

// FieldName is the form field the selection is posted under.
const FieldName = "selection"

// SetSource loads option sets by name.
type SetSource interface {
	Get(ctx context.Context, name string) (repository.OptionSet, error)
}

// BindingFunc returns the selection binding of a set.
type BindingFunc func(set string) binding.Binding

type Server struct {
	sets     SetSource
	bindings BindingFunc
	cfg      core.Config
	lang     string
	submit   string
	logger   *zap.Logger
}

func NewServer(sets SetSource, bindings BindingFunc, cfg core.Config, lang string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{sets: sets, bindings: bindings, cfg: cfg, lang: lang, submit: "Save", logger: logger}
}

// Handler returns the gin router.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/sets/:name", s.showHandler)
	r.GET("/sets/:name/config", s.configHandler)
	r.POST("/sets/:name", s.submitHandler)
	r.GET("/assets/dualpick.css", s.cssHandler)
	return r
}

type optionRenderer struct{}

func (optionRenderer) ID(o repository.Option) string            { return o.Key }
func (optionRenderer) Display(o repository.Option) string       { return o.Label }
func (optionRenderer) FilterWords(o repository.Option) []string { return o.FilterWords }

// load builds the element of a set with its stored selection applied.
func (s *Server) load(ctx context.Context, name string) (repository.OptionSet, *element.Element, error) {
	set, err := s.sets.Get(ctx, name)
	if err != nil {
		return repository.OptionSet{}, nil, err
	}
	keys, err := s.bindings(name).ReadSelection(ctx)
	if err != nil {
		return repository.OptionSet{}, nil, err
	}
	byKey := make(map[string]repository.Option, len(set.Options))
	for _, o := range set.Options {
		byKey[o.Key] = o
	}
	var selected []repository.Option
	for _, k := range keys {
		if o, ok := byKey[k]; ok {
			selected = append(selected, o)
		}
	}
	id := "dualpick-" + uuid.NewString()
	el := BuildElement(id, FieldName, set.Options, selected, optionRenderer{}, s.cfg.Widget.Filter)
	return set, el, nil
}

func (s *Server) showHandler(c *gin.Context) {
	name := c.Param("name")
	set, el, err := s.load(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	cfgJSON, err := NewInitConfig(s.cfg).JSON()
	if err != nil {
		s.fail(c, err)
		return
	}
	title := set.Title
	if title == "" {
		title = set.Name
	}
	var buf bytes.Buffer
	if err := renderPage(&buf, pageModel{
		Lang:    s.lang,
		Title:   title,
		Set:     set.Name,
		Config:  cfgJSON,
		Submit:  s.submit,
		Element: el,
	}); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) configHandler(c *gin.Context) {
	if _, err := s.sets.Get(c.Request.Context(), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewInitConfig(s.cfg))
}

// submitHandler stores the posted selection and redirects back to the form.
func (s *Server) submitHandler(c *gin.Context) {
	name := c.Param("name")
	_, el, err := s.load(c.Request.Context(), name)
	if err != nil {
		s.fail(c, err)
		return
	}
	keys := ParseSelection(el, c.PostFormArray(FieldName))
	if err := s.bindings(name).WriteSelection(c.Request.Context(), keys); err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("selection saved", zap.String("set", name), zap.Int("selected", len(keys)))
	c.Redirect(http.StatusSeeOther, "/sets/"+name)
}

func (s *Server) cssHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", stylesheet)
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrSetNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
