// Package httpx maps the items REST API and index page onto an items.Store.
package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"items-crud/backend/internal/items"
	"items-crud/backend/internal/obs"
)

const (
	msgNotFound    = "Not found"
	msgRequired    = "name and price required"
	msgInvalidJSON = "invalid JSON body"
)

// PageInfo is the connection summary shown on the index page.
type PageInfo struct {
	DBName string
	DBAddr string
}

type Server struct {
	R     *gin.Engine
	Store items.Store
	Info  PageInfo
	Now   func() time.Time
}

// itemRequest is the body accepted by POST and PUT. Both fields must be
// present; a null price counts as absent.
type itemRequest struct {
	Name  string           `json:"name" binding:"required"`
	Price *decimal.Decimal `json:"price" binding:"required"`
}

type itemResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price items.Price `json:"price"`
}

func NewServer(store items.Store, info PageInfo) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logging(), CORS())
	r.SetHTMLTemplate(pageTemplate)

	s := &Server{R: r, Store: store, Info: info, Now: time.Now}

	r.GET("/", s.index)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": s.Now().UTC()})
	})

	api := r.Group("/api")
	{
		api.GET("/items", s.listItems)
		api.POST("/items", s.createItem)
		api.GET("/items/:id", s.getItem)
		api.PUT("/items/:id", s.replaceItem)
		api.DELETE("/items/:id", s.deleteItem)
	}

	return s
}

func (s *Server) listItems(c *gin.Context) {
	out, err := s.Store.List(c.Request.Context(), 0)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	it, err := s.Store.Get(c.Request.Context(), id)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (s *Server) createItem(c *gin.Context) {
	req, ok := bindItem(c)
	if !ok {
		return
	}
	id, err := s.Store.Create(c.Request.Context(), req.Name, *req.Price)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, itemResponse{ID: id, Name: req.Name, Price: items.NewPrice(*req.Price)})
}

func (s *Server) replaceItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindItem(c)
	if !ok {
		return
	}
	if err := s.Store.Update(c.Request.Context(), id, req.Name, *req.Price); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemResponse{ID: id, Name: req.Name, Price: items.NewPrice(*req.Price)})
}

func (s *Server) deleteItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.Store.Delete(c.Request.Context(), id); err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// pathID parses :id. Ids that cannot exist are reported as not found.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return 0, false
	}
	return id, true
}

func bindItem(c *gin.Context) (itemRequest, bool) {
	var req itemRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		return req, true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgRequired})
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidJSON})
	}
	return req, false
}

// storeError writes 404 for items.ErrNotFound and leaks anything else as a
// 500 with the raw message.
func storeError(c *gin.Context, err error) {
	if errors.Is(err, items.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	obs.Logger.Error("store_error",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
		"request_id", c.GetString(ctxRequestID),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
