package httpx

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"items-crud/backend/internal/items"
)

//go:embed templates/index.html
var templatesFS embed.FS

// isoMillis matches the UTC, millisecond precision form browsers produce.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

type pageRow struct {
	ID      int64
	Name    string
	Price   string
	Created string
}

type pageData struct {
	PageInfo
	Items []pageRow
}

func (s *Server) index(c *gin.Context) {
	recent, err := s.Store.List(c.Request.Context(), items.RecentLimit)
	if err != nil {
		storeError(c, err)
		return
	}
	c.HTML(http.StatusOK, "index.html", pageData{
		PageInfo: s.Info,
		Items:    lo.Map(recent, func(it items.Item, _ int) pageRow { return toPageRow(it) }),
	})
}

func toPageRow(it items.Item) pageRow {
	return pageRow{
		ID:      it.ID,
		Name:    it.Name,
		Price:   formatPrice(it.Price.Decimal),
		Created: it.CreatedAt.UTC().Format(isoMillis),
	}
}

func formatPrice(d decimal.Decimal) string { return d.StringFixed(2) }
