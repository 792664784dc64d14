package handlers

import (
	"net/http"

	"pricelist-profit/internal/api/models"
	"pricelist-profit/internal/resolve"
	"pricelist-profit/internal/table"

	"github.com/gin-gonic/gin"
)

const (
	previewRows = 5
	nameSamples = 10
)

// ColumnsHandler handles GET /columns
type ColumnsHandler struct {
	deps Deps
}

func NewColumnsHandler(d Deps) *ColumnsHandler {
	return &ColumnsHandler{deps: d}
}

// GetColumns handles GET /api/v1/columns
// Optional ?name= picks the column shown in name_samples.
func (h *ColumnsHandler) GetColumns(c *gin.Context) {
	var q models.ColumnsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	row, ok := headerRow(c, h.deps.Config, q.HeaderRow)
	if !ok {
		return
	}
	t, _, err := h.deps.Uploads.Open(c.Request.Context(), q.Country, q.Filename, row)
	if err != nil {
		respondFileError(c, err)
		return
	}

	m := resolve.ResolveFields(t)
	sampleCol := m.Name
	if ref := c.Query("name"); ref != "" {
		id, err := t.ParseColumnRef(ref)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_MAPPING", err.Error(), nil)
			return
		}
		sampleCol = id
	}
	samples := t.Column(sampleCol)
	if len(samples) > nameSamples {
		samples = samples[:nameSamples]
	}
	if samples == nil {
		samples = []string{}
	}

	cols := make([]table.ColumnID, t.Width())
	for i := range cols {
		cols[i] = table.ColumnID(i)
	}
	c.JSON(http.StatusOK, models.ColumnsResponse{
		Country:         q.Country,
		Filename:        q.Filename,
		HeaderRow:       row,
		HeaderMode:      string(t.Mode),
		Columns:         columnRefs(t, cols),
		Preview:         t.Preview(previewRows),
		Suggested:       mappingInfo(t, m),
		PriceCandidates: columnRefs(t, resolve.PriceCandidates(t)),
		NameSamples:     samples,
	})
}
