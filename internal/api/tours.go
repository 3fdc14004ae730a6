package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Yellow-Molly/heritageguiding-platform-sub000/internal/model"
)

// ListTours 查询线路列表
// GET /api/tours?status=&limit=
func (h *Handler) ListTours(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit <= 0 {
		limit = 100
	}

	tours, err := h.store.ListTours(status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取线路失败"})
		return
	}

	type tourSummary struct {
		ID     int64            `json:"id"`
		Slug   string           `json:"slug"`
		Status model.TourStatus `json:"status"`
		Title  string           `json:"title"`
	}

	out := make([]tourSummary, 0, len(tours))
	for _, t := range tours {
		out = append(out, tourSummary{
			ID:     t.ID,
			Slug:   t.Slug,
			Status: t.Status,
			Title:  t.Title.Get(model.DefaultLocale),
		})
	}

	c.JSON(http.StatusOK, gin.H{"tours": out, "total": len(out)})
}
