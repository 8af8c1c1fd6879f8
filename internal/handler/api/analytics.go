package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "foodshare/internal/handler/dto/response"
	"foodshare/internal/pkg/clock"
	"foodshare/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUseCase usecase.AnalyticsUseCase
	clock            clock.Clock
}

func NewAnalyticsHandler(analyticsUseCase usecase.AnalyticsUseCase, clock clock.Clock) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUseCase: analyticsUseCase,
		clock:            clock,
	}
}

// @Summary Platform overview
// @Description Aggregate platform totals for dashboards
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.OverviewResponse
// @Router /analytics/overview [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	rm, err := h.analyticsUseCase.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromOverviewRM(rm))
}

// @Summary Donation trends
// @Description Completed donation counts bucketed by period
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param period query string false "daily, weekly or monthly" default(monthly)
// @Param year query int false "Year to report on"
// @Success 200 {array} resdto.TrendPointResponse
// @Failure 400 {object} map[string]string
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	period := c.DefaultQuery("period", "monthly")

	year := h.clock.Now().Year()
	if yearParam := c.Query("year"); yearParam != "" {
		parsed, err := strconv.Atoi(yearParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	rms, err := h.analyticsUseCase.Trends(c.Request.Context(), period, year)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidTrendPeriod) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTrendPointRMs(rms))
}

// @Summary Category breakdown
// @Description Completed donations grouped by food category
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.CategoryBreakdownResponse
// @Router /analytics/categories [get]
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	rms, err := h.analyticsUseCase.CategoryBreakdown(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCategoryBreakdownRMs(rms))
}

// @Summary Top donors
// @Description Donors ranked by completed donations
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of donors to return" default(10)
// @Success 200 {array} resdto.TopDonorResponse
// @Router /analytics/top-donors [get]
func (h *AnalyticsHandler) TopDonors(c *gin.Context) {
	limit := parseLimit(c)

	rms, err := h.analyticsUseCase.TopDonors(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTopDonorRMs(rms))
}

// @Summary Top recipients
// @Description Recipient organizations ranked by donations received
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Number of recipients to return" default(10)
// @Success 200 {array} resdto.TopRecipientResponse
// @Router /analytics/top-recipients [get]
func (h *AnalyticsHandler) TopRecipients(c *gin.Context) {
	limit := parseLimit(c)

	rms, err := h.analyticsUseCase.TopRecipients(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTopRecipientRMs(rms))
}

// @Summary Impact report
// @Description Summary and monthly trends for a date range
// @Tags analytics
// @Security BearerAuth
// @Produce json
// @Param startDate query string true "Range start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string true "Range end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} resdto.ImpactReportResponse
// @Failure 400 {object} map[string]string
// @Router /analytics/impact-report [get]
func (h *AnalyticsHandler) ImpactReport(c *gin.Context) {
	start, err := parseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate"})
		return
	}
	end, err := parseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate"})
		return
	}

	rm, err := h.analyticsUseCase.ImpactReport(c.Request.Context(), start, end)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resdto.FromImpactReportRM(rm))
}

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		return 10
	}
	return limit
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
