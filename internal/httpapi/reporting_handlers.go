package httpapi

import (
	"net/http"
	"time"

	"sautiai-dashboard/internal/reporting"

	"github.com/gin-gonic/gin"
)

// parseRange reads ?from / ?to (RFC 3339 or YYYY-MM-DD). Missing values
// default to the trailing 30 days.
func parseRange(c *gin.Context) (reporting.TimeRange, bool) {
	parse := func(raw string) (time.Time, error) {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t, nil
		}
		return time.ParseInLocation("2006-01-02", raw, time.UTC)
	}

	now := time.Now().UTC()
	tr := reporting.TimeRange{From: now.AddDate(0, 0, -30), To: now}

	if raw := c.Query("from"); raw != "" {
		t, err := parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339 or YYYY-MM-DD"})
			return reporting.TimeRange{}, false
		}
		tr.From = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339 or YYYY-MM-DD"})
			return reporting.TimeRange{}, false
		}
		tr.To = t
	}
	return tr, true
}

func (h Handlers) CallsReport(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	tr, ok := parseRange(c)
	if !ok {
		return
	}
	out, err := h.Reporting.CallsSummary(c.Request.Context(), reporting.CallsSummaryRequest{
		WorkspaceID: workspaceID,
		Range:       tr,
		CampaignID:  c.Query("campaign_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreditSpendReport(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	tr, ok := parseRange(c)
	if !ok {
		return
	}
	out, err := h.Reporting.CreditSpend(c.Request.Context(), reporting.CreditSpendRequest{
		WorkspaceID: workspaceID,
		Range:       tr,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) RecoveryReport(c *gin.Context) {
	_, workspaceID, _, ok := identity(c)
	if !ok {
		return
	}
	tr, ok := parseRange(c)
	if !ok {
		return
	}
	out, err := h.Reporting.RecoveryMetrics(c.Request.Context(), reporting.RecoveryMetricsRequest{
		WorkspaceID: workspaceID,
		Range:       tr,
		CampaignID:  c.Query("campaign_id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
