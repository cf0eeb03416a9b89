package sync

import (
	"github.com/gin-gonic/gin"

	"github.com/MrCamelHub/Trade-in/pkg/ginx"
)

// checkPreviewLimit max candidates echoed in a check response.
const checkPreviewLimit = 10

// CheckInvoices lists orders needing an invoice update (read-only)
// GET /invoice/check
func (h *Handler) CheckInvoices(c *gin.Context) {
	candidates, skipped := h.syncService.OrdersNeedingUpdate(c.Request.Context())

	ginx.Success(c, gin.H{
		"candidates_count": len(candidates),
		"candidates":       toCandidateViews(candidates, checkPreviewLimit),
		"skipped_counts":   skipped,
	})
}

// CheckDeliveries lists orders needing delivery completion (read-only)
// GET /delivery/check
func (h *Handler) CheckDeliveries(c *gin.Context) {
	candidates, skipped := h.syncService.OrdersNeedingDeliveryCompletion(c.Request.Context())

	ginx.Success(c, gin.H{
		"candidates_count": len(candidates),
		"candidates":       toCandidateViews(candidates, checkPreviewLimit),
		"skipped_counts":   skipped,
	})
}
