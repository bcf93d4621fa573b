package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"hampernest-be/internal/logger"
	"hampernest-be/internal/order"
	"hampernest-be/internal/payment"
	"hampernest-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WebhookHandler receives asynchronous payment notifications. The gateway
// confirms the invoice state before any order is touched, so a forged body
// cannot mark an order paid.
type WebhookHandler struct {
	Orders  order.Service
	Gateway payment.Gateway
}

type paymentWebhookReq struct {
	ExternalID string `json:"external_id"`
	Status     string `json:"status"`
}

func (h *WebhookHandler) Register(r chi.Router) {
	r.Post("/webhooks/payment", h.paymentNotification)
}

func (h *WebhookHandler) paymentNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	var req paymentWebhookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ExternalID == "" {
		utils.WriteJSONError(w, "invalid payload", http.StatusBadRequest)
		return
	}

	invoice, err := h.Gateway.GetInvoice(ctx, req.ExternalID)
	if err != nil {
		log.Warn("webhook for unknown invoice", zap.String("external_id", req.ExternalID))
		utils.WriteJSONError(w, "unknown invoice", http.StatusNotFound)
		return
	}

	switch invoice.Status {
	case payment.InvoicePaid:
		err = h.Orders.MarkAsPaid(ctx, invoice.ExternalID)
	case payment.InvoiceFailed:
		err = h.Orders.MarkAsFailed(ctx, invoice.ExternalID)
	default:
		// Still pending; nothing to record yet.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Error("failed to apply payment notification",
			zap.String("external_id", req.ExternalID),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "failed to apply notification", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
