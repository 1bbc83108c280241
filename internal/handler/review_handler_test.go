package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/splycehq/splyce-backend/internal/domain"
	"github.com/splycehq/splyce-backend/internal/model"
)

func newReviewRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewReviewHandler(slog.Default())
	router.POST("/api/review-receipt", h.ReviewReceipt)
	return router
}

func reviewRequestBody(edits ...model.ReviewEdit) model.ReviewReceiptRequest {
	return model.ReviewReceiptRequest{
		Receipt: domain.NormalizedReceipt{
			RestaurantName: "Mama's Pizza",
			Items: []domain.ReceiptItem{
				{ID: "1", Name: "Margherita", Price: 18.00, Quantity: 1},
				{ID: "2", Name: "Salad", Price: 12.00, Quantity: 1},
			},
			Totals: domain.Totals{Subtotal: 30.00, Tax: 2.40, Total: 32.40},
		},
		Edits: edits,
	}
}

func TestReviewReceiptRecomputesTotals(t *testing.T) {
	router := newReviewRouter()

	w := postJSON(t, router, "/api/review-receipt", reviewRequestBody(
		model.ReviewEdit{Op: "addItem", Name: "Soda", Price: "10"},
		model.ReviewEdit{Op: "setBaseCharge", Key: "tax", Amount: "3.00"},
		model.ReviewEdit{Op: "addCharge", Label: "Coupon", Amount: "5", Kind: domain.ChargeDiscount},
	))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp model.ReviewReceiptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}

	if len(resp.Receipt.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(resp.Receipt.Items))
	}
	totals := resp.Receipt.Totals
	if math.Abs(totals.Subtotal-40.00) > 0.001 {
		t.Errorf("subtotal = %.2f, want 40.00", totals.Subtotal)
	}
	// 40 subtotal + 3 tax - 5 discount.
	if math.Abs(totals.Total-38.00) > 0.001 {
		t.Errorf("total = %.2f, want 38.00", totals.Total)
	}
	if math.Abs(totals.TaxRate-7.5) > 0.001 {
		t.Errorf("tax rate = %.2f, want 7.5", totals.TaxRate)
	}
	if len(resp.ExtraCharges) != 1 || resp.ExtraCharges[0].Kind != domain.ChargeDiscount {
		t.Errorf("extra charges = %+v", resp.ExtraCharges)
	}
}

func TestReviewReceiptRemoveItem(t *testing.T) {
	router := newReviewRouter()

	w := postJSON(t, router, "/api/review-receipt", reviewRequestBody(
		model.ReviewEdit{Op: "removeItem", ID: "2"},
	))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp model.ReviewReceiptResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Receipt.Items) != 1 || resp.Receipt.Items[0].ID != "1" {
		t.Errorf("items after removal = %+v", resp.Receipt.Items)
	}
	if math.Abs(resp.Receipt.Totals.Subtotal-18.00) > 0.001 {
		t.Errorf("subtotal = %.2f, want 18.00", resp.Receipt.Totals.Subtotal)
	}
}

func TestReviewReceiptRejectsBadEdits(t *testing.T) {
	router := newReviewRouter()

	// The failing edit's index is named in the error detail.
	w := postJSON(t, router, "/api/review-receipt", reviewRequestBody(
		model.ReviewEdit{Op: "setBaseCharge", Key: "tax", Amount: "3.00"},
		model.ReviewEdit{Op: "updateItem", ID: "missing", Price: "5"},
	))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "edits[1]") {
		t.Errorf("body = %s, want edits[1] detail", w.Body.String())
	}

	w = postJSON(t, router, "/api/review-receipt", reviewRequestBody(
		model.ReviewEdit{Op: "teleport"},
	))
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown op status = %d, want 400", w.Code)
	}

	empty := reviewRequestBody()
	empty.Receipt.Items = nil
	if w := postJSON(t, router, "/api/review-receipt", empty); w.Code != http.StatusBadRequest {
		t.Errorf("empty receipt status = %d, want 400", w.Code)
	}
}
