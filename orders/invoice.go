package orders

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"emporia/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// OrderInvoice renders one of the caller's orders as a downloadable PDF
// receipt with a QR code of the order number.
func OrderInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.SendError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := FetchOrder(ctx, userID, ps.ByName("orderId"))
	if err != nil {
		if err == ErrOrderNotFound {
			utils.SendError(w, http.StatusNotFound, "Order not found", nil)
			return
		}
		utils.SendError(w, http.StatusInternalServerError, "Failed to get order", err)
		return
	}

	qrPNG, err := qrcode.Encode(order.OrderNumber, qrcode.Medium, 256)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate QR code", err)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order Number: %s", order.OrderNumber))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("Jan 2, 2006")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Ship To: %s, %s, %s %s", order.ShippingInfo.FullName,
		order.ShippingInfo.City, order.ShippingInfo.State, order.ShippingInfo.ZipCode))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Estimated Delivery: %s", order.EstimatedDelivery.Format("Jan 2, 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(80, 8, "Item")
	pdf.Cell(30, 8, "Qty")
	pdf.Cell(40, 8, "Price")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, line := range order.Items {
		pdf.Cell(80, 8, line.ItemID)
		pdf.Cell(30, 8, fmt.Sprintf("%d", line.Quantity))
		pdf.Cell(40, 8, fmt.Sprintf("%.2f", line.Price))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	s := order.OrderSummary
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: %.2f", s.Subtotal))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Shipping (%s): %.2f", order.ShippingMethod, s.ShippingCost))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: %.2f", s.Tax))
	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", s.Total))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 30, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate PDF", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+order.OrderNumber+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
