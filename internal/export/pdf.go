package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SortRoom/internal/model"
	"github.com/piwi3910/SortRoom/internal/objects"
	"github.com/piwi3910/SortRoom/internal/room"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	planQRSize   = 30.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF generates a floor plan PDF: the room with side lengths and all
// placed objects on the first page, a QR code carrying the plan summary,
// and an object list on the second page.
func ExportPDF(path string, plan model.Plan, scale float64) error {
	if scale <= 0 {
		return errInvalidScale
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	if err := renderPlanPage(pdf, plan, scale); err != nil {
		return err
	}

	pdf.AddPage()
	renderObjectListPage(pdf, plan, scale)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room outline and objects on the current page.
func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan, scale float64) error {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := plan.Name
	if title == "" {
		title = "Avfallsrom"
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	// Stats line
	summary := Summarize(plan, scale)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Area: %.2f m\xb2 | Perimeter: %.2f m | Bins: %d | Doors: %d | Other objects: %d",
		summary.AreaM2, room.Perimeter(plan.Room, scale), summary.Bins, summary.Doors, summary.Others)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Fit the room bounding box (plus room for door depth) into the drawing area.
	bounds := plan.Room.BoundingRect()
	for _, o := range plan.AllObjects() {
		bounds = union(bounds, o.Box())
	}
	drawWidth := pageWidth - marginLeft - marginRight - planQRSize - 10
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	s := math.Min(drawWidth/math.Max(bounds.Width, 1), drawHeight/math.Max(bounds.Height, 1))
	offsetX := marginLeft + (drawWidth-bounds.Width*s)/2
	offsetY := drawAreaTop
	toPage := func(p model.Point) (float64, float64) {
		return offsetX + (p.X-bounds.X)*s, offsetY + (p.Y-bounds.Y)*s
	}

	// Room floor
	var poly []fpdf.PointType
	for _, p := range plan.Room {
		x, y := toPage(p)
		poly = append(poly, fpdf.PointType{X: x, Y: y})
	}
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(40, 40, 40)
	pdf.SetLineWidth(0.8)
	pdf.Polygon(poly, "FD")

	// Side lengths at the edge midpoints
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	for _, m := range room.SideMetrics(plan.Room, scale) {
		label := fmt.Sprintf("%.2f m", m.Length)
		x, y := toPage(m.Midpoint)
		w := pdf.GetStringWidth(label)
		pdf.TransformBegin()
		pdf.TransformRotate(-uprightAngle(m.AngleDegrees), x, y)
		pdf.SetXY(x-w/2, y-4.5)
		pdf.CellFormat(w, 4, label, "", 0, "C", false, 0, "")
		pdf.TransformEnd()
	}
	pdf.SetTextColor(0, 0, 0)

	// Objects
	for _, o := range plan.AllObjects() {
		x, y := toPage(o.Position())
		w, h := o.Width*s, o.Height*s
		col := objectColor(o)
		pdf.SetFillColor(col.R, col.G, col.B)
		if objects.InPlace(o, plan.Room) {
			pdf.SetDrawColor(30, 30, 30)
		} else {
			pdf.SetDrawColor(220, 0, 0)
		}
		pdf.SetLineWidth(0.3)
		pdf.Rect(x, y, w, h, "FD")

		// Front edge
		a, b := o.FrontEdge()
		ax, ay := toPage(a)
		bx, by := toPage(b)
		pdf.SetLineWidth(0.9)
		pdf.SetDrawColor(20, 20, 20)
		pdf.Line(ax, ay, bx, by)

		if w > 12 && h > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(w, h))
			label := tr(o.Name)
			for len(label) > 1 && pdf.GetStringWidth(label) > w-2 {
				label = label[:len(label)-1]
			}
			lw := pdf.GetStringWidth(label)
			pdf.SetXY(x+(w-lw)/2, y+h/2-2)
			pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
		}
	}

	// QR code with the plan summary
	if err := drawSummaryQR(pdf, summary, pageWidth-marginRight-planQRSize, drawAreaTop); err != nil {
		return err
	}

	drawLegend(pdf, plan, pageHeight-marginBottom-legendHeight+5)
	return nil
}

// uprightAngle maps an edge angle to a text angle that never reads upside down.
func uprightAngle(deg float64) float64 {
	for deg > 90 {
		deg -= 180
	}
	for deg < -90 {
		deg += 180
	}
	return deg
}

func union(a, b model.Rect) model.Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return model.Rect{
		X:      x,
		Y:      y,
		Width:  math.Max(a.Right(), b.Right()) - x,
		Height: math.Max(a.Bottom(), b.Bottom()) - y,
	}
}

// drawSummaryQR places a QR code encoding the plan summary as JSON.
func drawSummaryQR(pdf *fpdf.Fpdf, summary PlanSummary, x, y float64) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal plan summary: %w", err)
	}
	png, err := qrcode.Encode(string(data), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := "qr_plan_" + summary.ID
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, planQRSize, planQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(x, y+planQRSize+1)
	pdf.CellFormat(planQRSize, 3, "Plan "+summary.ID, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// drawLegend renders one color swatch per distinct object name.
func drawLegend(pdf *fpdf.Fpdf, plan model.Plan, startY float64) {
	objs := plan.AllObjects()
	if len(objs) == 0 {
		return
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Objects:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	seen := map[string]bool{}
	for _, o := range objs {
		key := o.Kind.String() + "/" + o.Name
		if seen[key] {
			continue
		}
		seen[key] = true

		label := tr(o.Name)
		labelW := pdf.GetStringWidth(label) + 6
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		col := objectColor(o)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
}

// renderObjectListPage draws a table of all objects in meters.
func renderObjectListPage(pdf *fpdf.Fpdf, plan model.Plan, scale float64) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Object List", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	colWidths := []float64{25, 15, 70, 30, 30, 30, 30, 25, 12}
	headers := []string{"Kind", "ID", "Name", "X (m)", "Y (m)", "Width (m)", "Depth (m)", "Rotation", "In"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, r := range ObjectRows(plan, scale) {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		inside := "yes"
		if !r.Inside {
			inside = "NO"
		}
		rowData := []string{
			r.Kind.String(),
			fmt.Sprintf("%d", r.ID),
			tr(r.Name),
			fmt.Sprintf("%.2f", r.X),
			fmt.Sprintf("%.2f", r.Y),
			fmt.Sprintf("%.2f", r.Width),
			fmt.Sprintf("%.2f", r.Depth),
			fmt.Sprintf("%d\xb0", r.Rotation),
			inside,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by SortRoom on %s", time.Now().Format("2006-01-02"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 8
	case minDim > 10:
		return 7
	default:
		return 6
	}
}
