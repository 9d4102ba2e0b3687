package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/SortRoom/internal/model"
)

// LabelInfo holds the data encoded into each bin label's QR code.
type LabelInfo struct {
	PlanID   string  `json:"plan"`
	PlanName string  `json:"plan_name"`
	BinID    int     `json:"bin"`
	Fraction string  `json:"fraction"`
	X        float64 `json:"x_m"`
	Y        float64 `json:"y_m"`
	Width    float64 `json:"width_m"`
	Depth    float64 `json:"depth_m"`
	Color    string  `json:"color,omitempty"`
}

// Label layout constants for Avery 3424-compatible labels (2 columns, 4 rows on A4).
const (
	labelMarginTop  = 13.0 // mm
	labelMarginLeft = 10.0 // mm
	labelWidth      = 95.0 // mm per label
	labelHeight     = 67.0 // mm per label
	labelCols       = 2
	labelRows       = 4
	labelsPerPage   = labelCols * labelRows
	qrSize          = 35.0 // QR code size in mm
	labelPadding    = 4.0  // mm internal padding
	colorBandHeight = 8.0  // mm
)

// ExportLabels generates a PDF of bin signs, one per placed bin. Each sign
// shows the waste fraction in the bin's color and a QR code encoding the
// bin's place in the plan as JSON.
func ExportLabels(path string, plan model.Plan, scale float64) error {
	if scale <= 0 {
		return errInvalidScale
	}
	labels := CollectLabelInfos(plan, scale)
	if len(labels) == 0 {
		return errors.New("no bins placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Fraction, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single bin sign at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Color band in the fraction's color
	col, ok := parseHexColor(info.Color)
	if !ok {
		col = kindColors[model.KindBin]
	}
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.Rect(x, y, labelWidth, colorBandHeight, "F")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PlanID, info.BinID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + colorBandHeight + (labelHeight-colorBandHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Fraction name (bold, large)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	fraction := tr(info.Fraction)
	if pdf.GetStringWidth(fraction) > textW {
		pdf.SetFont("Helvetica", "B", 11)
	}
	pdf.SetXY(textX, y+colorBandHeight+labelPadding)
	pdf.MultiCell(textW, 6, fraction, "", "L", false)

	// Size and position
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelHeight-labelPadding-8)
	pdf.CellFormat(textW, 4, fmt.Sprintf("%.2f x %.2f m", info.Width, info.Depth), "", 2, "L", false, 0, "")
	pdf.SetX(textX)
	pdf.CellFormat(textW, 4, fmt.Sprintf("Bin %d @ (%.2f, %.2f) m", info.BinID, info.X, info.Y), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts one label per bin, in placement order.
func CollectLabelInfos(plan model.Plan, scale float64) []LabelInfo {
	f := newFrame(plan, scale)
	var labels []LabelInfo
	for _, b := range plan.Bins {
		p := f.point(b.Position())
		labels = append(labels, LabelInfo{
			PlanID:   plan.ID,
			PlanName: plan.Name,
			BinID:    b.ID,
			Fraction: b.Name,
			X:        p.X,
			Y:        p.Y,
			Width:    f.length(b.Width),
			Depth:    f.length(b.Height),
			Color:    b.Color,
		})
	}
	return labels
}
