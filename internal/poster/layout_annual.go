package poster

// Annual report geometry. Fixed width; height varies only with the
// number of extra fact lines.
const (
	annualWidth       = 1080
	annualMargin      = 60
	monthLabelWidth   = 65
	monthLabelHeight  = 45
	annualPosterW     = 170
	annualPosterH     = 238
	annualPosterGap   = 25
	monthRowHeight    = annualPosterH + 55
	monthGap          = 30
	annualHeaderH     = 180
	summaryHeight     = 400
	annualFooterH     = 120
	factLineHeight    = 35
	factsTitleHeight  = 60
	summaryCardWidth  = 200
	summaryCardHeight = 80
	summaryCardGap    = 20
)

// AnnualLayout is the computed annual report geometry.
type AnnualLayout struct {
	Width  int
	Height int

	ContentY  int
	PostersX  int
	SummaryY  int
	FactsY    int
	FooterY   int
	FactLines int
}

// NewAnnualLayout computes the annual geometry for the given number of
// extra fact lines. Height grows strictly with factLines.
func NewAnnualLayout(factLines int) AnnualLayout {
	monthsHeight := 12*monthRowHeight + 11*monthGap
	extraHeight := factsTitleHeight + factLines*factLineHeight

	l := AnnualLayout{
		Width:     annualWidth,
		FactLines: factLines,
	}
	l.ContentY = annualMargin + 150
	l.PostersX = annualMargin + monthLabelWidth + 35
	l.SummaryY = l.ContentY + monthsHeight + 50
	l.FactsY = l.SummaryY + 300
	l.Height = annualHeaderH + monthsHeight + summaryHeight + extraHeight + annualFooterH + 2*annualMargin
	l.FooterY = l.Height - annualFooterH
	return l
}

// MonthRowY returns the top of the month-th row (0-based).
func (l AnnualLayout) MonthRowY(month int) int {
	return l.ContentY + month*(monthRowHeight+monthGap)
}

// PosterX returns the left edge of the slot-th poster in a month row.
func (l AnnualLayout) PosterX(slot int) int {
	return l.PostersX + slot*(annualPosterW+annualPosterGap)
}
