package poster

// Weekly poster geometry. All values are pixels on a fixed-width canvas;
// only the calendar section grows with content, so total height is a
// pure function of the number of calendar rows.
const (
	weeklyWidth   = 1080
	weeklyMarginX = 40
	weeklyTopPad  = 50
	columnGap     = 30

	headerHeight   = 130
	colTitleHeight = 45

	cardGap    = 40
	cardRadius = 12

	calendarTitleHeight = 60
	calItemWidth        = 140
	calItemHeight       = 240
	calPosterWidth      = 120
	calPosterHeight     = 180
	calItemGap          = 15
	calDateWidth        = 80
	calRowGap           = 25
	calendarBottomPad   = 30

	contentPadding = 30
	sectionGap     = 50
	footerHeight   = 70
)

// Layout is the computed weekly poster geometry. Composition reads
// positions from here and never re-derives them.
type Layout struct {
	Width  int
	Height int

	// Category columns, left to right: movies, tv, anime.
	ColWidth int
	ColX     [3]int

	CardWidth  int
	CardHeight int

	HeaderY   int
	ColTitleY int
	CardsY    int

	CalendarY      int
	CalendarRows   int
	CalendarItemsX int
	// RowCapacity is how many calendar entries fit beside the date label.
	RowCapacity int

	FooterY int
}

// NewLayout computes the weekly geometry for the given number of
// calendar rows. Height grows strictly with rows.
func NewLayout(calendarRows int) Layout {
	colWidth := (weeklyWidth - 2*weeklyMarginX - 2*columnGap) / 3
	cardWidth := colWidth
	cardHeight := int(float64(cardWidth) * 1.4)

	cardAreaHeight := 3*cardHeight + 2*cardGap
	calendarAreaHeight := calendarTitleHeight + calendarRows*(calItemHeight+calRowGap) + calendarBottomPad

	l := Layout{
		Width:        weeklyWidth,
		ColWidth:     colWidth,
		CardWidth:    cardWidth,
		CardHeight:   cardHeight,
		CalendarRows: calendarRows,
	}
	for i := range l.ColX {
		l.ColX[i] = weeklyMarginX + i*(colWidth+columnGap)
	}

	l.HeaderY = weeklyTopPad
	l.ColTitleY = l.HeaderY + headerHeight
	l.CardsY = l.ColTitleY + colTitleHeight
	l.CalendarY = l.CardsY + cardAreaHeight + contentPadding + sectionGap
	l.FooterY = l.CalendarY + calendarAreaHeight
	l.Height = l.FooterY + footerHeight

	l.CalendarItemsX = weeklyMarginX + calDateWidth + 20
	l.RowCapacity = (l.Width - l.CalendarItemsX - weeklyMarginX) / (calItemWidth + calItemGap)
	return l
}

// CardY returns the top of the rank-th card slot (0-based).
func (l Layout) CardY(rank int) int {
	return l.CardsY + rank*(l.CardHeight+cardGap)
}

// CalendarRowY returns the top of the i-th calendar row (0-based).
func (l Layout) CalendarRowY(i int) int {
	return l.CalendarY + calendarTitleHeight + i*(calItemHeight+calRowGap)
}
