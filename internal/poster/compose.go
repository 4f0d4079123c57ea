package poster

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// ImageSource supplies decoded poster artwork. A nil image means no
// artwork is available and the slot renders as a placeholder.
type ImageSource interface {
	RankedPoster(ctx context.Context, entry domain.RankedEntry, category domain.Category) image.Image
	ShowPoster(ctx context.Context, name string, itemType domain.ItemType) image.Image
	CalendarPoster(ctx context.Context, posterPath string) image.Image
}

// Light theme palette for the weekly poster.
var (
	weeklyPrimary   = color.RGBA{R: 60, G: 60, B: 65, A: 255}
	weeklySecondary = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	weeklyTertiary  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	weeklyEmptyBG   = color.RGBA{R: 220, G: 220, B: 225, A: 255}
	weeklyEmptyText = color.RGBA{R: 170, G: 170, B: 180, A: 255}

	categoryPlaceholder = map[domain.Category]color.RGBA{
		domain.CategoryMovie: {R: 145, G: 150, B: 160, A: 255},
		domain.CategoryTV:    {R: 140, G: 155, B: 150, A: 255},
		domain.CategoryAnime: {R: 155, G: 145, B: 165, A: 255},
	}
)

type categoryColumn struct {
	title    string
	subtitle string
	category domain.Category
	entries  []domain.RankedEntry
}

// composeWeekly renders the weekly report onto a fresh canvas sized by l.
func composeWeekly(ctx context.Context, l Layout, rep *domain.WeeklyReport, days []domain.CalendarDay, imgs ImageSource, fonts *Fonts, site string) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	fillGradient(canvas, func(t float64) color.RGBA {
		return color.RGBA{
			R: uint8(250 - 35*t),
			G: uint8(240 - 50*t),
			B: uint8(235 - 25*t),
			A: 255,
		}
	})

	drawWeeklyHeader(canvas, l, rep, fonts)

	columns := []categoryColumn{
		{title: "电影", subtitle: "Movie", category: domain.CategoryMovie, entries: rep.Movies},
		{title: "电视剧", subtitle: "TV Series", category: domain.CategoryTV, entries: rep.TV},
		{title: "番剧", subtitle: "Anime", category: domain.CategoryAnime, entries: rep.Anime},
	}
	for i, col := range columns {
		drawCategoryColumn(ctx, canvas, l, i, col, imgs, fonts)
	}

	drawCalendar(ctx, canvas, l, days, imgs, fonts)
	drawWeeklyFooter(canvas, l, rep, fonts, site)
	return canvas
}

func drawWeeklyHeader(canvas *image.RGBA, l Layout, rep *domain.WeeklyReport, fonts *Fonts) {
	drawText(canvas, fonts.Bold(48), weeklyMarginX, l.HeaderY, weeklyPrimary, "播放周榜")
	drawText(canvas, fonts.Regular(16), weeklyMarginX, l.HeaderY+64, weeklyTertiary, "Weekly Playback Statistics")

	period := rep.Window.StartDate() + " ~ " + rep.Window.EndDate()
	face := fonts.Regular(16)
	drawText(canvas, face, l.Width-weeklyMarginX-textWidth(face, period), l.HeaderY+64, weeklySecondary, period)
}

func drawCategoryColumn(ctx context.Context, canvas *image.RGBA, l Layout, col int, c categoryColumn, imgs ImageSource, fonts *Fonts) {
	colX := l.ColX[col]
	center := colX + l.ColWidth/2

	title := c.title + " / " + c.subtitle
	drawTextCentered(canvas, fonts.Bold(20), center, l.ColTitleY+4, weeklyPrimary, title)

	for slot := 0; slot < 3; slot++ {
		cardY := l.CardY(slot)
		rect := image.Rect(colX, cardY, colX+l.CardWidth, cardY+l.CardHeight)

		if slot >= len(c.entries) {
			fillRounded(canvas, rect, cardRadius, weeklyEmptyBG)
			if slot == 0 && len(c.entries) == 0 {
				drawTextCentered(canvas, fonts.Regular(16), center, cardY+l.CardHeight/2-10, weeklyEmptyText, "本周暂无播放记录")
			}
			continue
		}

		entry := c.entries[slot]
		if img := imgs.RankedPoster(ctx, entry, c.category); img != nil {
			pasteRounded(canvas, img, rect, cardRadius)
		} else {
			fillRounded(canvas, rect, cardRadius, categoryPlaceholder[c.category])
			name := clampLabel(entry.Name, 12, 34, "...")
			drawTextCentered(canvas, fonts.Regular(16), center, cardY+l.CardHeight/2-10, color.White, name)
		}
		drawText(canvas, fonts.Bold(26), colX+12, cardY+10, color.White, fmt.Sprintf("%d", entry.Rank))

		label := clampLabel(entry.Name, 30, 38, "...")
		drawTextCentered(canvas, fonts.Regular(15), center, cardY+l.CardHeight+6, weeklyPrimary, label)
		sub := fmt.Sprintf("%s · %d 次", domain.FormatDurationHM(entry.TotalDuration), entry.PlayCount)
		drawTextCentered(canvas, fonts.Regular(13), center, cardY+l.CardHeight+26, weeklySecondary, sub)
	}
}

func drawCalendar(ctx context.Context, canvas *image.RGBA, l Layout, days []domain.CalendarDay, imgs ImageSource, fonts *Fonts) {
	if l.CalendarRows == 0 {
		return
	}
	titleFace := fonts.Bold(26)
	drawText(canvas, titleFace, weeklyMarginX, l.CalendarY, weeklyPrimary, "本周放送")
	drawText(canvas, fonts.Regular(14), weeklyMarginX+textWidth(titleFace, "本周放送")+14, l.CalendarY+12, weeklyTertiary, "This Week's Airing")

	for i, day := range days {
		if i >= l.CalendarRows {
			break
		}
		rowY := l.CalendarRowY(i)
		dateCenter := weeklyMarginX + calDateWidth/2
		dateY := rowY + calPosterHeight/2 - 24
		drawTextCentered(canvas, fonts.Bold(18), dateCenter, dateY, weeklyPrimary, day.Date.Format("01-02"))
		drawTextCentered(canvas, fonts.Regular(14), dateCenter, dateY+26, weeklySecondary, day.Weekday)

		shown := len(day.Entries)
		overflow := 0
		if shown > l.RowCapacity {
			shown = l.RowCapacity - 1
			overflow = len(day.Entries) - shown
		}
		for j := 0; j < shown; j++ {
			itemX := l.CalendarItemsX + j*(calItemWidth+calItemGap)
			drawCalendarItem(ctx, canvas, itemX, rowY, day.Entries[j], imgs, fonts)
		}
		if overflow > 0 {
			slotX := l.CalendarItemsX + shown*(calItemWidth+calItemGap)
			drawTextCentered(canvas, fonts.Bold(22), slotX+calPosterWidth/2, rowY+calPosterHeight/2-12, weeklyTertiary, fmt.Sprintf("+%d", overflow))
		}
	}
}

func drawCalendarItem(ctx context.Context, canvas *image.RGBA, x, y int, e domain.CalendarEntry, imgs ImageSource, fonts *Fonts) {
	rect := image.Rect(x, y, x+calPosterWidth, y+calPosterHeight)
	if img := imgs.CalendarPoster(ctx, e.PosterPath); img != nil {
		pasteRounded(canvas, img, rect, 8)
	} else {
		fillRounded(canvas, rect, 8, weeklyEmptyBG)
	}

	center := x + calPosterWidth/2
	name := clampLabel(e.Name, 10, 16, "..")
	drawTextCentered(canvas, fonts.Regular(13), center, y+calPosterHeight+6, weeklyPrimary, name)

	sub := "电影"
	if !e.Movie {
		sub = fmt.Sprintf("S%dE%d", e.Season, e.Episode)
	}
	drawTextCentered(canvas, fonts.Regular(12), center, y+calPosterHeight+26, weeklySecondary, sub)
}

func drawWeeklyFooter(canvas *image.RGBA, l Layout, rep *domain.WeeklyReport, fonts *Fonts, site string) {
	face := fonts.Regular(14)
	year, week := rep.Window.End.ISOWeek()
	left := fmt.Sprintf("Week %d · %d", week, year)
	drawText(canvas, face, weeklyMarginX, l.FooterY+22, weeklyTertiary, left)

	right := "Jellyfin Media · " + site
	drawText(canvas, face, l.Width-weeklyMarginX-textWidth(face, right), l.FooterY+22, weeklyTertiary, right)
}

// clampLabel enforces both the character budget and a display-cell cap,
// so fullwidth titles never spill past their pixel area.
func clampLabel(s string, budget, cells int, marker string) string {
	out := Truncate(s, budget, marker)
	if DisplayCells(out) <= cells+len(marker) {
		return out
	}
	return FitCells(s, cells, marker)
}
