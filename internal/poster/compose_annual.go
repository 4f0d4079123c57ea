package poster

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// Dark theme palette for the annual report.
var (
	annualWhite   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	annualGray    = color.RGBA{R: 140, G: 140, B: 155, A: 255}
	annualLight   = color.RGBA{R: 190, G: 190, B: 200, A: 255}
	annualAccent  = color.RGBA{R: 200, G: 170, B: 120, A: 255}
	annualEmptyBG = color.RGBA{R: 40, G: 40, B: 55, A: 255}
	annualSlateBG = color.RGBA{R: 35, G: 35, B: 50, A: 255}
)

var monthAbbrev = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

type summaryCard struct {
	title string
	value string
	note  string
}

// composeAnnual renders the annual report onto a fresh canvas sized by l.
func composeAnnual(ctx context.Context, l AnnualLayout, rep *domain.AnnualReport, imgs ImageSource, fonts *Fonts, site string) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	fillGradient(canvas, func(t float64) color.RGBA {
		return color.RGBA{
			R: uint8(18 + 8*t),
			G: uint8(18 + 12*t),
			B: uint8(35 + 18*t),
			A: 255,
		}
	})

	drawAnnualHeader(canvas, l, rep.Year, fonts)
	for m := 0; m < 12; m++ {
		drawMonthRow(ctx, canvas, l, m, rep.Monthly[m], imgs, fonts)
	}
	drawAnnualSummary(canvas, l, rep.Summary, fonts)
	drawAnnualFacts(canvas, l, rep.ExtraFacts, fonts)
	drawAnnualFooter(canvas, l, rep.Year, fonts, site)
	return canvas
}

func drawAnnualHeader(canvas *image.RGBA, l AnnualLayout, year int, fonts *Fonts) {
	cx := l.Width / 2
	drawTextCentered(canvas, fonts.Bold(44), cx, annualMargin, annualAccent, fmt.Sprintf("%d", year))
	drawTextCentered(canvas, fonts.Bold(22), cx, annualMargin+56, annualWhite, "年度观影报告")
	drawTextCentered(canvas, fonts.Regular(13), cx, annualMargin+86, annualGray, "Annual Playback Report")

	dividerY := annualMargin + 112
	for x := cx - 100; x <= cx+100; x++ {
		canvas.SetRGBA(x, dividerY, annualAccent)
	}
}

func drawMonthRow(ctx context.Context, canvas *image.RGBA, l AnnualLayout, month int, top domain.MonthlyTop, imgs ImageSource, fonts *Fonts) {
	rowY := l.MonthRowY(month)

	labelRect := image.Rect(annualMargin, rowY, annualMargin+monthLabelWidth, rowY+monthLabelHeight)
	fillRounded(canvas, labelRect, 8, annualSlateBG)
	labelCX := annualMargin + monthLabelWidth/2
	drawTextCentered(canvas, fonts.Bold(16), labelCX, rowY+4, annualWhite, fmt.Sprintf("%d月", month+1))
	drawTextCentered(canvas, fonts.Regular(10), labelCX, rowY+26, annualGray, monthAbbrev[month])

	for slot := 0; slot < 3; slot++ {
		x := l.PosterX(slot)
		rect := image.Rect(x, rowY, x+annualPosterW, rowY+annualPosterH)

		if slot >= len(top.Entries) {
			fillRounded(canvas, rect, 10, annualEmptyBG)
			if slot == 0 && len(top.Entries) == 0 {
				drawTextCentered(canvas, fonts.Regular(14), x+annualPosterW/2, rowY+annualPosterH/2-10, annualGray, "本月暂无播放记录")
			}
			continue
		}

		entry := top.Entries[slot]
		if img := imgs.ShowPoster(ctx, entry.Name, entry.ItemType); img != nil {
			pasteRounded(canvas, img, rect, 10)
		} else {
			fillRounded(canvas, rect, 10, annualSlateBG)
			drawTextCentered(canvas, fonts.Regular(14), x+annualPosterW/2, rowY+annualPosterH/2-10, annualLight, clampLabel(entry.Name, 12, 22, "..."))
		}
		drawText(canvas, fonts.Bold(18), x+8, rowY+8, annualAccent, fmt.Sprintf("#%d", slot+1))

		name := clampLabel(entry.Name, 12, 22, "...")
		drawText(canvas, fonts.Regular(14), x, rowY+annualPosterH+8, annualWhite, name)
		sub := fmt.Sprintf("%s · %d 次", domain.FormatDurationHM(entry.TotalDuration), entry.PlayCount)
		drawText(canvas, fonts.Regular(12), x, rowY+annualPosterH+30, annualGray, sub)
	}
}

func drawAnnualSummary(canvas *image.RGBA, l AnnualLayout, s domain.AnnualSummary, fonts *Fonts) {
	cx := l.Width / 2
	drawTextCentered(canvas, fonts.Bold(26), cx, l.SummaryY, annualWhite, "年度汇总")
	drawTextCentered(canvas, fonts.Regular(13), cx, l.SummaryY+42, annualGray, "统计周期："+s.StatsPeriod)

	row1 := []summaryCard{
		{title: "年度总播放时长", value: domain.FormatDurationHM(s.TotalDuration)},
		{title: "观看作品数", value: fmt.Sprintf("%d 部", s.TotalItems)},
	}
	drawSummaryRow(canvas, l, row1, l.SummaryY+90, fonts)

	var row2 []summaryCard
	if s.TopShow != nil {
		row2 = append(row2, summaryCard{title: "年度观看最多", value: s.TopShow.Name})
	}
	if s.TopUser != nil {
		row2 = append(row2, summaryCard{
			title: "年度观看最长用户",
			value: s.TopUser.Name,
			note:  domain.FormatDurationHM(s.TopUser.TotalDuration),
		})
	}
	if s.TopClient != nil {
		row2 = append(row2, summaryCard{title: "最常用客户端", value: s.TopClient.Name})
	}
	if len(row2) > 0 {
		drawSummaryRow(canvas, l, row2, l.SummaryY+90+summaryCardHeight+summaryCardGap, fonts)
	}
}

// drawSummaryRow centers the given cards horizontally, so rows with
// fewer cards stay balanced.
func drawSummaryRow(canvas *image.RGBA, l AnnualLayout, cards []summaryCard, y int, fonts *Fonts) {
	totalW := len(cards)*summaryCardWidth + (len(cards)-1)*summaryCardGap
	x := (l.Width - totalW) / 2
	for _, c := range cards {
		rect := image.Rect(x, y, x+summaryCardWidth, y+summaryCardHeight)
		fillRounded(canvas, rect, 10, annualSlateBG)
		cx := x + summaryCardWidth/2
		drawTextCentered(canvas, fonts.Regular(13), cx, y+12, annualGray, c.title)
		value := clampLabel(c.value, 12, 26, "...")
		if c.note != "" {
			drawTextCentered(canvas, fonts.Bold(16), cx, y+34, annualWhite, value)
			drawTextCentered(canvas, fonts.Regular(12), cx, y+58, annualGray, c.note)
		} else {
			drawTextCentered(canvas, fonts.Bold(18), cx, y+40, annualWhite, value)
		}
		x += summaryCardWidth + summaryCardGap
	}
}

func drawAnnualFacts(canvas *image.RGBA, l AnnualLayout, facts []string, fonts *Fonts) {
	if len(facts) == 0 {
		return
	}
	drawText(canvas, fonts.Bold(20), annualMargin, l.FactsY, annualWhite, "更多数据")
	face := fonts.Regular(15)
	for i, fact := range facts {
		lineY := l.FactsY + factsTitleHeight + i*factLineHeight
		fillCircle(canvas, annualMargin+6, lineY+10, 3, annualAccent)
		drawText(canvas, face, annualMargin+22, lineY, annualLight, fact)
	}
}

func drawAnnualFooter(canvas *image.RGBA, l AnnualLayout, year int, fonts *Fonts, site string) {
	cx := l.Width / 2
	drawTextCentered(canvas, fonts.Regular(14), cx, l.FooterY+34, annualGray, "Jellyfin Media · "+site)
	drawTextCentered(canvas, fonts.Regular(12), cx, l.FooterY+60, annualGray, fmt.Sprintf("%d", year))
}
