package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// calendarDigestCap is how many entries a calendar day shows in the text
// digest before eliding the rest.
const calendarDigestCap = 4

// BuildText renders the weekly report as the plain-text digest that goes
// out with the push notification.
func BuildText(siteName string, rep *domain.WeeklyReport, calendar []domain.CalendarDay, topN int, today time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "【%s Jellyfin 播放周榜】\n\n", siteName)
	fmt.Fprintf(&b, "统计周期: %s ~ %s\n\n", rep.Window.StartDate(), rep.Window.EndDate())

	if rep.TopUser != nil {
		fmt.Fprintf(&b, "本周片王: %s\n", rep.TopUser.Name)
		fmt.Fprintf(&b, "   观看时长: %s\n\n", domain.FormatDuration(rep.TopUser.TotalDuration))
	}

	writeCategory(&b, fmt.Sprintf("电影 Top %d", topN), rep.Movies)
	b.WriteString("\n")
	writeCategory(&b, fmt.Sprintf("电视剧 Top %d", topN), rep.TV)
	b.WriteString("\n")
	writeCategory(&b, fmt.Sprintf("番剧 Top %d", topN), rep.Anime)

	if len(calendar) > 0 {
		b.WriteString("\n本周放送:\n\n")
		for _, day := range calendar {
			fmt.Fprintf(&b, "%s %s:\n", day.Date.Format("01-02"), day.Weekday)

			shown := day.Entries
			if len(shown) > calendarDigestCap {
				shown = shown[:calendarDigestCap]
			}
			for _, e := range shown {
				if e.Movie {
					fmt.Fprintf(&b, "  - %s [电影]\n", e.Name)
				} else {
					fmt.Fprintf(&b, "  - %s S%dE%d\n", e.Name, e.Season, e.Episode)
				}
			}
			if extra := len(day.Entries) - calendarDigestCap; extra > 0 {
				fmt.Fprintf(&b, "  ... 还有 %d 部\n", extra)
			}
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n#WeekRanks  %s", today.Format("2006-01-02"))
	return b.String()
}

func writeCategory(b *strings.Builder, title string, entries []domain.RankedEntry) {
	fmt.Fprintf(b, "%s:\n\n", title)
	if len(entries) == 0 {
		b.WriteString("该类别本周没有播放记录\n")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(b, "%d. %s\n", e.Rank, e.Name)
		fmt.Fprintf(b, "   播放次数: %d  时长: %s\n", e.PlayCount, domain.FormatDuration(e.TotalDuration))
	}
}
