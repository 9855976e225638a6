package botfmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/token-price-notifier/internal/domain"
)

// DefaultColor - золотой 0xffd700
const DefaultColor = 0xffd700

const updatedLayout = "2006-01-02 15:04:05 MST"

// Style - всё, что не приходит из отчёта: подпись промежуточного актива, адрес, картинка, цвет
type Style struct {
	IntermediateSymbol string
	ContractAddress    string
	ThumbnailURL       string
	Color              int
	Location           *time.Location
}

// FormatPriceUpdate - embed-сообщение об обновлении цены
func FormatPriceUpdate(r domain.PriceReport, st Style) domain.Notification {
	return domain.Notification{
		Title:        FormatTitle(r),
		Description:  FormatDescription(r, st),
		ThumbnailURL: st.ThumbnailURL,
		Color:        st.color(),
	}
}

func FormatTitle(r domain.PriceReport) string {
	return fmt.Sprintf("%s Price Update", r.Symbol)
}

// FormatDescription - тело сообщения, по строке на значение
func FormatDescription(r domain.PriceReport, st Style) string {
	loc := st.Location
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💵 USD Price: $%s\n", r.TokenPriceInStable)
	fmt.Fprintf(&b, "🪙 %s Price: %s %s\n", st.IntermediateSymbol, r.TokenPriceInIntermediate, st.IntermediateSymbol)
	fmt.Fprintf(&b, "💰 Market Cap: $%s\n", r.MarketCapFormatted)
	fmt.Fprintf(&b, "⏰ Updated: %s", r.UpdatedAt.In(loc).Format(updatedLayout))
	if st.ContractAddress != "" {
		fmt.Fprintf(&b, "\n🔗 Contract: `%s`", st.ContractAddress)
	}
	return b.String()
}

func (st Style) color() int {
	if st.Color == 0 {
		return DefaultColor
	}
	return st.Color
}
