package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Enzo-Nunes/SkyForge/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier imprimiendo la tabla de profits.
type Console struct {
	out         io.Writer
	tableLength int // filas mostradas; el resto se resume en una línea
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(tableLength int) *Console {
	return &Console{out: os.Stdout, tableLength: tableLength}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, tableLength int) *Console {
	return &Console{out: w, tableLength: tableLength}
}

// Notify imprime el top de la tabla de rentabilidad del ciclo.
func (c *Console) Notify(_ context.Context, records []domain.ProfitRecord, uptimeSeconds int) error {
	now := time.Now().Format("15:04:05")
	if len(records) == 0 {
		fmt.Fprintf(c.out, "[%s] no profitable forge items this cycle\n", now)
		return nil
	}

	shown := records
	if c.tableLength > 0 && len(shown) > c.tableLength {
		shown = shown[:c.tableLength]
	}

	fmt.Fprintf(c.out, "\n[%s] %d profitable items — showing top %d (uptime %s)\n",
		now, len(records), len(shown), formatUptime(uptimeSeconds))

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Item", "Cost", "Sell", "Profit", "Hours", "Profit/h", "Wk Vol", "Mkt", "Recipe")

	for _, r := range shown {
		table.Append(
			strconv.Itoa(r.Rank),
			r.Name,
			prettyNumber(int64(r.Cost)),
			prettyNumber(int64(r.SellValue)),
			prettyNumber(int64(r.Profit)),
			strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
			prettyNumber(int64(r.ProfitPerHour)),
			volumeLabel(r),
			r.SellingMarket,
			recipeLabel(r.Recipe),
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Wk Vol = ventas/semana (~ = extrapolado con menos de 7 días observados)")
	fmt.Fprintln(c.out, "  Mkt = mercado donde se vende el item (Bazaar | AH)")
	return nil
}

// prettyNumber formatea un entero con separadores de miles.
func prettyNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var sb strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// volumeLabel marca los volúmenes extrapolados con "~".
func volumeLabel(r domain.ProfitRecord) string {
	label := prettyNumber(int64(r.WeeklyVolume))
	if r.VolumeEstimated {
		return "~" + label
	}
	return label
}

// recipeLabel aplana la receta en una línea, materiales en orden estable.
func recipeLabel(recipe map[string]int) string {
	materials := make([]string, 0, len(recipe))
	for material := range recipe {
		materials = append(materials, material)
	}
	sort.Strings(materials)

	parts := make([]string, 0, len(materials))
	for _, material := range materials {
		parts = append(parts, fmt.Sprintf("%dx %s", recipe[material], material))
	}
	return strings.Join(parts, ", ")
}

// formatUptime convierte segundos en algo legible (2d3h, 5h12m, 42m).
func formatUptime(seconds int) string {
	d := time.Duration(seconds) * time.Second
	switch {
	case d >= 24*time.Hour:
		days := d / (24 * time.Hour)
		hours := (d % (24 * time.Hour)) / time.Hour
		return fmt.Sprintf("%dd%dh", days, hours)
	case d >= time.Hour:
		return fmt.Sprintf("%dh%dm", d/time.Hour, (d%time.Hour)/time.Minute)
	default:
		return fmt.Sprintf("%dm", d/time.Minute)
	}
}
