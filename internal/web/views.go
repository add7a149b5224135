package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kaa-web/internal/api"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatPrice": formatPrice,
	"daysAgo":     daysAgo,
	"firstImage":  firstImage,
	"address":     address,
	"formatNum":   formatNum,
	"str":         derefString,
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml"))

// render executes one page template into the response.
func render(c *fiber.Ctx, name string, data interface{}) error {
	c.Set("Content-Type", "text/html; charset=utf-8")
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return c.SendString(sb.String())
}

// formatPrice renders a numeric-string price with its currency, dropping any
// decimal part the way the detail screen always has.
func formatPrice(price, currency string) string {
	if currency == "" {
		currency = "NGN"
	}
	whole := price
	if i := strings.IndexByte(whole, '.'); i >= 0 {
		whole = whole[:i]
	}
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return currency + " " + price
	}
	return currency + " " + groupThousands(n)
}

func formatNum(v *float64) string {
	if v == nil {
		return "-"
	}
	return groupThousands(int64(*v))
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

func daysAgo(created string) string {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return ""
	}
	days := int(time.Since(t).Hours()/24) + 1
	return fmt.Sprintf("Listed %d days ago", days)
}

func firstImage(p api.Property) string {
	if len(p.ImageURLs) > 0 {
		return p.ImageURLs[0]
	}
	return "/static/placeholder.svg"
}

func address(p api.Property) string {
	parts := []string{p.StreetAddress, p.City, p.State, p.Country}
	var kept []string
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}
