package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kaa-web/internal/api"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "NGN 25,000,000", formatPrice("25000000", ""))
	assert.Equal(t, "NGN 1,500", formatPrice("1500.75", "NGN"))
	assert.Equal(t, "USD 900", formatPrice("900", "USD"))
	// Non-numeric prices pass through untouched.
	assert.Equal(t, "NGN negotiable", formatPrice("negotiable", ""))
}

func TestFormatNum(t *testing.T) {
	v := 1234567.0
	assert.Equal(t, "1,234,567", formatNum(&v))
	assert.Equal(t, "-", formatNum(nil))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "-12,345", groupThousands(-12345))
}

func TestAddressJoinsNonEmptyParts(t *testing.T) {
	p := api.Property{StreetAddress: "12 Marina Rd", City: "Lagos", Country: "Nigeria"}
	assert.Equal(t, "12 Marina Rd, Lagos, Nigeria", address(p))
	assert.Empty(t, address(api.Property{}))
}

func TestFirstImage(t *testing.T) {
	p := api.Property{ImageURLs: []string{"a.jpg", "b.jpg"}}
	assert.Equal(t, "a.jpg", firstImage(p))
	assert.Equal(t, "/static/placeholder.svg", firstImage(api.Property{}))
}

func TestDaysAgo(t *testing.T) {
	created := time.Now().Add(-48 * time.Hour).Format(time.RFC3339)
	assert.Equal(t, "Listed 3 days ago", daysAgo(created))
	assert.Empty(t, daysAgo("not a timestamp"))
}

func TestDerefString(t *testing.T) {
	s := "url"
	assert.Equal(t, "url", derefString(&s))
	assert.Empty(t, derefString(nil))
}
