package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// OwnerInfo is the listing agent block on a property.
type OwnerInfo struct {
	ID                int64   `json:"id"`
	FullName          string  `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
}

// Property is the view model for one listing. Price is a numeric string as the
// API sends it.
type Property struct {
	ID                   int64     `json:"id"`
	UserID               int64     `json:"user_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Condition            string    `json:"condition"`
	ListingType          string    `json:"listing_type"`
	Category             string    `json:"category"`
	Country              string    `json:"country"`
	State                string    `json:"state"`
	City                 string    `json:"city"`
	StreetAddress        string    `json:"street_address"`
	Price                string    `json:"price"`
	Negotiable           string    `json:"negotiable"`
	ContactEmail         string    `json:"contact_email"`
	ContactPhoneNumber   string    `json:"contact_phone_number"`
	ImageURLs            []string  `json:"image_urls"`
	ProofOfOwnershipURLs []string  `json:"proof_of_ownership_urls"`
	Status               string    `json:"status"`
	Currency             string    `json:"currency"`
	RentCycle            string    `json:"rent_cycle"`
	SecondAddress        string    `json:"second_address"`
	ViewCount            int       `json:"view_count"`
	ListedBy             string    `json:"listed_by"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
	IsFavorite           bool      `json:"is_favorite"`
	OwnerInfo            OwnerInfo `json:"owner_info"`
}

// SearchFilter is serialized into the query string of GET /properties.
// The zero value means "first page, server defaults".
type SearchFilter struct {
	Page        int
	Limit       int
	ListingType string
	Category    string
	City        string
	State       string
	MinPrice    string
	MaxPrice    string
	SearchTerm  string
	SortBy      string
}

// Values encodes the filter deterministically; empty fields are omitted.
func (f SearchFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.ListingType != "" {
		v.Set("listing_type", f.ListingType)
	}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.City != "" {
		v.Set("city", f.City)
	}
	if f.State != "" {
		v.Set("state", f.State)
	}
	if f.MinPrice != "" {
		v.Set("min_price", f.MinPrice)
	}
	if f.MaxPrice != "" {
		v.Set("max_price", f.MaxPrice)
	}
	if f.SearchTerm != "" {
		v.Set("search_term", f.SearchTerm)
	}
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
	return v
}

// Encode returns the canonical query-string form, used to detect whether a
// filter change actually changed anything.
func (f SearchFilter) Encode() string {
	return f.Values().Encode()
}

// PropertyPage is the fixed internal shape for any paginated property list.
type PropertyPage struct {
	Properties []Property
	FirstPage  int
	LastPage   int
	Total      int
}

// pageBounds tolerates both snake_case and camelCase spellings.
type pageBounds struct {
	FirstPage      *int `json:"first_page"`
	FirstPageCamel *int `json:"firstPage"`
	LastPage       *int `json:"last_page"`
	LastPageCamel  *int `json:"lastPage"`
	Total          *int `json:"total"`
}

func (b pageBounds) first() (int, bool) {
	if b.FirstPage != nil {
		return *b.FirstPage, true
	}
	if b.FirstPageCamel != nil {
		return *b.FirstPageCamel, true
	}
	return 0, false
}

func (b pageBounds) last() (int, bool) {
	if b.LastPage != nil {
		return *b.LastPage, true
	}
	if b.LastPageCamel != nil {
		return *b.LastPageCamel, true
	}
	return 0, false
}

// normalizePropertyPage unwraps the API's varying nesting (data.data, data, or
// a bare array) into a PropertyPage. currentPage is the fallback last page when
// the server omits bounds.
func normalizePropertyPage(raw []byte, currentPage int) (*PropertyPage, error) {
	if currentPage < 1 {
		currentPage = 1
	}
	page := &PropertyPage{FirstPage: 1, LastPage: currentPage}

	level := raw
	for depth := 0; depth < 3; depth++ {
		var list []Property
		if err := json.Unmarshal(level, &list); err == nil {
			page.Properties = list
			return clampBounds(page), nil
		}

		var container struct {
			pageBounds
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(level, &container); err != nil {
			return nil, fmt.Errorf("property list decode: %w", err)
		}
		if f, ok := container.first(); ok && f > 0 {
			page.FirstPage = f
		}
		if l, ok := container.last(); ok && l > 0 {
			page.LastPage = l
		}
		if container.Total != nil {
			page.Total = *container.Total
		}
		if len(container.Data) == 0 || bytes.Equal(container.Data, []byte("null")) {
			page.Properties = []Property{}
			return clampBounds(page), nil
		}
		level = container.Data
	}
	return nil, fmt.Errorf("property list decode: nesting too deep")
}

func clampBounds(page *PropertyPage) *PropertyPage {
	if page.FirstPage < 1 {
		page.FirstPage = 1
	}
	if page.LastPage < page.FirstPage {
		page.LastPage = page.FirstPage
	}
	if page.Properties == nil {
		page.Properties = []Property{}
	}
	return page
}

// SearchProperties lists/searches listings (GET /properties).
func (c *Client) SearchProperties(ctx context.Context, token string, filter SearchFilter) (*PropertyPage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/properties", token, filter.Values(), nil)
	if err != nil {
		return nil, err
	}
	return normalizePropertyPage(raw, filter.Page)
}

// GetProperty fetches one listing (GET /properties/:id).
func (c *Client) GetProperty(ctx context.Context, token string, id int64) (*Property, error) {
	raw, err := c.do(ctx, http.MethodGet, "/properties/"+strconv.FormatInt(id, 10), token, nil, nil)
	if err != nil {
		return nil, err
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	level := raw
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		level = envelope.Data
	}
	var p Property
	if err := json.Unmarshal(level, &p); err != nil {
		return nil, fmt.Errorf("property decode: %w", err)
	}
	return &p, nil
}

// PropertyDraft is the body of POST /properties.
type PropertyDraft struct {
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Condition            string   `json:"condition,omitempty"`
	Negotiable           string   `json:"negotiable,omitempty"`
	ListingType          string   `json:"listing_type"`
	Category             string   `json:"category"`
	Country              string   `json:"country,omitempty"`
	State                string   `json:"state,omitempty"`
	City                 string   `json:"city,omitempty"`
	StreetAddress        string   `json:"street_address,omitempty"`
	Price                string   `json:"price"`
	Currency             string   `json:"currency,omitempty"`
	RentCycle            string   `json:"rent_cycle,omitempty"`
	ContactEmail         string   `json:"contact_email,omitempty"`
	ContactPhoneNumber   string   `json:"contact_phone_number"`
	ImageURLs            []string `json:"image_urls"`
	ProofOfOwnershipURLs []string `json:"proof_of_ownership_urls"`
}

// CreateProperty submits a new listing.
func (c *Client) CreateProperty(ctx context.Context, token string, draft PropertyDraft) error {
	_, err := c.do(ctx, http.MethodPost, "/properties", token, nil, draft)
	return err
}

// DeleteProperty removes a listing.
// TODO: confirm the delete contract with the backend team; the deployed API
// accepts the id posted to the collection path rather than a DELETE on the
// resource, and this client mirrors that.
func (c *Client) DeleteProperty(ctx context.Context, token string, id int64) error {
	_, err := c.do(ctx, http.MethodPost, "/properties", token, nil, map[string]int64{"propertyId": id})
	return err
}

// ToggleFavorite flips the favorite flag (POST /properties/:id/favorites).
// The returned ok is false when the response carries no recognizable boolean,
// in which case the caller keeps its optimistic value.
func (c *Client) ToggleFavorite(ctx context.Context, token string, id int64) (favorite bool, ok bool, err error) {
	raw, err := c.do(ctx, http.MethodPost, "/properties/"+strconv.FormatInt(id, 10)+"/favorites", token, nil, nil)
	if err != nil {
		return false, false, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return false, false, nil
	}
	if v, ok := favoriteFlag(body); ok {
		return v, true, nil
	}
	if data, found := body["data"]; found {
		var nested map[string]json.RawMessage
		if err := json.Unmarshal(data, &nested); err == nil {
			if v, ok := favoriteFlag(nested); ok {
				return v, true, nil
			}
		}
	}
	return false, false, nil
}

// favoriteFlag probes the key spellings the API has been seen to use.
func favoriteFlag(body map[string]json.RawMessage) (bool, bool) {
	for _, key := range []string{"is_favorite", "isFavorite", "is_favourite", "isFavourite"} {
		raw, found := body[key]
		if !found {
			continue
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, true
		}
	}
	return false, false
}

// Favorites lists the user's favorited properties (GET /properties/user/favorites).
func (c *Client) Favorites(ctx context.Context, token string, page int) (*PropertyPage, error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	raw, err := c.do(ctx, http.MethodGet, "/properties/user/favorites", token, v, nil)
	if err != nil {
		return nil, err
	}
	return normalizePropertyPage(raw, page)
}
