package web

import (
	"context"
	"sync"
	"time"

	"kaa-web/internal/api"
	"kaa-web/internal/browse"
	"kaa-web/internal/config"
	"kaa-web/internal/credits"
	"kaa-web/internal/listing"
)

// registry keeps the per-browser controllers (browse, listing form, credits)
// between requests, keyed by session id. Controllers are bound to the token
// they were created with; a re-login gets fresh ones. Entries idle past the
// session TTL are swept on access, so browsers whose Redis session simply
// expired do not pin their controllers forever.
type registry struct {
	mu      sync.Mutex
	cfg     *config.Config
	api     *api.Client
	ttl     time.Duration
	entries map[string]*entry
}

type entry struct {
	token    string
	lastSeen time.Time
	browse   *browse.Controller
	listing  *listing.Controller
	credits  *credits.Controller
}

func newRegistry(cfg *config.Config, client *api.Client) *registry {
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &registry{cfg: cfg, api: client, ttl: ttl, entries: make(map[string]*entry)}
}

func (r *registry) get(sessionID, token string) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}
	e, ok := r.entries[sessionID]
	if !ok || e.token != token {
		e = &entry{token: token}
		r.entries[sessionID] = e
	}
	e.lastSeen = now
	return e
}

// drop forgets a session's controllers (logout).
func (r *registry) drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}

func (r *registry) browseFor(sessionID, token string, page int) *browse.Controller {
	e := r.get(sessionID, token)
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.browse == nil {
		fetch := func(ctx context.Context, f api.SearchFilter) (*api.PropertyPage, error) {
			return r.api.SearchProperties(ctx, token, f)
		}
		e.browse = browse.NewController(fetch, r.cfg.SearchDebounce, page)
		e.browse.Load()
	}
	return e.browse
}

func (r *registry) listingFor(sessionID, token string) *listing.Controller {
	e := r.get(sessionID, token)
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.listing == nil {
		upload := func(mediaFor string) listing.UploadFunc {
			return func(ctx context.Context, f listing.File) (string, error) {
				return r.api.UploadMedia(ctx, token, f.Name, f.Content, mediaFor)
			}
		}
		images := &listing.Uploader{Upload: upload("property_image"), MaxBytes: r.cfg.MaxUploadBytes}
		proofs := &listing.Uploader{Upload: upload("proof_of_ownership"), MaxBytes: r.cfg.MaxUploadBytes}
		create := func(ctx context.Context, draft api.PropertyDraft) error {
			return r.api.CreateProperty(ctx, token, draft)
		}
		e.listing = listing.NewController(images, proofs, create, r.cfg.MaxImageCount)
	}
	return e.listing
}

func (r *registry) creditsFor(sessionID, token string) *credits.Controller {
	e := r.get(sessionID, token)
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.credits == nil {
		e.credits = credits.NewController(r.api, token)
	}
	return e.credits
}
