package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"kaa-web/internal/api"
)

// CreateFunc submits the finished draft to the API.
type CreateFunc func(ctx context.Context, draft api.PropertyDraft) error

// Controller drives the listing-creation flow: one form record, two upload
// lists, and a submit that only fires when validation passes.
type Controller struct {
	mu        sync.Mutex
	form      Form
	images    *Uploader
	proofs    *Uploader
	create    CreateFunc
	maxImages int

	uploading bool
	submitted bool
	errMsg    string
}

// NewController wires the creation flow. maxImages caps the image list; proofs
// are uncapped.
func NewController(images, proofs *Uploader, create CreateFunc, maxImages int) *Controller {
	return &Controller{images: images, proofs: proofs, create: create, maxImages: maxImages}
}

// Form returns a copy of the current form for rendering.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SetFields replaces the text fields, leaving the upload lists alone.
func (c *Controller) SetFields(f Form) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f.ImageURLs = c.form.ImageURLs
	f.ProofURLs = c.form.ProofURLs
	c.form = f
}

// Uploading reports whether a batch is in flight.
func (c *Controller) Uploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading
}

// Submitted reports whether the listing has been created.
func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// Err returns the current inline error message.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// AddImages uploads an image batch, truncated to the slots left under the
// image cap, and appends the returned URLs in order. Skipped oversized files
// are reported through the error message without blocking the batch.
func (c *Controller) AddImages(ctx context.Context, files []File) error {
	c.mu.Lock()
	slots := c.maxImages - len(c.form.ImageURLs)
	if slots < 0 {
		slots = 0
	}
	c.uploading = true
	c.errMsg = ""
	c.mu.Unlock()

	urls, skipped, err := c.images.Batch(ctx, files, slots)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploading = false
	if err != nil {
		c.errMsg = batchFailureMessage(err)
		return err
	}
	c.form.ImageURLs = append(c.form.ImageURLs, urls...)
	if len(skipped) > 0 {
		c.errMsg = skippedMessage(skipped)
	}
	return nil
}

// AddProofs uploads a proof-of-ownership batch; no slot cap.
func (c *Controller) AddProofs(ctx context.Context, files []File) error {
	c.mu.Lock()
	c.uploading = true
	c.errMsg = ""
	c.mu.Unlock()

	urls, skipped, err := c.proofs.Batch(ctx, files, -1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.uploading = false
	if err != nil {
		c.errMsg = batchFailureMessage(err)
		return err
	}
	c.form.ProofURLs = append(c.form.ProofURLs, urls...)
	if len(skipped) > 0 {
		c.errMsg = skippedMessage(skipped)
	}
	return nil
}

// RemoveImage drops an uploaded image by index.
func (c *Controller) RemoveImage(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.RemoveImage(i)
}

// RemoveProof drops an uploaded proof by index.
func (c *Controller) RemoveProof(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.RemoveProof(i)
}

// ErrValidation distinguishes local validation failures from network ones.
var ErrValidation = errors.New("validation failed")

// Submit validates and sends the creation request. Validation failure aborts
// with a single message and no request; success resets the form and flips the
// confirmation state.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	if err := form.Validate(); err != nil {
		c.mu.Lock()
		c.errMsg = err.Error()
		c.mu.Unlock()
		return errors.Join(ErrValidation, err)
	}

	err := c.create(ctx, form.Draft())

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.form = Form{}
	c.submitted = true
	c.errMsg = ""
	return nil
}

// Reset clears the flow for another listing.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = Form{}
	c.submitted = false
	c.errMsg = ""
}

func skippedMessage(skipped []Skipped) string {
	reasons := make([]string, len(skipped))
	for i, s := range skipped {
		reasons[i] = s.Reason
	}
	return strings.Join(reasons, "; ")
}

// batchFailureMessage names the uploads that did land before the batch was
// declared failed; those files live server-side and the user should not
// re-select them blindly.
func batchFailureMessage(err error) string {
	var batchErr *BatchError
	if errors.As(err, &batchErr) && len(batchErr.Completed) > 0 {
		return fmt.Sprintf("%s (already uploaded: %s)", batchErr.Err, strings.Join(batchErr.Completed, ", "))
	}
	return err.Error()
}
