package listing

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// File is one selected file from a browser batch.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Skipped reports a file rejected before upload (oversized). Skips never block
// the rest of the batch.
type Skipped struct {
	Name   string
	Reason string
}

// BatchError is returned when any upload in a batch fails. Completed lists the
// URLs that did land server-side before the batch was declared failed; there
// is no rollback, so callers can surface or reap them.
type BatchError struct {
	Completed []string
	Err       error
}

func (e *BatchError) Error() string {
	return e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

// UploadFunc sends one file and returns its stored URL.
type UploadFunc func(ctx context.Context, f File) (string, error)

// Uploader runs upload batches for one media list.
type Uploader struct {
	Upload   UploadFunc
	MaxBytes int64 // per-file size cap
}

// Batch uploads a file-selection batch. Oversized files are skipped with a
// reported reason; the valid remainder is truncated to maxSlots when maxSlots
// is non-negative (image lists have a cap, proof lists pass -1). All valid
// files go up concurrently and the batch joins all-or-nothing: on any failure
// no URLs are returned through urls, only through the BatchError.
func (u *Uploader) Batch(ctx context.Context, files []File, maxSlots int) (urls []string, skipped []Skipped, err error) {
	valid := make([]File, 0, len(files))
	for _, f := range files {
		if u.MaxBytes > 0 && f.Size > u.MaxBytes {
			skipped = append(skipped, Skipped{
				Name:   f.Name,
				Reason: fmt.Sprintf("%s exceeds the %d MB limit", f.Name, u.MaxBytes>>20),
			})
			continue
		}
		valid = append(valid, f)
	}
	if maxSlots >= 0 && len(valid) > maxSlots {
		valid = valid[:maxSlots]
	}
	if len(valid) == 0 {
		return nil, skipped, nil
	}

	results := make([]string, len(valid))
	done := make([]bool, len(valid))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range valid {
		i, f := i, f
		g.Go(func() error {
			url, err := u.Upload(gctx, f)
			if err != nil {
				return fmt.Errorf("upload %s: %w", f.Name, err)
			}
			results[i] = url
			done[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var completed []string
		for i, ok := range done {
			if ok {
				completed = append(completed, results[i])
			}
		}
		return nil, skipped, &BatchError{Completed: completed, Err: err}
	}
	return results, skipped, nil
}
