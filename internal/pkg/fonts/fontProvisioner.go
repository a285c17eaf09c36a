package fonts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/ds124wfegd/pill-overlay/internal/pkg/storage"
	"github.com/sirupsen/logrus"
)

// ProvisionStatus describes the outcome of the startup font download. It is
// produced once and only read afterwards.
type ProvisionStatus struct {
	URL       string
	Path      string
	Available bool
	Bytes     int64
	Err       error
}

// EnsureFontAvailable downloads url into store under name. It makes a single
// attempt; every failure is logged and reported in the returned status.
func EnsureFontAvailable(ctx context.Context, client *http.Client, url string, store storage.FileStorage, name string) ProvisionStatus {
	status := ProvisionStatus{URL: url, Path: store.FullPath(name)}
	log := logrus.WithFields(logrus.Fields{"url": url, "path": status.Path})

	n, err := download(ctx, client, url, store, name)
	if err != nil {
		status.Err = err
		log.WithError(err).Warn("Font download failed, will use fallback")
		return status
	}

	status.Available = true
	status.Bytes = n
	log.WithField("bytes", n).Info("Font downloaded successfully")
	return status
}

// ExistingFont reports a previously provisioned file without touching the network.
func ExistingFont(url string, store storage.FileStorage, name string) ProvisionStatus {
	status := ProvisionStatus{URL: url, Path: store.FullPath(name)}

	if !store.Exists(name) {
		status.Err = fmt.Errorf("%s: %w", status.Path, fs.ErrNotExist)
		return status
	}

	_, n, err := fileDigest(store, name)
	if err != nil {
		status.Err = err
		return status
	}
	status.Available = n > 0
	status.Bytes = n
	return status
}

// fileDigest returns the hex SHA-256 and size of a stored file.
func fileDigest(store storage.FileStorage, name string) (string, int64, error) {
	f, err := store.Get(name)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", n, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

func download(ctx context.Context, client *http.Client, url string, store storage.FileStorage, name string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status %s", resp.Status)
	}

	n, err := store.Save(name, resp.Body)
	if err != nil {
		return n, err
	}
	if n == 0 {
		store.Delete(name)
		return 0, fmt.Errorf("empty response body")
	}
	return n, nil
}
