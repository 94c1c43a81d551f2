// Package tls provides TLS serving support with automatic certificate
// reload.
//
// Certificates are watched with fsnotify so renewal (e.g. Let's Encrypt)
// takes effect without a server restart. Reload events are debounced
// because renewal tooling typically rewrites the cert and key files in
// quick succession.
package tls

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is the quiet period after a file event before the
// certificate is reloaded.
const debounceInterval = 250 * time.Millisecond

// CertificateReloader watches certificate files and reloads them
// automatically when they change on disk.
type CertificateReloader struct {
	certFile string
	keyFile  string

	mu   sync.RWMutex
	cert *tls.Certificate
}

// NewCertificateReloader creates a reloader for the given certificate and
// key files.
func NewCertificateReloader(certFile, keyFile string) *CertificateReloader {
	return &CertificateReloader{
		certFile: certFile,
		keyFile:  keyFile,
	}
}

// Start loads the initial certificate and begins watching the certificate
// files for changes. The watch goroutine exits when the context is
// cancelled.
func (r *CertificateReloader) Start(ctx context.Context) error {
	if err := r.reload(); err != nil {
		return fmt.Errorf("failed to load certificate: %w", err)
	}
	r.logCertificateInfo()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// Watch the parent directories, not the files themselves: renewal
	// tooling replaces files by rename, which drops file-level watches.
	dirs := map[string]struct{}{
		filepath.Dir(r.certFile): {},
		filepath.Dir(r.keyFile):  {},
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go r.watchLoop(ctx, watcher)
	return nil
}

// watchLoop processes fsnotify events until the context is cancelled.
func (r *CertificateReloader) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var debounce *time.Timer
	debounced := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !r.relevant(event) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case debounced <- struct{}{}:
				default:
				}
			})

		case <-debounced:
			if err := r.reload(); err != nil {
				slog.Error("failed to reload certificate",
					"error", err,
					"cert_file", r.certFile,
				)
				continue
			}
			slog.Info("certificate reloaded", "cert_file", r.certFile)
			r.logCertificateInfo()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("certificate watcher error", "error", err)
		}
	}
}

// relevant reports whether a file event concerns the watched cert or key.
func (r *CertificateReloader) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return name == filepath.Clean(r.certFile) || name == filepath.Clean(r.keyFile)
}

// reload loads the certificate and key from disk and swaps them in
// atomically.
func (r *CertificateReloader) reload() error {
	cert, err := tls.LoadX509KeyPair(r.certFile, r.keyFile)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cert = &cert
	r.mu.Unlock()
	return nil
}

// GetCertificateFunc returns a function compatible with
// tls.Config.GetCertificate, allowing certificate rotation without server
// restart.
func (r *CertificateReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		r.mu.RLock()
		defer r.mu.RUnlock()
		if r.cert == nil {
			return nil, fmt.Errorf("no certificate loaded")
		}
		return r.cert, nil
	}
}

// logCertificateInfo logs subject and expiry of the loaded certificate.
func (r *CertificateReloader) logCertificateInfo() {
	r.mu.RLock()
	cert := r.cert
	r.mu.RUnlock()

	if cert == nil || len(cert.Certificate) == 0 {
		return
	}

	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		return
	}

	daysUntilExpiry := int(time.Until(x509Cert.NotAfter).Hours() / 24)
	if daysUntilExpiry <= 30 {
		slog.Warn("certificate expiring soon",
			"subject", x509Cert.Subject.CommonName,
			"expires_in_days", daysUntilExpiry,
			"expires_at", x509Cert.NotAfter.Format(time.RFC3339),
		)
	} else {
		slog.Info("certificate loaded",
			"subject", x509Cert.Subject.CommonName,
			"expires_in_days", daysUntilExpiry,
			"expires_at", x509Cert.NotAfter.Format(time.RFC3339),
		)
	}
}

// NewServerConfig builds a TLS 1.3 server configuration backed by the
// reloader.
func NewServerConfig(reloader *CertificateReloader) *tls.Config {
	return &tls.Config{
		MinVersion:     tls.VersionTLS13,
		GetCertificate: reloader.GetCertificateFunc(),
	}
}
