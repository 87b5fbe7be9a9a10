package store

import (
	"context"
	"encoding/json"

	"github.com/mindtris/uitheme/internal/log"
	"github.com/mindtris/uitheme/internal/theme"
	"github.com/mindtris/uitheme/internal/validation"
)

// Storage keys.
const (
	KeySelection = "mindtris-ui-theme"
	KeyArtifact  = "mindtris-ui-custom-theme"
)

// Persistence is the best-effort theme storage. Read failures are logged
// and reported as nothing stored; write failures are logged and dropped.
type Persistence struct {
	kv KV
}

// NewPersistence wraps kv.
func NewPersistence(kv KV) *Persistence {
	return &Persistence{kv: kv}
}

// Selection returns the stored selection, if any.
func (p *Persistence) Selection(ctx context.Context) (theme.Selection, bool) {
	raw, ok := p.get(ctx, KeySelection)
	if !ok || raw == "" {
		return theme.Selection{}, false
	}
	return theme.ParseSelection(raw), true
}

// SaveSelection stores sel.
func (p *Persistence) SaveSelection(ctx context.Context, sel theme.Selection) {
	p.set(ctx, KeySelection, sel.String())
}

// Artifact returns the stored custom artifact. Corrupt JSON and artifacts
// failing validation count as nothing stored.
func (p *Persistence) Artifact(ctx context.Context) (*theme.Artifact, bool) {
	raw, ok := p.get(ctx, KeyArtifact)
	if !ok || raw == "" {
		return nil, false
	}
	a, res := validation.ParseArtifact([]byte(raw))
	if !res.IsValid {
		log.Warn(log.CatStore, "Ignoring stored custom theme", "key", KeyArtifact, "reason", res.Error)
		return nil, false
	}
	return a, true
}

// SaveArtifact stores a as JSON.
func (p *Persistence) SaveArtifact(ctx context.Context, a *theme.Artifact) {
	data, err := json.Marshal(a)
	if err != nil {
		log.WarnErr(log.CatStore, "Failed to encode custom theme", err, "key", KeyArtifact)
		return
	}
	p.set(ctx, KeyArtifact, string(data))
}

// ClearArtifact removes the stored custom artifact.
func (p *Persistence) ClearArtifact(ctx context.Context) {
	p.delete(ctx, KeyArtifact)
}

// Clear removes both the selection and the artifact.
func (p *Persistence) Clear(ctx context.Context) {
	p.delete(ctx, KeySelection)
	p.delete(ctx, KeyArtifact)
}

// Close closes the underlying store.
func (p *Persistence) Close() error {
	return p.kv.Close()
}

func (p *Persistence) get(ctx context.Context, key string) (string, bool) {
	v, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		log.WarnErr(log.CatStore, "Read failed", &PersistenceError{Op: "get", Key: key, Err: err})
		return "", false
	}
	return v, ok
}

func (p *Persistence) set(ctx context.Context, key, value string) {
	if err := p.kv.Set(ctx, key, value); err != nil {
		log.WarnErr(log.CatStore, "Write failed", &PersistenceError{Op: "set", Key: key, Err: err})
		return
	}
	log.Debug(log.CatStore, "Stored", "key", key, "bytes", len(value))
}

func (p *Persistence) delete(ctx context.Context, key string) {
	if err := p.kv.Delete(ctx, key); err != nil {
		log.WarnErr(log.CatStore, "Delete failed", &PersistenceError{Op: "delete", Key: key, Err: err})
	}
}
