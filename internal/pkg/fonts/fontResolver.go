package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/pill-overlay/internal/pkg/storage"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FontTier identifies which step of the fallback chain produced a face.
type FontTier int

const (
	TierPreferred FontTier = iota
	TierSystem
	TierBuiltin
)

func (t FontTier) String() string {
	switch t {
	case TierPreferred:
		return "preferred"
	case TierSystem:
		return "system"
	case TierBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("FontTier(%d)", int(t))
	}
}

const builtinSource = "basicfont.Face7x13"

var errNoPath = errors.New("no font path configured")

// ResolvedFont is a face ready for drawing at the requested size. The builtin
// tier ignores the size.
type ResolvedFont struct {
	Face   font.Face
	Tier   FontTier
	Source string
}

// Close releases the face unless it is the shared builtin one.
func (f ResolvedFont) Close() error {
	if f.Tier == TierBuiltin || f.Face == nil {
		return nil
	}
	return f.Face.Close()
}

type FaceResolver interface {
	Resolve(size int) ResolvedFont
}

// Resolver walks preferred file -> system file -> builtin face. It holds only
// paths, so one Resolver is shared by all requests.
type Resolver struct {
	preferred string
	system    string
}

func NewResolver(preferredPath, systemPath string) *Resolver {
	return &Resolver{preferred: preferredPath, system: systemPath}
}

func (r *Resolver) Resolve(size int) ResolvedFont {
	tiers := []struct {
		tier FontTier
		path string
	}{
		{TierPreferred, r.preferred},
		{TierSystem, r.system},
	}

	for _, t := range tiers {
		face, err := LoadFace(t.path, size)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"tier": t.tier.String(),
				"path": t.path,
				"size": size,
			}).WithError(err).Debug("Font tier unavailable")
			continue
		}
		return ResolvedFont{Face: face, Tier: t.tier, Source: t.path}
	}

	return Builtin()
}

// Fingerprint identifies the font files behind each tier by content. Two
// resolvers with equal fingerprints draw identical text.
func (r *Resolver) Fingerprint() string {
	parts := make([]string, 0, 3)
	for _, path := range []string{r.preferred, r.system} {
		digest := "none"
		if path != "" {
			if d, _, err := fileDigest(storage.NewFileStorage(filepath.Dir(path)), filepath.Base(path)); err == nil {
				digest = d
			}
		}
		parts = append(parts, digest)
	}
	parts = append(parts, builtinSource)
	return strings.Join(parts, "|")
}

// Builtin returns the minimal embedded bitmap face.
func Builtin() ResolvedFont {
	return ResolvedFont{Face: basicfont.Face7x13, Tier: TierBuiltin, Source: builtinSource}
}

// LoadFace opens a TrueType/OpenType file at size pixels.
func LoadFace(path string, size int) (font.Face, error) {
	if path == "" {
		return nil, errNoPath
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %d", size)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}

	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
