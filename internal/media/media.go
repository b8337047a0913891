// Package media resolves image references into payloads that can be embedded
// in a deck. Resolution never fails as a whole: each reference ends up either
// Available with bytes or Unavailable with the reason attached.
package media

import (
	"strings"

	"github.com/alnah/go-deckgen/internal/fileutil"
)

// Status describes the outcome of resolving one reference.
type Status int

const (
	// Unavailable marks a reference that could not be fetched or decoded.
	Unavailable Status = iota
	// Available marks a reference with embeddable image bytes.
	Available
	// Referenced marks a reference that was intentionally not fetched; the
	// consumer links to it instead of embedding it.
	Referenced
)

func (s Status) String() string {
	switch s {
	case Available:
		return "available"
	case Referenced:
		return "referenced"
	default:
		return "unavailable"
	}
}

// Asset is the resolved form of one image reference.
type Asset struct {
	Ref         string
	Status      Status
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Err         error
}

// Extension returns the file extension for the asset's content type,
// without a dot. Empty for assets without data.
func (a Asset) Extension() string {
	switch a.ContentType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpeg"
	case "image/gif":
		return "gif"
	default:
		return ""
	}
}

// Assets maps an original reference string to its resolved asset.
type Assets map[string]Asset

// Lookup returns the asset for ref. A nil map means the caller did not
// resolve anything and every reference is Referenced. A missing key in a
// non-nil map is Unavailable.
func (a Assets) Lookup(ref string) Asset {
	if a == nil {
		return Asset{Ref: ref, Status: Referenced}
	}
	if asset, ok := a[ref]; ok {
		return asset
	}
	return Asset{Ref: ref, Status: Unavailable}
}

// IsURL reports whether ref points at an http(s) resource, as opposed to an
// opaque asset id or a data URI.
func IsURL(ref string) bool {
	return fileutil.IsURL(strings.ToLower(ref))
}

// IsDataURI reports whether ref carries its payload inline.
func IsDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

// Distinct returns the non-empty references in first-seen order with
// duplicates removed.
func Distinct(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
