package pptx

import (
	"archive/zip"
	"crypto/sha256"
	"fmt"
)

// mediaSet stores each distinct image payload once.
type mediaSet struct {
	byHash map[[sha256.Size]byte]int
	items  []mediaItem
}

type mediaItem struct {
	data        []byte
	ext         string
	contentType string
}

func newMediaSet() *mediaSet {
	return &mediaSet{byHash: map[[sha256.Size]byte]int{}}
}

// add returns the index of data, storing it on first sight.
func (m *mediaSet) add(data []byte, ext, contentType string) int {
	sum := sha256.Sum256(data)
	if idx, ok := m.byHash[sum]; ok {
		return idx
	}
	m.items = append(m.items, mediaItem{data: data, ext: ext, contentType: contentType})
	idx := len(m.items) - 1
	m.byHash[sum] = idx
	return idx
}

func (m *mediaSet) name(idx int) string {
	return fmt.Sprintf("image%d.%s", idx+1, m.items[idx].ext)
}

// extensions returns each extension in use with its content type.
func (m *mediaSet) extensions() []xmlDefault {
	seen := map[string]bool{}
	var out []xmlDefault
	for _, it := range m.items {
		if seen[it.ext] {
			continue
		}
		seen[it.ext] = true
		out = append(out, xmlDefault{Extension: it.ext, ContentType: it.contentType})
	}
	return out
}

func (m *mediaSet) write(zw *zip.Writer) error {
	for i, it := range m.items {
		path := "ppt/media/" + m.name(i)
		fw, err := zw.Create(path)
		if err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrWrite, path, err)
		}
		if _, err := fw.Write(it.data); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrWrite, path, err)
		}
	}
	return nil
}
