package deckgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeTemplateFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write template file: %v", err)
	}
	return path
}

func TestLoadTemplates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr error
		check   func(t *testing.T, got []Template)
	}{
		{
			name: "valid file with default fonts",
			content: `templates:
  ocean:
    primary: "#0e7490"
    secondary: 22D3EE
    background: FFFFFF
    text: 0F172A
`,
			check: func(t *testing.T, got []Template) {
				if len(got) != 1 {
					t.Fatalf("got %d templates, want 1", len(got))
				}
				if got[0].ID != "ocean" || got[0].Primary != "0E7490" {
					t.Errorf("template = %+v", got[0])
				}
				if got[0].HeadingFont == "" || got[0].BodyFont == "" {
					t.Error("missing fonts should default")
				}
			},
		},
		{
			name:    "unknown key rejected",
			content: "templates:\n  ocean:\n    primary: 0E7490\n    accent: FFFFFF\n",
			wantErr: ErrTemplateFile,
		},
		{
			name:    "empty file",
			content: "templates: {}\n",
			wantErr: ErrTemplateFile,
		},
		{
			name:    "bad color",
			content: "templates:\n  ocean:\n    primary: teal\n    secondary: 22D3EE\n    background: FFFFFF\n    text: 0F172A\n",
			wantErr: ErrInvalidTemplate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadTemplates(writeTemplateFile(t, tt.content))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadTemplates() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplates() unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestLoadTemplates_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadTemplates(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrTemplateFile) {
		t.Errorf("LoadTemplates() error = %v, want ErrTemplateFile", err)
	}
}

func TestToThemes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      Template
		wantErr bool
	}{
		{
			name: "hash prefix and lower case normalized",
			in:   Template{ID: "brand", Primary: "#ff6600", Secondary: "003366", Background: "ffffff", Text: "111111"},
		},
		{
			name:    "missing id",
			in:      Template{Primary: "FF6600", Secondary: "003366", Background: "FFFFFF", Text: "111111"},
			wantErr: true,
		},
		{
			name:    "short color",
			in:      Template{ID: "brand", Primary: "F60", Secondary: "003366", Background: "FFFFFF", Text: "111111"},
			wantErr: true,
		},
		{
			name:    "font with markup",
			in:      Template{ID: "brand", Primary: "FF6600", Secondary: "003366", Background: "FFFFFF", Text: "111111", HeadingFont: "<b>"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := toThemes([]Template{tt.in})
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTemplate) {
					t.Errorf("toThemes() error = %v, want ErrInvalidTemplate", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("toThemes() unexpected error: %v", err)
			}
			if got[0].Primary != "FF6600" || got[0].Background != "FFFFFF" {
				t.Errorf("colors not normalized: %+v", got[0])
			}
			if got[0].HeadingFont == "" {
				t.Error("heading font should default")
			}
		})
	}
}

func TestWithTemplates_OverridesAndExtends(t *testing.T) {
	t.Parallel()

	brand := Template{ID: "brand", Primary: "FF6600", Secondary: "003366", Background: "FFFFFF", Text: "111111"}
	b, _ := newTestBuilder(t, WithTemplates(brand))

	ids := b.TemplateIDs()
	if !slices.Contains(ids, "brand") || !slices.Contains(ids, DefaultTemplate) {
		t.Fatalf("TemplateIDs() = %v, want brand and the built-ins", ids)
	}

	req := quarterReview("", FormatPrint, false)
	req.Project.TemplateID = "BRAND"
	art, err := b.Build(context.Background(), req)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(art.Data), "--primary: #FF6600") {
		t.Error("template ids should match case-insensitively")
	}
}

func TestNewBuilder_InvalidTemplate(t *testing.T) {
	t.Parallel()

	_, err := NewBuilder(WithTemplates(Template{ID: "bad", Primary: "red", Secondary: "000000", Background: "FFFFFF", Text: "000000"}))
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("NewBuilder() error = %v, want ErrInvalidTemplate", err)
	}
}
