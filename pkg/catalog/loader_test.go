package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikogura/storydocs/pkg/classify"
	"github.com/nikogura/storydocs/pkg/props"
)

const buttonYAML = `title: Core Components/Button
parameters:
  codeCoverage: 100
  overview: README.md
  design:
    type: figma
    url: https://www.google.com
props:
  variant:
    type: "'primary' | 'secondary'"
    required: true
  aria-label:
    type: string
stories:
  - name: primary
    args:
      id: example-button
      variant: primary
  - name: secondaryPOC
    maturity: poc
    parameters:
      codeCoverage: 55
      overview: Inline overview text.
`

func writeFile(t *testing.T, dir, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0750)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	err = os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := File{
		Title: "Templates/Card",
		Props: props.Catalog{
			"title": {Type: "string", Required: true},
		},
		Stories: []StoryEntry{
			{Name: "Default", Args: map[string]any{"title": "Hello"}},
		},
	}

	data, err := json.MarshalIndent(testFile, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test catalog: %v", err)
	}
	path := writeFile(t, tmpDir, "card"+SuffixJSON, string(data))

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if loaded.Title != "Templates/Card" {
		t.Errorf("Expected title 'Templates/Card', got '%s'", loaded.Title)
	}

	if len(loaded.Stories) != 1 {
		t.Errorf("Expected 1 story, got %d", len(loaded.Stories))
	}

	if !loaded.Props["title"].Required {
		t.Error("Expected prop 'title' to be required")
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "button"+SuffixYAML, buttonYAML)

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load YAML catalog: %v", err)
	}

	if len(loaded.Stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(loaded.Stories))
	}

	if loaded.Props["variant"].Type != "'primary' | 'secondary'" {
		t.Errorf("Unexpected variant type: %s", loaded.Props["variant"].Type)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/button.stories.json")
	if err == nil {
		t.Error("Expected error loading nonexistent file, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "bad"+SuffixJSON, "not valid json")

	_, err := Load(path)
	if err == nil {
		t.Error("Expected error loading invalid JSON, got nil")
	}
}

func TestLoadYAMLNotRepresentableAsJSON(t *testing.T) {
	tests := map[string]string{
		"infinite coverage": "title: Core Components/Button\nparameters:\n  codeCoverage: .inf\nstories:\n  - name: Primary\n",
		"NaN arg":           "title: Core Components/Button\nstories:\n  - name: Primary\n    args:\n      size: .nan\n",
		"integer arg key":   "title: Core Components/Button\nstories:\n  - name: Primary\n    args:\n      sizes:\n        1: small\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "button"+SuffixYAML, content)

			_, err := Load(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), "cannot be represented as JSON") {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		file      File
		wantError bool
	}{
		{
			name: "valid file",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary"}},
			},
			wantError: false,
		},
		{
			name:      "missing title",
			file:      File{Stories: []StoryEntry{{Name: "Primary"}}},
			wantError: true,
		},
		{
			name:      "no stories",
			file:      File{Title: "Core Components/Button"},
			wantError: true,
		},
		{
			name: "unnamed story",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: " "}},
			},
			wantError: true,
		},
		{
			name: "duplicate story",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary"}, {Name: "Primary"}},
			},
			wantError: true,
		},
		{
			name: "names resolving to the same id",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "With Image"}, {Name: "with_image"}},
			},
			wantError: true,
		},
		{
			name: "explicit id colliding with a derived id",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary"}, {Name: "Main", ID: "core-components-button--primary"}},
			},
			wantError: true,
		},
		{
			name: "explicit id escaping the output directory",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary", ID: "../../escape"}},
			},
			wantError: true,
		},
		{
			name: "explicit id not in slug form",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary", ID: "Button Primary"}},
			},
			wantError: true,
		},
		{
			name: "explicit id in slug form",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary", ID: "button--main"}},
			},
			wantError: false,
		},
		{
			name: "unknown category",
			file: File{
				Title:    "Core Components/Button",
				Category: "widget",
				Stories:  []StoryEntry{{Name: "Primary"}},
			},
			wantError: true,
		},
		{
			name: "unknown story maturity",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary", Maturity: "alpha"}},
			},
			wantError: true,
		},
		{
			name: "coverage not a number",
			file: File{
				Title:      "Core Components/Button",
				Parameters: json.RawMessage(`{"codeCoverage": "high"}`),
				Stories:    []StoryEntry{{Name: "Primary"}},
			},
			wantError: true,
		},
		{
			name: "parameters not an object",
			file: File{
				Title:   "Core Components/Button",
				Stories: []StoryEntry{{Name: "Primary", Parameters: json.RawMessage(`[]`)}},
			},
			wantError: true,
		},
		{
			name: "overview not a string",
			file: File{
				Title:      "Core Components/Button",
				Parameters: json.RawMessage(`{"overview": 3}`),
				Stories:    []StoryEntry{{Name: "Primary"}},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestLoaderBuild(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "button/button"+SuffixYAML, buttonYAML)
	writeFile(t, tmpDir, "button/README.md", "# Button\n\nButtons trigger actions.\n")

	component, err := NewLoader(nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to load component: %v", err)
	}

	if len(component.Stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(component.Stories))
	}

	primary, ok := component.Story("core-components-button--primary")
	if !ok {
		t.Fatal("Expected to find primary story by id")
	}

	if primary.Name != "Primary" {
		t.Errorf("Expected display name 'Primary', got '%s'", primary.Name)
	}

	if primary.Parameters.CodeCoverage() == nil || *primary.Parameters.CodeCoverage() != 100 {
		t.Error("Expected primary story to inherit component coverage of 100")
	}

	if primary.Classification().Category != classify.CategoryCoreComponent {
		t.Errorf("Expected core component, got %s", primary.Classification().Category)
	}

	content, err := primary.Parameters.Overview()
	if err != nil {
		t.Fatalf("Failed to render overview: %v", err)
	}
	if !strings.Contains(content, "Buttons trigger actions.") {
		t.Errorf("Unexpected overview content: %q", content)
	}

	secondary, ok := component.Story("Secondary POC")
	if !ok {
		t.Fatal("Expected to find secondary story by name")
	}

	if *secondary.Parameters.CodeCoverage() != 55 {
		t.Errorf("Expected story coverage override of 55, got %v", *secondary.Parameters.CodeCoverage())
	}

	if secondary.Classification().Maturity != classify.MaturityPOC {
		t.Errorf("Expected explicit POC maturity, got %s", secondary.Classification().Maturity)
	}

	content, err = secondary.Parameters.Overview()
	if err != nil {
		t.Fatalf("Failed to render inline overview: %v", err)
	}
	if content != "Inline overview text." {
		t.Errorf("Unexpected inline overview: %q", content)
	}

	if secondary.Parameters.Get("design").Get("type").String() != "figma" {
		t.Error("Expected secondary story to inherit design parameters")
	}
}

func TestLoaderBuildRejectsConflictingIDs(t *testing.T) {
	tests := []struct {
		name    string
		stories []StoryEntry
	}{
		{
			name:    "same derived id",
			stories: []StoryEntry{{Name: "With Image"}, {Name: "with_image"}},
		},
		{
			name:    "path in explicit id",
			stories: []StoryEntry{{Name: "Escape", ID: "../../escape"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := File{Title: "Core Components/Button", Stories: tt.stories}
			_, err := NewLoader(nil, nil).Build(context.Background(), file, "button"+SuffixYAML)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoaderOverviewMissingDocument(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "button"+SuffixYAML, buttonYAML)

	component, err := NewLoader(nil, nil).Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to load component: %v", err)
	}

	_, err = component.Stories[0].Parameters.Overview()
	if err == nil {
		t.Error("Expected error rendering missing overview document, got nil")
	}
}

func TestIsCatalogFile(t *testing.T) {
	tests := map[string]bool{
		"button.stories.json": true,
		"button.stories.yaml": true,
		"button.stories.yml":  true,
		"button.json":         false,
		"button.stories.tsx":  false,
	}

	for name, want := range tests {
		if IsCatalogFile(name) != want {
			t.Errorf("IsCatalogFile(%q) = %v, want %v", name, !want, want)
		}
	}
}
