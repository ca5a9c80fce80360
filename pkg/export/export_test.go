package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"reposcope/pkg/model"
)

func exportTree() *model.TreeNode {
	return &model.TreeNode{
		Name: "repo", Path: "", Kind: model.KindDir,
		Children: []*model.TreeNode{
			{
				Name: "src", Path: "src", Kind: model.KindDir,
				Children: []*model.TreeNode{
					{Name: "main.go", Path: "src/main.go", Kind: model.KindFile, Language: "Go",
						Metrics: model.Metrics{Lines: 300, Bytes: 9000}, LastModified: time.Now()},
					{Name: "util.go", Path: "src/util.go", Kind: model.KindFile, Language: "Go",
						Metrics: model.Metrics{Lines: 100, Bytes: 3000}, LastModified: time.Now()},
				},
			},
			{Name: "README.md", Path: "README.md", Kind: model.KindFile, Language: "Markdown",
				Metrics: model.Metrics{Lines: 40, Bytes: 1200}, LastModified: time.Now()},
		},
	}
}

func TestRenderFile_PNGAndSVG(t *testing.T) {
	tree := exportTree()
	cfg := model.DefaultConfig()
	tmp := t.TempDir()

	for _, name := range []string{"map.png", "map.svg"} {
		path := filepath.Join(tmp, name)
		if err := RenderFile(tree, cfg, 640, 400, path); err != nil {
			t.Fatalf("RenderFile(%s) failed: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("output %s missing: %v", name, err)
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", name)
		}
	}
}

func TestRenderFile_SVGContainsTiles(t *testing.T) {
	tree := exportTree()
	path := filepath.Join(t.TempDir(), "map.svg")

	if err := RenderSVG(tree, model.DefaultConfig(), 640, 400, path); err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Error("output is not an svg document")
	}
	if !strings.Contains(svg, "main.go") {
		t.Error("expected the dominant file label in the svg output")
	}
}

func TestRenderFile_UnsupportedExtension(t *testing.T) {
	err := RenderFile(exportTree(), model.DefaultConfig(), 100, 100, "map.bmp")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestNewPreviewServer(t *testing.T) {
	server := NewPreviewServer("/tmp/map.png", 9050)

	if server == nil {
		t.Fatal("NewPreviewServer returned nil")
	}
	if server.imagePath != "/tmp/map.png" {
		t.Errorf("expected imagePath '/tmp/map.png', got %s", server.imagePath)
	}
	if server.port != 9050 {
		t.Errorf("expected port 9050, got %d", server.port)
	}
}

func TestPreviewServer_URL(t *testing.T) {
	server := NewPreviewServer("/tmp/map.png", 9002)

	expected := "http://localhost:9002"
	if server.URL() != expected {
		t.Errorf("expected URL() to return %s, got %s", expected, server.URL())
	}
}

func TestPreviewServer_StartMissingImage(t *testing.T) {
	server := NewPreviewServer(filepath.Join(t.TempDir(), "absent.png"), 9003)
	if err := server.Start(); err == nil {
		t.Fatal("expected error when the image file does not exist")
	}
}

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(19000, 19100)
	if err != nil {
		t.Errorf("FindAvailablePort failed: %v", err)
	}
	if port < 19000 || port > 19100 {
		t.Errorf("port %d is outside expected range 19000-19100", port)
	}
}
