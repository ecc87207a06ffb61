package testutil

import (
	"path/filepath"
	"testing"
)

func TestCreateFileAndHelpers(t *testing.T) {
	dir := t.TempDir()

	path := CreateFile(t, dir, "sub/data.lua", "return {}")
	if !FileExists(t, path) {
		t.Fatalf("expected file to exist: %s", path)
	}
	if !DirExists(t, filepath.Join(dir, "sub")) {
		t.Fatal("expected parent directory to be created")
	}

	AssertFileContent(t, path, "return {}")
	AssertNoFile(t, filepath.Join(dir, "missing.lua"))
}

func TestSetupTestProject(t *testing.T) {
	tp := SetupTestProject(t, "test-mod", "0.1.0")

	if tp.BaseName() != "test-mod_0.1.0" {
		t.Errorf("unexpected base name: %s", tp.BaseName())
	}

	manifest := filepath.Join(tp.Root, "info.json")
	if !FileExists(t, manifest) {
		t.Fatal("expected manifest to be written")
	}

	content := ReadFile(t, manifest)
	if content != ManifestJSON("test-mod", "0.1.0") {
		t.Errorf("unexpected manifest content: %s", content)
	}
}
