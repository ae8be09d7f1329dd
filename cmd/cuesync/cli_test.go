package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cuesync/internal/project"
)

const testProject = `{
  "Timeline": {
    "VideoInfo": {"FPS": 60, "Hz": 44100, "Width": 1920, "Height": 1080},
    "Items": [
      {"$type": "` + project.TypeVoice + `", "Layer": 1, "Frame": 100, "Length": 10,
       "CharacterName": "reimu", "Serif": "start line"},
      {"$type": "` + project.TypeVoice + `", "Layer": 1, "Frame": 140, "Length": 20,
       "CharacterName": "marisa", "Serif": "end line"}
    ]
  }
}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCLITestConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	body := "[dimension_cache]\nenabled = false\n\n[logging]\nformat = \"json\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConvertCommandWritesOutput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_ROOT", "")
	configPath := writeCLITestConfig(t, dir)

	scriptPath := filepath.Join(dir, "script.yaml")
	scriptBody := "- text: banner\n- reimu: start line\n- marisa: end line\n"
	if err := os.WriteFile(scriptPath, []byte(scriptBody), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	projectPath := filepath.Join(dir, "in.ymmp")
	if err := os.WriteFile(projectPath, []byte(testProject), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	outputPath := filepath.Join(dir, "out.ymmp")

	out, err := runCLI(t, "--config", configPath, "convert", scriptPath, projectPath, outputPath, "--summary")
	if err != nil {
		t.Fatalf("convert failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Inserted 1 item(s)") {
		t.Fatalf("missing insertion report: %q", out)
	}
	if !strings.Contains(out, "banner") {
		t.Fatalf("summary table should list the new text item: %q", out)
	}

	doc, err := project.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(doc.Timeline.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(doc.Timeline.Items))
	}
}

func TestConvertCommandFailsOnUnmatchedCue(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_ROOT", "")
	configPath := writeCLITestConfig(t, dir)

	scriptPath := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(scriptPath, []byte("- text: banner\n- reimu: no such line\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	projectPath := filepath.Join(dir, "in.ymmp")
	if err := os.WriteFile(projectPath, []byte(testProject), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	outputPath := filepath.Join(dir, "out.ymmp")

	if _, err := runCLI(t, "--config", configPath, "convert", scriptPath, projectPath, outputPath); err == nil {
		t.Fatal("expected convert to fail")
	}
	if _, err := os.Stat(outputPath); err == nil {
		t.Fatal("output must not exist after a failed run")
	}
}

func TestScriptCommandCSV(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_ROOT", "")
	configPath := writeCLITestConfig(t, dir)

	scriptPath := filepath.Join(dir, "script.yaml")
	body := "- a stage direction\n- reimu: \" padded \"\n- image: a.png\n- marisa: hi\n"
	if err := os.WriteFile(scriptPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "script", scriptPath)
	if err != nil {
		t.Fatalf("script command failed: %v", err)
	}
	want := "reimu,padded\nmarisa,hi\n"
	if out != want {
		t.Fatalf("unexpected csv output: got %q want %q", out, want)
	}
}

func TestScriptCommandJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_ROOT", "")
	configPath := writeCLITestConfig(t, dir)

	scriptPath := filepath.Join(dir, "script.yaml")
	if err := os.WriteFile(scriptPath, []byte("- reimu: hello\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "script", scriptPath, "--output", "json")
	if err != nil {
		t.Fatalf("script command failed: %v", err)
	}
	if !strings.Contains(out, `"character": "reimu"`) {
		t.Fatalf("unexpected json output: %q", out)
	}
}

func TestConfigShowPrintsResolvedConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PROJECT_ROOT", "")
	configPath := writeCLITestConfig(t, dir)

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(out, "insertion_layer = 3") {
		t.Fatalf("expected defaults in output: %q", out)
	}
}
