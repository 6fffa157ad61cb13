package main

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"agolink/internal/testsupport"
)

func TestUploadRecordsProgramAndTrace(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "Tri-X 400.json")

	out, _, err := runCLI(t, env, "upload", recipePath, "--developer", "Rodinal", "--dilution", "1+50")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "Uploaded Tri-X 400.json to AGO as _P_C0_")
	requireContains(t, out, "via API")

	out, _, err = runCLI(t, env, "programs", "list")
	if err != nil {
		t.Fatalf("programs list: %v", err)
	}
	requireContains(t, out, "Tri-X 400 - Rodinal 1+50")
	requireContains(t, out, "POST")

	out, _, err = runCLI(t, env, "trace", "show")
	if err != nil {
		t.Fatalf("trace show: %v", err)
	}
	requireContains(t, out, "=== upload ")
	requireContains(t, out, "field_setting=json")
	requireContains(t, out, "success=Uploaded Tri-X 400.json")
	requireContains(t, out, "primary_status=200 OK")
}

func TestUploadJSONOutputMatchesDevice(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "hp5.json")

	out, _, err := runCLI(t, env, "upload", recipePath, "--film", "HP5+", "--json")
	if err != nil {
		t.Fatalf("upload --json: %v", err)
	}
	var result struct {
		Filename    string `json:"ago_filename"`
		DisplayName string `json:"display_name"`
		Method      string `json:"method"`
		Attempts    []struct {
			Succeeded bool `json:"succeeded"`
		} `json:"attempts"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !strings.HasPrefix(result.Filename, "_P_C0_") || !strings.HasSuffix(result.Filename, ".txt") {
		t.Fatalf("unexpected device filename %q", result.Filename)
	}
	if result.DisplayName != "HP5+" || result.Method != http.MethodPost {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(result.Attempts) != 1 || !result.Attempts[0].Succeeded {
		t.Fatalf("expected one accepted attempt, got %+v", result.Attempts)
	}

	body, ok := env.device.program(result.Filename)
	if !ok {
		t.Fatalf("device did not receive %s", result.Filename)
	}
	requireContains(t, string(body), `"name":"HP5+","designator":"C2"`)
}

func TestUploadFailureListsEveryAttempt(t *testing.T) {
	env := setupCLITestEnv(t)
	env.device.failUploads(http.StatusInternalServerError)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "fp4.json")

	_, _, err := runCLI(t, env, "upload", recipePath, "--endpoint", "/upload")
	if err == nil {
		t.Fatal("expected upload failure")
	}
	msg := err.Error()
	requireContains(t, msg, "Upload failed. Tried: POST ")
	requireContains(t, msg, "; PUT ")
	requireContains(t, msg, "/upload raw-json -> HTTP 404")

	out, _, err := runCLI(t, env, "programs", "list")
	if err != nil {
		t.Fatalf("programs list: %v", err)
	}
	requireContains(t, out, "No programs uploaded")

	out, _, err = runCLI(t, env, "trace", "show")
	if err != nil {
		t.Fatalf("trace show: %v", err)
	}
	requireContains(t, out, "error=Upload failed. Tried:")
}

func TestUploadMissingRecipe(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "upload", filepath.Join(env.baseDir, "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing recipe")
	}
	requireContains(t, err.Error(), "read recipe")
}

func TestUploadReportsInvalidRecipeVerbatim(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteFile(t, filepath.Join(env.baseDir, "broken.json"), `{"category":"BW"}`)

	_, _, err := runCLI(t, env, "upload", recipePath)
	if err == nil {
		t.Fatal("expected error for recipe without steps")
	}
	if got := err.Error(); got != "invalid recipe: missing steps array" {
		t.Fatalf("unexpected error %q", got)
	}
	if len(env.device.requests) != 0 {
		t.Fatal("no request should reach the device")
	}
}

func TestBuildPrintsPayloadWithoutUploading(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "Delta_100.json")

	out, _, err := runCLI(t, env, "build", recipePath, "--developer", "D-76")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	requireContains(t, out, `"name":"Delta 100"`)
	requireContains(t, out, `"expanded_title":" - D-76"`)
	requireContains(t, out, `"min_temperature":18.0`)
	if len(env.device.requests) != 0 {
		t.Fatalf("build contacted the device: %v", env.device.requests)
	}
}

func TestTraceClear(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "pan.json")
	if _, _, err := runCLI(t, env, "upload", recipePath); err != nil {
		t.Fatalf("upload: %v", err)
	}

	out, _, err := runCLI(t, env, "trace", "clear")
	if err != nil {
		t.Fatalf("trace clear: %v", err)
	}
	requireContains(t, out, "Cleared "+env.cfg.Paths.TraceLog)

	out, _, err = runCLI(t, env, "trace", "show")
	if err != nil {
		t.Fatalf("trace show: %v", err)
	}
	requireContains(t, out, "Upload trace is empty")
}

func TestUploadFallsBackToCompatibilityEndpoint(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithUploadEndpoint(legacyUploadPath))
	env.device.failUploads(http.StatusInternalServerError)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "acros.json")

	out, _, err := runCLI(t, env, "upload", recipePath)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	requireContains(t, out, "Uploaded acros.json via compatibility endpoint http://"+env.device.host()+legacyUploadPath)
	requireContains(t, out, "HTTP 500 Internal Server Error")
	requireContains(t, out, "ACCEPTED")
	row := attemptRow(out, "3")
	if !strings.Contains(row, legacyUploadPath) || !strings.Contains(row, "HTTP 200") || !strings.Contains(row, "yes") {
		t.Fatalf("expected accepted compatibility attempt in row 3, got %q", row)
	}

	if _, ok := env.device.program(legacyUploadPath); !ok {
		t.Fatal("compatibility endpoint did not receive the payload")
	}
}

func TestTraceShowLastLines(t *testing.T) {
	env := setupCLITestEnv(t)
	recipePath := testsupport.WriteRecipe(t, env.baseDir, "fomapan.json")
	if _, _, err := runCLI(t, env, "upload", recipePath); err != nil {
		t.Fatalf("upload: %v", err)
	}

	out, _, err := runCLI(t, env, "trace", "show", "--lines", "3")
	if err != nil {
		t.Fatalf("trace show --lines: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", out)
	}
	requireContains(t, lines[0], "primary_status=")
	requireContains(t, lines[1], "primary_body=")
	requireNotContains(t, out, "=== upload")
}

func attemptRow(out, number string) string {
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "│ "+number+" │") {
			return line
		}
	}
	return ""
}
