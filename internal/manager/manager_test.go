package manager

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"loctab/internal/report"
	"loctab/internal/tabular"
)

func writeTable(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "translations.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndGenerate(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "class,key,en-us,zh-cn\ntext,title,Hello,你好\n")

	mgr := New(path, dir, report.Discard)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := mgr.Generate(nil); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "en-us.js"))
	if err != nil {
		t.Fatalf("reading generated document: %v", err)
	}
	want := "export default {\n  text: {\n    title: 'Hello',\n  },\n};"
	if string(data) != want {
		t.Errorf("en-us.js = %q; want %q", data, want)
	}

	data, err = os.ReadFile(filepath.Join(dir, "zh-cn.js"))
	if err != nil {
		t.Fatalf("reading generated document: %v", err)
	}
	if !strings.Contains(string(data), "title: '你好'") {
		t.Errorf("zh-cn.js missing translated value: %q", data)
	}
}

func TestLoadRejectsKeyOnlyTable(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "key,en-us\nhello,Hi\n")

	mgr := New(path, dir, report.Discard)
	if err := mgr.Load(); !errors.Is(err, tabular.ErrMissingColumns) {
		t.Errorf("Load = %v; want ErrMissingColumns", err)
	}
}

func TestScanAppliesPendingUpdatesOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "class,key,en-us,zh-cn\ntext,title,Hello,你好\n")

	mgr := New(path, dir, report.Discard)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// No documents exist yet, so every cell is pending.
	applied, err := mgr.Scan()
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("first Scan applied %d updates; want 2", applied)
	}
	if _, err := os.Stat(filepath.Join(dir, "en-us.js")); err != nil {
		t.Errorf("Scan did not regenerate documents: %v", err)
	}

	applied, err = mgr.Scan()
	if err != nil {
		t.Fatalf("second Scan failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Scan applied %d updates; want 0", applied)
	}
}

func TestUpdateWarnsOnNewRowAndColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "class,key,en-us\ntext,title,Hello\n")

	rec := &report.Recorder{}
	mgr := New(path, dir, rec)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	mgr.Update("text", "title", "en-us", "Hi")
	if len(rec.Warns) != 0 {
		t.Errorf("updating an existing cell warned: %v", rec.Warns)
	}
	row, ok := mgr.Table().Find("text", "title")
	if !ok || row.Values["en-us"] != "Hi" {
		t.Errorf("cell not updated: %v", row)
	}

	mgr.Update("text", "body", "de-de", "Hallo")
	if len(rec.Warns) != 2 {
		t.Errorf("new row and new column should warn twice, got %v", rec.Warns)
	}
}

func TestAddWarnsOnExistingEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, "class,key,en-us\ntext,title,Hello\n")

	rec := &report.Recorder{}
	mgr := New(path, dir, rec)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	mgr.Add("tip", "hint", map[string]string{"en-us": "Try it"})
	if len(rec.Warns) != 0 {
		t.Errorf("adding a fresh entry warned: %v", rec.Warns)
	}

	mgr.Add("text", "title", map[string]string{"en-us": "Hey"})
	if len(rec.Warns) != 1 {
		t.Errorf("re-adding an existing entry should warn, got %v", rec.Warns)
	}
	row, _ := mgr.Table().Find("text", "title")
	if row.Values["en-us"] != "Hey" {
		t.Errorf("re-add did not update the value: %v", row.Values)
	}
}

func TestMergeNestedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "translations.csv")

	zh := "export default {\n  text: {\n    title: '你好',\n    body: '正文',\n  },\n};"
	en := "export default {\n  text: {\n    title: 'Hello',\n  },\n};"
	if err := os.WriteFile(filepath.Join(dir, "zh-cn.js"), []byte(zh), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "en-us.js"), []byte(en), 0o644); err != nil {
		t.Fatal(err)
	}

	mgr := New(path, dir, report.Discard)
	if err := mgr.MergeNested([]string{"zh_cn", "en_us"}); err != nil {
		t.Fatalf("MergeNested failed: %v", err)
	}

	tab := mgr.Table()
	if tab.Len() != 2 {
		t.Fatalf("merged table has %d rows; want 2", tab.Len())
	}
	row, ok := tab.Find("text", "title")
	if !ok {
		t.Fatal("merged table is missing text/title")
	}
	if row.Values["zh_cn"] != "你好" || row.Values["en_us"] != "Hello" {
		t.Errorf("text/title values = %v", row.Values)
	}
	if row, ok = tab.Find("text", "body"); !ok {
		t.Fatal("merged table is missing text/body")
	} else if _, present := row.Values["en_us"]; present {
		t.Errorf("text/body should have no en_us cell, got %q", row.Values["en_us"])
	}

	// The merge also saves the table; it must load back identically.
	saved, err := tabular.Read(path, report.Discard)
	if err != nil {
		t.Fatalf("reading saved table: %v", err)
	}
	if saved.Len() != 2 {
		t.Errorf("saved table has %d rows; want 2", saved.Len())
	}
}

func TestMergeNestedMissingDocument(t *testing.T) {
	dir := t.TempDir()
	mgr := New(filepath.Join(dir, "translations.csv"), dir, report.Discard)

	err := mgr.MergeNested([]string{"zh_cn"})
	if !errors.Is(err, tabular.ErrInputNotFound) {
		t.Errorf("MergeNested = %v; want ErrInputNotFound", err)
	}
}

func TestMergeAndSyncJSON(t *testing.T) {
	dir := t.TempDir()
	jsonDir := filepath.Join(dir, "translations")
	if err := os.MkdirAll(jsonDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeJSON := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(jsonDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	writeJSON("zh_cn.json", "{\n    \"greet\": \"你好\",\n    \"bye\": \"再见\"\n}")
	writeJSON("en_us.json", "{\n    \"greet\": \"Hello\"\n}")

	tablePath := filepath.Join(dir, "merged.csv")
	tab, err := MergeJSON(jsonDir, []string{"zh_cn", "en_us"}, "zh_cn", tablePath, report.Discard)
	if err != nil {
		t.Fatalf("MergeJSON failed: %v", err)
	}
	if !tab.KeyOnly {
		t.Error("merged JSON table should be key-only")
	}
	if tab.Len() != 2 {
		t.Errorf("merged table has %d rows; want 2", tab.Len())
	}

	// Fill the missing translation in the table and push it back.
	tab.SetCell("", "bye", "en_us", "Bye")
	if err := tabular.Write(tablePath, tab); err != nil {
		t.Fatalf("writing updated table: %v", err)
	}
	changed, err := SyncJSON(tablePath, jsonDir, report.Discard)
	if err != nil {
		t.Fatalf("SyncJSON failed: %v", err)
	}
	if changed != 1 {
		t.Errorf("SyncJSON changed %d entries; want 1", changed)
	}

	data, err := os.ReadFile(filepath.Join(jsonDir, "en_us.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\"bye\": \"Bye\"") {
		t.Errorf("en_us.json missing synced entry: %s", data)
	}
}
