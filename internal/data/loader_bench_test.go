package data

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
)

// generateObjects returns a YAML document with n object definitions.
func generateObjects(n int) string {
	var sb strings.Builder
	sb.WriteString("objects:\n")
	for i := range n {
		fmt.Fprintf(&sb, "  - id: %d\n    name: Object %d\n    menu_actions: [\"Open\", \"\", \"Examine\"]\n    width: 1\n    length: 1\n", i, i)
	}
	return sb.String()
}

// BenchmarkLoad measures loading 10K object definitions, plain and zstd.
func BenchmarkLoad(b *testing.B) {
	dir := b.TempDir()
	doc := generateObjects(10000)

	plain := filepath.Join(dir, "objects.yaml")
	writeBenchFile(b, plain, []byte(doc))
	compressed := filepath.Join(dir, "objects.yaml.zst")
	writeBenchFile(b, compressed, zstdBytes(b, []byte(doc)))

	npcs := filepath.Join(dir, "npcs.yaml")
	writeBenchFile(b, npcs, []byte(testNpcsYAML))
	items := filepath.Join(dir, "items.yaml")
	writeBenchFile(b, items, []byte(testItemsYAML))

	for _, objects := range []string{plain, compressed} {
		b.Run(filepath.Ext(objects), func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := Load(Sources{Objects: objects, Npcs: npcs, Items: items}); err != nil {
					b.Fatalf("Load: %v", err)
				}
			}
		})
	}
}

// BenchmarkTable_Lookup measures the id-indexed lookup on the verification hot path.
func BenchmarkTable_Lookup(b *testing.B) {
	defs := make([]ObjectDefinition, 0, 30000)
	for i := range int32(30000) {
		defs = append(defs, ObjectDefinition{ID: i, MenuActions: []string{"Open"}})
	}
	table, err := NewTable(defs)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		_, _ = table.Lookup(i % 30000)
	}
}

func writeBenchFile(b *testing.B, path string, content []byte) {
	b.Helper()
	if err := os.WriteFile(path, content, 0o644); err != nil {
		b.Fatal(err)
	}
}

func zstdBytes(b *testing.B, content []byte) []byte {
	b.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		b.Fatal(err)
	}
	if _, err := enc.Write(content); err != nil {
		b.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		b.Fatal(err)
	}
	return buf.Bytes()
}
