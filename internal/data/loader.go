package data

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Sources lists the definition files to load. A path ending in ".zst" is
// read as a zstd-compressed YAML document.
type Sources struct {
	Objects string
	Npcs    string
	Items   string
}

// Definitions bundles every definition table the world needs.
type Definitions struct {
	Objects *Table[ObjectDefinition]
	Npcs    *Table[NpcDefinition]
	Items   *Table[ItemDefinition]
}

type objectFile struct {
	Objects []ObjectDefinition `yaml:"objects"`
}

type npcFile struct {
	Npcs []NpcDefinition `yaml:"npcs"`
}

type itemFile struct {
	Items []ItemDefinition `yaml:"items"`
}

// Load reads all definition files. Any failure is fatal for startup:
// the server must not run with a partial definition set.
func Load(src Sources) (*Definitions, error) {
	var objects objectFile
	if err := decodeFile(src.Objects, &objects); err != nil {
		return nil, fmt.Errorf("loading object definitions: %w", err)
	}
	var npcs npcFile
	if err := decodeFile(src.Npcs, &npcs); err != nil {
		return nil, fmt.Errorf("loading npc definitions: %w", err)
	}
	var items itemFile
	if err := decodeFile(src.Items, &items); err != nil {
		return nil, fmt.Errorf("loading item definitions: %w", err)
	}

	defs, err := Build(objects.Objects, npcs.Npcs, items.Items)
	if err != nil {
		return nil, err
	}

	slog.Info("loaded definitions",
		"objects", defs.Objects.Loaded(),
		"npcs", defs.Npcs.Loaded(),
		"items", defs.Items.Loaded())
	return defs, nil
}

// Build assembles tables from already-decoded records.
func Build(objects []ObjectDefinition, npcs []NpcDefinition, items []ItemDefinition) (*Definitions, error) {
	objectTable, err := NewTable(objects)
	if err != nil {
		return nil, fmt.Errorf("building object table: %w", err)
	}
	npcTable, err := NewTable(npcs)
	if err != nil {
		return nil, fmt.Errorf("building npc table: %w", err)
	}
	itemTable, err := NewTable(items)
	if err != nil {
		return nil, fmt.Errorf("building item table: %w", err)
	}
	return &Definitions{Objects: objectTable, Npcs: npcTable, Items: itemTable}, nil
}

func decodeFile(path string, out any) error {
	if path == "" {
		return fmt.Errorf("empty definitions path")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("opening zstd stream %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	yd := yaml.NewDecoder(r)
	yd.KnownFields(true)
	if err := yd.Decode(out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
