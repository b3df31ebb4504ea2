package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/osse101/satchel/internal/bootstrap"
	"github.com/osse101/satchel/internal/config"
	"github.com/osse101/satchel/internal/domain"
	"github.com/osse101/satchel/internal/inventory"
	"github.com/osse101/satchel/internal/save"
)

const compressedSuffix = ".zst"

// loadEngine builds an engine over CATALOG_PATH, or the embedded catalog
func loadEngine() (*inventory.Engine, error) {
	cat, err := bootstrap.LoadCatalog(&config.Config{CatalogPath: os.Getenv(config.EnvCatalogPath)})
	if err != nil {
		return nil, err
	}
	return inventory.NewEngine(cat), nil
}

// readSave decodes a plain, compressed or legacy save file
func readSave(path string, engine *inventory.Engine) (*save.Envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return save.DecodeAny(data, engine)
}

// writeSaveFile writes data, compressing it when path ends in .zst
func writeSaveFile(path string, data []byte) error {
	if strings.HasSuffix(path, compressedSuffix) && !save.IsCompressed(data) {
		var err error
		if data, err = save.Compress(data); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// NormalizeCommand rewrites a save as a normalized current-version envelope
type NormalizeCommand struct {
	out io.Writer
}

func (c *NormalizeCommand) Name() string  { return "normalize" }
func (c *NormalizeCommand) Usage() string { return "normalize <in> [out]" }
func (c *NormalizeCommand) Description() string {
	return "Repair a save (legacy or current) and print it, or write it to out"
}

func (c *NormalizeCommand) Run(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError(c)
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}
	env, err := readSave(args[0], engine)
	if err != nil {
		return err
	}
	data, err := save.Encode(env)
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return writeSaveFile(args[1], data)
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return err
	}
	pretty.WriteByte('\n')
	_, err = c.out.Write(pretty.Bytes())
	return err
}

// CompressCommand writes a zstd copy of a save file
type CompressCommand struct{}

func (c *CompressCommand) Name() string        { return "compress" }
func (c *CompressCommand) Usage() string       { return "compress <in> <out>" }
func (c *CompressCommand) Description() string { return "Write a zstd-compressed copy of a save" }

func (c *CompressCommand) Run(args []string) error {
	if len(args) != 2 {
		return usageError(c)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if save.IsCompressed(data) {
		return fmt.Errorf("%s is already compressed", args[0])
	}
	compressed, err := save.Compress(data)
	if err != nil {
		return err
	}
	return writeSaveFile(args[1], compressed)
}

// DecompressCommand writes the plain JSON inside a zstd save file
type DecompressCommand struct{}

func (c *DecompressCommand) Name() string        { return "decompress" }
func (c *DecompressCommand) Usage() string       { return "decompress <in> <out>" }
func (c *DecompressCommand) Description() string { return "Write the plain JSON of a compressed save" }

func (c *DecompressCommand) Run(args []string) error {
	if len(args) != 2 {
		return usageError(c)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if !save.IsCompressed(data) {
		return fmt.Errorf("%s is not a zstd save", args[0])
	}
	plain, err := save.Decompress(data)
	if err != nil {
		return err
	}
	return writeSaveFile(args[1], plain)
}

// InspectCommand prints a summary of a save's inventory
type InspectCommand struct {
	out io.Writer
}

func (c *InspectCommand) Name() string        { return "inspect" }
func (c *InspectCommand) Usage() string       { return "inspect <file>" }
func (c *InspectCommand) Description() string { return "Summarize the containers and equipment in a save" }

func (c *InspectCommand) Run(args []string) error {
	if len(args) != 1 {
		return usageError(c)
	}
	engine, err := loadEngine()
	if err != nil {
		return err
	}
	env, err := readSave(args[0], engine)
	if err != nil {
		return err
	}
	return printSummary(c.out, env, engine.Catalog())
}

func printSummary(out io.Writer, env *save.Envelope, cat inventory.Catalog) error {
	inv := env.Data.Inventory
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "version\t%d\n", env.Version)
	fmt.Fprintf(tw, "base\t%d/%d used\n", usedSlots(inv.BaseSlots), len(inv.BaseSlots))

	bagIDs := make([]string, 0, len(inv.BagSlotsByID))
	for id := range inv.BagSlotsByID {
		bagIDs = append(bagIDs, id)
	}
	slices.Sort(bagIDs)
	for _, id := range bagIDs {
		marker := ""
		if id == inv.EquippedBagID {
			marker = " (open)"
		}
		slots := inv.BagSlotsByID[id]
		fmt.Fprintf(tw, "bag %s%s\t%d/%d used\n", id, marker, usedSlots(slots), len(slots))
	}

	equipSlots := make([]string, 0, len(inv.EquippedItems))
	for slotID := range inv.EquippedItems {
		equipSlots = append(equipSlots, slotID)
	}
	slices.Sort(equipSlots)
	for _, slotID := range equipSlots {
		fmt.Fprintf(tw, "equipped %s\t%s\n", slotID, itemName(cat, inv.EquippedItems[slotID].ItemID))
	}

	fmt.Fprintf(tw, "seen\t%d items\n", len(inv.SeenItemIDs))
	return tw.Flush()
}

func usedSlots(slots []*domain.Slot) int {
	n := 0
	for _, s := range slots {
		if s != nil {
			n++
		}
	}
	return n
}

func itemName(cat inventory.Catalog, itemID string) string {
	if def, ok := cat.Item(itemID); ok && def.Name != "" {
		return def.Name
	}
	return itemID
}
