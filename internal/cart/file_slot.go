package cart

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileSlot persists a cart as a JSON file under <dir>/<SlotKey>/. It is the
// zero-infrastructure backend: the storefront works without Redis, at the
// cost of carts living on one host only.
type FileSlot struct {
	path string
}

func NewFileSlot(dir, name string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, SlotKey, name+".json")}
}

func (f *FileSlot) Load(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read cart file")
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.Wrap(err, "parse cart file")
	}
	return items, nil
}

func (f *FileSlot) Save(ctx context.Context, items []Item) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrap(err, "create cart dir")
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return errors.Wrap(err, "write cart file")
	}
	return nil
}
