package partition

import (
	"bytes"
	"fmt"

	"github.com/sensorflash/nvsgen/pkg/codec"
)

// Encode lays data out as an NVS partition image of exactly size
// bytes. Namespaces are assigned indices 1, 2, ... in insertion order;
// each definition entry is followed by the namespace's data entries,
// also in insertion order. The result is deterministic: identical
// inputs produce byte-identical images.
func Encode(data *Data, size int, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	if size <= 0 || size%PageSize != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPartitionSize, size)
	}

	img := bytes.Repeat([]byte{erased}, size)
	pm := newPageManager(img)
	names := newNamespaceTable()

	for _, ns := range data.order {
		set := data.sets[ns]
		if len(set.order) == 0 {
			continue
		}
		idx, err := names.assign(ns)
		if err != nil {
			return nil, err
		}
		def, err := codec.NamespaceEntry(ns, idx)
		if err != nil {
			return nil, err
		}
		if err := place(pm, def); err != nil {
			return nil, err
		}
		o.log.Debug().Str("namespace", ns).Uint8("index", idx).Msg("namespace defined")

		for _, key := range set.order {
			e, err := codec.NewEntry(idx, key, set.values[key])
			if err != nil {
				return nil, fmt.Errorf("namespace %q: %w", ns, err)
			}
			if err := place(pm, e); err != nil {
				return nil, fmt.Errorf("namespace %q: %w", ns, err)
			}
			o.log.Debug().
				Str("namespace", ns).
				Str("key", key).
				Stringer("type", e.Type).
				Int("span", e.Span).
				Msg("entry encoded")
		}
	}

	pm.seal()
	return img, nil
}

func place(pm *pageManager, e *codec.Entry) error {
	page, slot, err := pm.reserve(e.Span)
	if err != nil {
		return fmt.Errorf("key %q: %w", e.Key, err)
	}
	pm.write(page, slot, e)
	return nil
}
