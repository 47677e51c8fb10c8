package partition

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/sensorflash/nvsgen/pkg/codec"
)

// Diagnostic locates one checksum anomaly found while verifying an
// image. Slot is -1 for page-level anomalies.
type Diagnostic struct {
	Page int
	Slot int
	Err  error
}

func (d Diagnostic) Error() string {
	if d.Slot < 0 {
		return fmt.Sprintf("page %d: %v", d.Page, d.Err)
	}
	return fmt.Sprintf("page %d slot %d: %v", d.Page, d.Slot, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Decode reconstructs the namespace/key/value content of img. The
// walk is best-effort: unused slots are skipped, unknown type tags are
// passed over, and data entries whose namespace was never defined are
// surfaced under a synthetic "ns_<index>" name rather than dropped.
// Checksums are not validated; use DecodeVerify for that.
func Decode(img []byte, opts ...Option) (*Data, error) {
	data, _, err := decode(img, false, newOptions(opts))
	return data, err
}

// DecodeVerify decodes img and additionally recomputes every page
// header and entry checksum, reporting mismatches as diagnostics
// without aborting the walk.
func DecodeVerify(img []byte, opts ...Option) (*Data, []Diagnostic, error) {
	return decode(img, true, newOptions(opts))
}

func decode(img []byte, verify bool, o *options) (*Data, []Diagnostic, error) {
	if len(img) == 0 || len(img)%PageSize != 0 {
		return nil, nil, fmt.Errorf("%w: image is %d bytes", ErrInvalidPartitionSize, len(img))
	}

	data := NewData()
	names := make(map[byte]string)
	var diags []Diagnostic

	for page := 0; page < len(img)/PageSize; page++ {
		buf := img[page*PageSize : (page+1)*PageSize]
		state := binary.LittleEndian.Uint32(buf[0:4])
		switch state {
		case pageEmpty, 0:
			continue
		case pageActive, pageFull:
		default:
			o.log.Warn().Int("page", page).Uint32("state", state).Msg("skipping page in unrecognized state")
			continue
		}

		if verify {
			if stored := binary.LittleEndian.Uint32(buf[28:32]); stored != codec.Checksum(buf[:28]) {
				diags = append(diags, Diagnostic{Page: page, Slot: -1, Err: ErrCorruptPageHeader})
			}
		}

		for slot := 1; slot < EntriesPerPage; {
			off := slotOffset(slot)
			head := buf[off : off+codec.EntrySize]
			if head[0] == erased {
				slot++
				continue
			}

			span := int(head[2])
			if span < 1 || slot+span > EntriesPerPage {
				o.log.Warn().Int("page", page).Int("slot", slot).Int("span", span).Msg("skipping entry with invalid span")
				slot++
				continue
			}

			if verify {
				if stored := binary.LittleEndian.Uint32(head[4:8]); stored != codec.EntryChecksum(head) {
					diags = append(diags, Diagnostic{Page: page, Slot: slot, Err: ErrCorruptEntry})
				}
			}

			e, err := codec.ParseEntry(buf[off : off+span*codec.EntrySize])
			if errors.Is(err, codec.ErrUnknownType) {
				// Possibly written by a newer producer; skip a single
				// slot and keep walking.
				o.log.Warn().Int("page", page).Int("slot", slot).Uint8("tag", head[1]).Msg("skipping entry with unknown type tag")
				slot++
				continue
			}
			if err != nil {
				o.log.Warn().Int("page", page).Int("slot", slot).Err(err).Msg("skipping malformed entry")
				slot += span
				continue
			}

			if e.IsNamespace() {
				names[e.Data[0]] = e.Key
			} else {
				v, err := e.Value()
				if err != nil {
					o.log.Warn().Int("page", page).Int("slot", slot).Err(err).Msg("skipping undecodable entry")
					slot += span
					continue
				}
				ns, ok := names[e.Namespace]
				if !ok {
					ns = fmt.Sprintf("ns_%d", e.Namespace)
				}
				data.Set(ns, e.Key, v)
			}
			slot += e.Span
		}
	}

	return data, diags, nil
}
