package partition

import (
	"encoding/binary"
	"fmt"

	"github.com/sensorflash/nvsgen/pkg/codec"
)

// pageManager places entries into an image buffer. It owns the current
// page and next-free-slot cursor, stamps the bitmap slot when a page
// is opened, and writes the ACTIVE header when a page is sealed.
type pageManager struct {
	img  []byte
	page int
	slot int
}

func newPageManager(img []byte) *pageManager {
	pm := &pageManager{img: img}
	pm.open()
	return pm
}

func (pm *pageManager) pages() int {
	return len(pm.img) / PageSize
}

func (pm *pageManager) pageBuf(page int) []byte {
	return pm.img[page*PageSize : (page+1)*PageSize]
}

func slotOffset(slot int) int {
	return pageHeaderSize + slot*codec.EntrySize
}

// open stamps the bitmap slot of the current page and resets the
// cursor to slot 1. The bitmap contents are cosmetic; decoders detect
// used slots by the namespace byte.
func (pm *pageManager) open() {
	buf := pm.pageBuf(pm.page)
	buf[pageHeaderSize] = 0xAA
	buf[pageHeaderSize+1] = 0xAA
	pm.slot = 1
}

// reserve returns the page and starting slot for an entry occupying
// span consecutive slots. A span never crosses a page boundary: when
// it does not fit, the current page is sealed and the entry starts on
// the next page, leaving the remaining slots erased.
func (pm *pageManager) reserve(span int) (page, slot int, err error) {
	if span > usableSlots {
		return 0, 0, fmt.Errorf("%w: entry spans %d slots, a page holds %d", ErrPartitionTooSmall, span, usableSlots)
	}
	if pm.slot+span > EntriesPerPage {
		pm.seal()
		if pm.page+1 >= pm.pages() {
			return 0, 0, fmt.Errorf("%w: all %d pages used", ErrPartitionTooSmall, pm.pages())
		}
		pm.page++
		pm.open()
	}
	page, slot = pm.page, pm.slot
	pm.slot += span
	return page, slot, nil
}

// seal writes the header of the current page: state ACTIVE, sequence
// number equal to the page index, and the CRC over bytes 0..27. The
// version field and reserved bytes keep the erased state.
func (pm *pageManager) seal() {
	hdr := pm.pageBuf(pm.page)[:pageHeaderSize]
	binary.LittleEndian.PutUint32(hdr[0:4], pageActive)
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(pm.page))
	binary.LittleEndian.PutUint32(hdr[28:32], codec.Checksum(hdr[:28]))
}

// write marshals e at page/slot, previously returned by reserve.
func (pm *pageManager) write(page, slot int, e *codec.Entry) {
	off := page*PageSize + slotOffset(slot)
	e.Marshal(pm.img[off : off+e.Size()])
}
