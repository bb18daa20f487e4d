package fatmod

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/aligator/fatmod/checkpoint"
	"github.com/sirupsen/logrus"
)

// DirSlot is the parsed view of one directory slot together with its
// position inside the root directory cluster.
type DirSlot struct {
	Index  int
	Kind   EntryKind
	Header EntryHeader
}

// Directory operates on the root directory which is assumed to fit into a
// single cluster, loaded once into buf.
type Directory struct {
	dev blockDevice
	geo *Geometry
	log *logrus.Logger
	buf []byte
}

// LoadRootDirectory reads the root directory cluster from the device.
func LoadRootDirectory(dev blockDevice, geo *Geometry, log *logrus.Logger) (*Directory, error) {
	buf, err := dev.ReadCluster(geo.RootCluster)
	if err != nil {
		return nil, checkpoint.From(err)
	}
	return &Directory{
		dev: dev,
		geo: geo,
		log: log,
		buf: buf,
	}, nil
}

// Slots parses every directory slot, including unused and tombstoned ones.
func (d *Directory) Slots() []DirSlot {
	count := len(d.buf) / directoryEntrySize
	slots := make([]DirSlot, count)
	for i := 0; i < count; i++ {
		header := EntryHeader{}
		// The buffer is always a multiple of the entry size, so this
		// read cannot fail.
		_ = binary.Read(bytes.NewReader(d.slotBytes(i)), binary.LittleEndian, &header)
		slots[i] = DirSlot{
			Index:  i,
			Kind:   header.Kind(),
			Header: header,
		}
	}
	return slots
}

// Find locates the live file entry matching name, compared
// case-insensitively against the decoded short name.
func (d *Directory) Find(name string) (DirSlot, error) {
	for _, slot := range d.Slots() {
		if slot.Kind != EntryFile {
			continue
		}
		if strings.EqualFold(DecodeName(slot.Header.Name), name) {
			return slot, nil
		}
	}
	return DirSlot{}, checkpoint.From(ErrNotFound)
}

// FreeSlot returns the index of the first unused or tombstoned slot.
func (d *Directory) FreeSlot() (int, error) {
	for _, slot := range d.Slots() {
		if slot.Kind == EntryUnused || slot.Kind == EntryTombstoned {
			return slot.Index, nil
		}
	}
	return 0, checkpoint.From(ErrDirectoryFull)
}

// WriteSlot serializes the entry into the slot and persists it.
func (d *Directory) WriteSlot(index int, header EntryHeader) error {
	buffer := bytes.Buffer{}
	if err := binary.Write(&buffer, binary.LittleEndian, &header); err != nil {
		return checkpoint.From(err)
	}
	copy(d.slotBytes(index), buffer.Bytes())
	return checkpoint.From(d.dev.WriteRange(d.slotOffset(index), d.slotBytes(index)))
}

// Tombstone marks the slot deleted by overwriting the first name byte.
func (d *Directory) Tombstone(index int) error {
	d.buf[index*directoryEntrySize] = nameDeleted
	return checkpoint.From(d.dev.WriteRange(d.slotOffset(index), d.slotBytes(index)[:1]))
}

// List writes one line per live file entry to w. The volume label is
// reported separately and unsupported entry kinds only produce a warning.
func (d *Directory) List(w io.Writer) error {
	for _, slot := range d.Slots() {
		switch slot.Kind {
		case EntryVolumeLabel:
			if _, err := fmt.Fprintf(w, "Volume label: %s\n", labelString(slot.Header.Name)); err != nil {
				return checkpoint.From(err)
			}
		case EntryFile:
			if _, err := fmt.Fprintf(w, "%s %d\n", DecodeName(slot.Header.Name), slot.Header.FileSize); err != nil {
				return checkpoint.From(err)
			}
		case EntryLongName:
			d.log.Warnf("slot %d holds a long name fragment which is not supported", slot.Index)
		case EntrySubdirectory:
			d.log.Warnf("slot %d holds a subdirectory which is not supported", slot.Index)
		}
	}
	return nil
}

func (d *Directory) slotBytes(index int) []byte {
	return d.buf[index*directoryEntrySize : (index+1)*directoryEntrySize]
}

func (d *Directory) slotOffset(index int) int64 {
	return d.geo.ClusterOffset(d.geo.RootCluster) + int64(index)*directoryEntrySize
}

// isShortNameByte reports whether b is allowed in an encoded 8.3 name.
func isShortNameByte(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '_' || b == '-'
}

// EncodeName converts name into the on-disk 11-byte short name. The input
// is uppercased and split at the first dot into an 8 byte base and a 3
// byte extension, both padded with spaces. Everything outside [A-Z0-9_-]
// fails with ErrInvalidName.
func EncodeName(name string) ([11]byte, error) {
	encoded := [11]byte{}
	for i := range encoded {
		encoded[i] = ' '
	}

	upper := strings.ToUpper(name)
	base, extension := upper, ""
	if dot := strings.IndexByte(upper, '.'); dot >= 0 {
		base, extension = upper[:dot], upper[dot+1:]
	}

	if base == "" || len(base) > 8 || len(extension) > 3 {
		return encoded, checkpoint.Wrap(fmt.Errorf("%q does not fit 8.3", name), ErrInvalidName)
	}
	for i := 0; i < len(base); i++ {
		if !isShortNameByte(base[i]) {
			return encoded, checkpoint.Wrap(fmt.Errorf("invalid character %q", base[i]), ErrInvalidName)
		}
		encoded[i] = base[i]
	}
	for i := 0; i < len(extension); i++ {
		if !isShortNameByte(extension[i]) {
			return encoded, checkpoint.Wrap(fmt.Errorf("invalid character %q", extension[i]), ErrInvalidName)
		}
		encoded[8+i] = extension[i]
	}

	return encoded, nil
}

// DecodeName converts an on-disk short name into its display form. The dot
// is only added for a non-empty extension. Bytes outside [A-Za-z0-9_-] end
// the base or extension early, they count as padding. Lowercase bytes found
// on disk are kept as they are.
func DecodeName(raw [11]byte) string {
	base := decodeNamePart(raw[:8])
	extension := decodeNamePart(raw[8:11])
	if extension == "" {
		return base
	}
	return base + "." + extension
}

func decodeNamePart(raw []byte) string {
	end := 0
	for end < len(raw) && isDisplayByte(raw[end]) {
		end++
	}
	return string(raw[:end])
}

func isDisplayByte(b byte) bool {
	return isShortNameByte(b) || b >= 'a' && b <= 'z'
}

// labelString renders a volume label, which uses all 11 bytes as one name.
func labelString(raw [11]byte) string {
	return strings.TrimRight(string(raw[:]), " ")
}
