package fatmod

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aligator/fatmod/checkpoint"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Volume is an opened FAT32 disk image. It carries the parsed geometry and
// the views on the FAT and the root directory, there is no other state.
type Volume struct {
	file afero.File
	log  *logrus.Logger

	geo *Geometry
	dev *Device
	fat *Table
	dir *Directory
}

// Open opens the disk image at path read-write and parses its structures.
// A failure to open the image or to read the boot sector reports ErrOpen,
// everything after that is a regular volume error.
func Open(fsys afero.Fs, path string, log *logrus.Logger) (*Volume, error) {
	file, err := fsys.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, checkpoint.Wrap(err, ErrOpen)
	}

	volume, err := NewVolume(file, log)
	if err != nil {
		file.Close()
		return nil, err
	}
	return volume, nil
}

// NewVolume parses the boot sector of the already opened image and wires
// up the device, FAT and root directory views.
func NewVolume(file afero.File, log *logrus.Logger) (*Volume, error) {
	// The boot sector is read with the default size, the real sector
	// size is only known afterwards.
	bootSector := make([]byte, defaultSectorSize)
	n, err := file.ReadAt(bootSector, 0)
	if err == nil && n < len(bootSector) {
		// Not every afero backend reports the short read as an error.
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		// An image smaller than one sector still has to surface as an
		// open failure, never as a plain EOF.
		return nil, checkpoint.Wrap(fmt.Errorf("boot sector: %v", err), ErrOpen)
	}

	geo, err := ParseGeometry(bootSector, log)
	if err != nil {
		return nil, err
	}

	dev := NewDevice(file, geo)
	dir, err := LoadRootDirectory(dev, geo, log)
	if err != nil {
		return nil, err
	}

	return &Volume{
		file: file,
		log:  log,
		geo:  geo,
		dev:  dev,
		fat:  NewTable(dev, geo),
		dir:  dir,
	}, nil
}

// Close releases the underlying image handle.
func (v *Volume) Close() error {
	return checkpoint.From(v.file.Close())
}

// Label returns the volume label from the root directory, if any.
func (v *Volume) Label() string {
	for _, slot := range v.dir.Slots() {
		if slot.Kind == EntryVolumeLabel {
			return labelString(slot.Header.Name)
		}
	}
	return ""
}

// List writes the root directory listing to w.
func (v *Volume) List(w io.Writer) error {
	return v.dir.List(w)
}

// Create adds an empty file with the given name to the root directory.
// No cluster is allocated, the entry starts with size 0 and no chain.
func (v *Volume) Create(name string) error {
	encoded, err := EncodeName(name)
	if err != nil {
		return err
	}

	if _, err := v.dir.Find(name); err == nil {
		return checkpoint.From(ErrAlreadyExists)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	index, err := v.dir.FreeSlot()
	if err != nil {
		return err
	}

	now := time.Now()
	header := EntryHeader{
		Name:            encoded,
		Attribute:       AttrArchive,
		CreateTimeTenth: PackTimeTenth(now),
		CreateTime:      PackTime(now),
		CreateDate:      PackDate(now),
		LastAccessDate:  PackDate(now),
		WriteTime:       PackTime(now),
		WriteDate:       PackDate(now),
	}

	return v.dir.WriteSlot(index, header)
}

// Write overwrites length bytes of the file with fill, starting at offset.
// Writing exactly at the end of the file appends, any offset beyond that
// fails with ErrInvalidOffset. Missing clusters are allocated and linked
// before any data is written, so the directory entry already carries the
// final size when the data write starts.
func (v *Volume) Write(name string, offset, length int64, fill byte) error {
	slot, err := v.dir.Find(name)
	if err != nil {
		return err
	}

	size := int64(slot.Header.FileSize)
	if offset < 0 || length < 0 || offset > size {
		return checkpoint.Wrap(fmt.Errorf("offset %d with file size %d", offset, size), ErrInvalidOffset)
	}

	clusterSize := int64(v.geo.ClusterSize)
	end := offset + length
	need := ceilDiv(end, clusterSize)
	have := ceilDiv(size, clusterSize)

	first := slot.Header.FirstCluster()
	if need > have {
		var prev uint32
		if first != 0 {
			chain, err := v.fat.Walk(first)
			if err != nil {
				return err
			}
			prev = chain[len(chain)-1]
		}

		allocated, allocErr := v.fat.AllocateAndLink(prev, int(need-have))
		if first == 0 && len(allocated) > 0 {
			slot.Header.SetFirstCluster(allocated[0])
			first = allocated[0]
		}
		if allocErr != nil {
			return allocErr
		}
	}

	if end > size {
		slot.Header.FileSize = uint32(end)
	}
	now := time.Now()
	slot.Header.WriteTime = PackTime(now)
	slot.Header.WriteDate = PackDate(now)
	slot.Header.LastAccessDate = PackDate(now)
	if err := v.dir.WriteSlot(slot.Index, slot.Header); err != nil {
		return err
	}

	if length == 0 {
		return nil
	}

	cluster, err := v.fat.ClusterAt(first, offset/clusterSize)
	if err != nil {
		return err
	}

	intra := offset % clusterSize
	remaining := length
	for {
		buf, err := v.dev.ReadCluster(cluster)
		if err != nil {
			return err
		}

		n := clusterSize - intra
		if n > remaining {
			n = remaining
		}
		for i := intra; i < intra+n; i++ {
			buf[i] = fill
		}

		if err := v.dev.WriteCluster(cluster, buf); err != nil {
			return err
		}

		remaining -= n
		if remaining == 0 {
			return nil
		}
		intra = 0

		entry, err := v.fat.Entry(cluster)
		if err != nil {
			return err
		}
		if !entry.IsNextCluster() {
			return checkpoint.Wrap(fmt.Errorf("chain ends at cluster %d with %d bytes left", cluster, remaining), ErrBadChain)
		}
		cluster = entry.Value()
	}
}

// ReadBinary dumps the file as 16 byte lines, each prefixed with the
// 8-digit uppercase hex file offset.
func (v *Volume) ReadBinary(w io.Writer, name string) error {
	content, err := v.readAll(name)
	if err != nil {
		return err
	}

	for offset := 0; offset < len(content); offset += 16 {
		end := offset + 16
		if end > len(content) {
			end = len(content)
		}

		if _, err := fmt.Fprintf(w, "%08X", offset); err != nil {
			return checkpoint.From(err)
		}
		for _, b := range content[offset:end] {
			if _, err := fmt.Fprintf(w, " %02X", b); err != nil {
				return checkpoint.From(err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return checkpoint.From(err)
		}
	}
	return nil
}

// ReadASCII emits the raw file content.
func (v *Volume) ReadASCII(w io.Writer, name string) error {
	content, err := v.readAll(name)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return checkpoint.From(err)
}

// readAll walks the chain and collects exactly the file size in bytes,
// truncating the trailing part of the last cluster.
func (v *Volume) readAll(name string) ([]byte, error) {
	slot, err := v.dir.Find(name)
	if err != nil {
		return nil, err
	}

	size := int64(slot.Header.FileSize)
	first := slot.Header.FirstCluster()
	if size == 0 || first == 0 {
		return nil, nil
	}

	content := make([]byte, 0, size)
	chain := v.fat.Chain(first)
	for int64(len(content)) < size {
		cluster, ok, err := chain.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, checkpoint.Wrap(fmt.Errorf("file size %d exceeds its chain", size), ErrBadChain)
		}

		buf, err := v.dev.ReadCluster(cluster)
		if err != nil {
			return nil, err
		}

		if remaining := size - int64(len(content)); remaining < int64(len(buf)) {
			buf = buf[:remaining]
		}
		content = append(content, buf...)
	}
	return content, nil
}

// Delete frees the file's cluster chain and tombstones its directory slot.
func (v *Volume) Delete(name string) error {
	slot, err := v.dir.Find(name)
	if err != nil {
		return err
	}

	if first := slot.Header.FirstCluster(); first != 0 {
		if err := v.fat.FreeChain(first); err != nil {
			return err
		}
	}

	return v.dir.Tombstone(slot.Index)
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
