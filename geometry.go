package fatmod

import (
	"bytes"
	"encoding/binary"

	"github.com/aligator/fatmod/checkpoint"
	"github.com/sirupsen/logrus"
)

// defaultSectorSize is used to read sector 0 before the real sector size is
// known. Note that almost all FAT filesystems use 512.
const defaultSectorSize = 512

// maxClusters caps the usable cluster count. FAT32 entries carry 28 value
// bits, anything above cannot be addressed.
const maxClusters = 1 << 28

// Geometry holds the constants derived from the boot sector. It is
// immutable after parsing, everything else addresses the image through it.
type Geometry struct {
	SectorSize        uint32
	SectorsPerCluster uint32
	ReservedSectors   uint32
	NumFATs           uint32
	FATSectors        uint32
	RootCluster       uint32
	TotalSectors      uint32

	// Derived values.
	FATOffset      int64
	DataOffset     int64
	ClusterSize    uint32
	UsableClusters uint32
}

// ParseGeometry decodes the boot sector into the volume geometry.
// Non-default values are only warned about, the volume is still usable.
func ParseGeometry(bootSector []byte, log *logrus.Logger) (*Geometry, error) {
	bpb := BPB{}
	if err := binary.Read(bytes.NewReader(bootSector), binary.LittleEndian, &bpb); err != nil {
		return nil, checkpoint.Wrap(err, ErrInvalidGeometry)
	}

	if bpb.BytesPerSector == 0 {
		return nil, checkpoint.From(ErrInvalidGeometry)
	}
	if bpb.SectorsPerCluster == 0 {
		return nil, checkpoint.From(ErrInvalidGeometry)
	}

	geo := &Geometry{
		SectorSize:        uint32(bpb.BytesPerSector),
		SectorsPerCluster: uint32(bpb.SectorsPerCluster),
		ReservedSectors:   uint32(bpb.ReservedSectorCount),
		NumFATs:           uint32(bpb.NumFATs),
		RootCluster:       bpb.RootCluster,
	}

	// FAT32 keeps the FAT length in the extended part of the BPB, the
	// 16-bit field is only set on older volumes.
	geo.FATSectors = bpb.FATSize32
	if geo.FATSectors == 0 {
		geo.FATSectors = uint32(bpb.FATSize16)
	}

	geo.TotalSectors = bpb.TotalSectors32
	if geo.TotalSectors == 0 {
		geo.TotalSectors = uint32(bpb.TotalSectors16)
	}

	if geo.SectorSize != 512 {
		log.Warnf("sector size is %d instead of 512", geo.SectorSize)
	}
	if geo.SectorsPerCluster != 2 {
		log.Warnf("%d sectors per cluster instead of 2", geo.SectorsPerCluster)
	}
	if geo.NumFATs != 1 {
		log.Warnf("volume has %d FATs, only the first one is updated", geo.NumFATs)
	}
	if geo.RootCluster != 2 {
		log.Warnf("root directory starts at cluster %d instead of 2", geo.RootCluster)
	}
	if geo.ReservedSectors != 32 {
		log.Warnf("%d reserved sectors instead of 32", geo.ReservedSectors)
	}

	geo.ClusterSize = geo.SectorsPerCluster * geo.SectorSize
	geo.FATOffset = int64(geo.ReservedSectors) * int64(geo.SectorSize)
	geo.DataOffset = (int64(geo.ReservedSectors) + int64(geo.NumFATs)*int64(geo.FATSectors)) * int64(geo.SectorSize)

	dataSectors := int64(geo.TotalSectors) - int64(geo.ReservedSectors) - int64(geo.NumFATs)*int64(geo.FATSectors)
	if dataSectors < 0 {
		dataSectors = 0
	}

	usable := dataSectors / int64(geo.SectorsPerCluster)
	// The FAT itself may be too small to describe all data clusters.
	// Entries 0 and 1 are reserved.
	byTable := int64(geo.FATSectors)*int64(geo.SectorSize)/4 - 2
	if byTable < 0 {
		byTable = 0
	}
	if byTable < usable {
		usable = byTable
	}
	if usable > maxClusters {
		usable = maxClusters
	}
	geo.UsableClusters = uint32(usable)

	return geo, nil
}

// ClusterOffset returns the raw image offset of data cluster c.
// Only defined for c >= 2.
func (g *Geometry) ClusterOffset(c uint32) int64 {
	return g.DataOffset + int64(c-2)*int64(g.ClusterSize)
}

// ValidCluster reports whether c may appear inside a cluster chain.
func (g *Geometry) ValidCluster(c uint32) bool {
	return c >= 2 && c <= g.UsableClusters+1
}
