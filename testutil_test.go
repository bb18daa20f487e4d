package fatmod

import (
	"bytes"
	"encoding/binary"
	"io/ioutil"
	"testing"

	"github.com/spf13/afero"
)

// The test image is 8 MiB with the default geometry: 512 byte sectors, 2
// sectors per cluster, 32 reserved sectors and a single FAT of 64 sectors.
const (
	testSectorSize   = 512
	testTotalSectors = 16384
	testFATSectors   = 64
	testImagePath    = "disk.img"
)

func testBootSector(t *testing.T) []byte {
	t.Helper()

	bpb := BPB{
		BytesPerSector:      testSectorSize,
		SectorsPerCluster:   2,
		ReservedSectorCount: 32,
		NumFATs:             1,
		Media:               0xF8,
		TotalSectors32:      testTotalSectors,
		FAT32SpecificData: FAT32SpecificData{
			FATSize32:   testFATSectors,
			RootCluster: 2,
		},
	}

	buffer := bytes.Buffer{}
	if err := binary.Write(&buffer, binary.LittleEndian, &bpb); err != nil {
		t.Fatalf("could not serialize the boot sector: %v", err)
	}

	bootSector := make([]byte, testSectorSize)
	copy(bootSector, buffer.Bytes())
	bootSector[510] = 0x55
	bootSector[511] = 0xAA
	return bootSector
}

func testGeometry(t *testing.T) *Geometry {
	t.Helper()

	geo, err := ParseGeometry(testBootSector(t), NewLogger(ioutil.Discard))
	if err != nil {
		t.Fatalf("could not parse the test boot sector: %v", err)
	}
	return geo
}

// newTestImage builds a formatted FAT32 image in memory. The FAT carries
// the two reserved entries and the end-of-chain entry of the empty root
// directory, everything else is free.
func newTestImage(t *testing.T) afero.File {
	t.Helper()

	fsys := afero.NewMemMapFs()
	file, err := fsys.Create(testImagePath)
	if err != nil {
		t.Fatalf("could not create the test image: %v", err)
	}

	if _, err := file.WriteAt(testBootSector(t), 0); err != nil {
		t.Fatalf("could not write the boot sector: %v", err)
	}

	fat := make([]byte, 12)
	binary.LittleEndian.PutUint32(fat[0:], 0x0FFFFFF8)
	binary.LittleEndian.PutUint32(fat[4:], 0x0FFFFFFF)
	binary.LittleEndian.PutUint32(fat[8:], 0x0FFFFFFF)
	if _, err := file.WriteAt(fat, 32*testSectorSize); err != nil {
		t.Fatalf("could not write the FAT: %v", err)
	}

	if _, err := file.WriteAt([]byte{0}, testTotalSectors*testSectorSize-1); err != nil {
		t.Fatalf("could not grow the test image: %v", err)
	}

	return file
}

func newTestVolume(t *testing.T) *Volume {
	t.Helper()

	volume, err := NewVolume(newTestImage(t), NewLogger(ioutil.Discard))
	if err != nil {
		t.Fatalf("could not open the test volume: %v", err)
	}
	return volume
}
