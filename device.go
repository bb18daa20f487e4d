package fatmod

import (
	"github.com/aligator/fatmod/checkpoint"
	"github.com/spf13/afero"
)

// blockDevice provides sector, cluster and raw range access to the disk
// image. It mainly exists to be able to mock the device in tests.
// Generated mock using mockgen:
//  mockgen -source=device.go -destination=device_mock.go -package fatmod
type blockDevice interface {
	ReadSector(n uint32) ([]byte, error)
	WriteSector(n uint32, buf []byte) error
	ReadCluster(c uint32) ([]byte, error)
	WriteCluster(c uint32, buf []byte) error
	ReadRange(offset int64, buf []byte) error
	WriteRange(offset int64, buf []byte) error
}

// Device implements blockDevice on top of the opened disk image.
// Every write is synced to stable storage before it returns, there is no
// dirty buffering anywhere in the driver.
type Device struct {
	file afero.File
	geo  *Geometry
}

func NewDevice(file afero.File, geo *Geometry) *Device {
	return &Device{
		file: file,
		geo:  geo,
	}
}

// ReadSector reads the full sector n.
func (d *Device) ReadSector(n uint32) ([]byte, error) {
	buf := make([]byte, d.geo.SectorSize)
	if err := d.ReadRange(int64(n)*int64(d.geo.SectorSize), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteSector writes the full sector n.
func (d *Device) WriteSector(n uint32, buf []byte) error {
	return d.WriteRange(int64(n)*int64(d.geo.SectorSize), buf)
}

// ReadCluster reads the full data cluster c. Clusters start at 2.
func (d *Device) ReadCluster(c uint32) ([]byte, error) {
	buf := make([]byte, d.geo.ClusterSize)
	if err := d.ReadRange(d.geo.ClusterOffset(c), buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteCluster writes the full data cluster c.
func (d *Device) WriteCluster(c uint32, buf []byte) error {
	return d.WriteRange(d.geo.ClusterOffset(c), buf)
}

// ReadRange fills buf from the raw image offset.
func (d *Device) ReadRange(offset int64, buf []byte) error {
	if _, err := d.file.ReadAt(buf, offset); err != nil {
		return checkpoint.Wrap(err, ErrShortIO)
	}
	return nil
}

// WriteRange writes buf at the raw image offset and syncs it out.
func (d *Device) WriteRange(offset int64, buf []byte) error {
	if _, err := d.file.WriteAt(buf, offset); err != nil {
		return checkpoint.Wrap(err, ErrWrite)
	}
	if err := d.file.Sync(); err != nil {
		return checkpoint.Wrap(err, ErrWrite)
	}
	return nil
}
