package fatmod

import (
	"encoding/binary"
	"fmt"

	"github.com/aligator/fatmod/checkpoint"
)

// fatEntry is a single 32-bit entry of the file allocation table.
// Only the low 28 bits carry the value, the high 4 bits are reserved.
type fatEntry uint32

const (
	entryMask uint32 = 0x0FFFFFFF

	entryFree uint32 = 0x00000000
	entryBad  uint32 = 0x0FFFFFF7
	// endOfChain is the canonical terminator written by this driver.
	// Everything from 0x0FFFFFF8 on reads as end-of-chain.
	endOfChain uint32 = 0x0FFFFFFF
)

// Value returns the 28 usable bits of the entry.
func (e fatEntry) Value() uint32 {
	return uint32(e) & entryMask
}

func (e fatEntry) IsFree() bool {
	return e.Value() == entryFree
}

// IsReservedTemp reports the special value 1 which never appears in a
// well-formed chain.
func (e fatEntry) IsReservedTemp() bool {
	return e.Value() == 1
}

// IsNextCluster reports whether the entry points to another cluster.
func (e fatEntry) IsNextCluster() bool {
	v := e.Value()
	return v >= 2 && v <= 0x0FFFFFEF
}

func (e fatEntry) IsReserved() bool {
	v := e.Value()
	return v >= 0x0FFFFFF0 && v <= 0x0FFFFFF6
}

func (e fatEntry) IsBad() bool {
	return e.Value() == entryBad
}

func (e fatEntry) IsEOC() bool {
	return e.Value() >= 0x0FFFFFF8
}

// Table reads and mutates the first file allocation table of the volume.
type Table struct {
	dev blockDevice
	geo *Geometry
}

func NewTable(dev blockDevice, geo *Geometry) *Table {
	return &Table{
		dev: dev,
		geo: geo,
	}
}

// Entry reads the FAT entry of the given cluster.
func (t *Table) Entry(cluster uint32) (fatEntry, error) {
	buf := make([]byte, 4)
	if err := t.dev.ReadRange(t.geo.FATOffset+int64(cluster)*4, buf); err != nil {
		return 0, checkpoint.From(err)
	}
	return fatEntry(binary.LittleEndian.Uint32(buf)), nil
}

// SetEntry writes the FAT entry of the given cluster. The value is masked
// to its low 28 bits and written as a whole 32-bit word, so the reserved
// high 4 bits are always stored as zero.
func (t *Table) SetEntry(cluster uint32, value uint32) error {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, value&entryMask)
	return checkpoint.From(t.dev.WriteRange(t.geo.FATOffset+int64(cluster)*4, buf))
}

// Chain lazily walks the cluster chain starting at start. The walk is
// restartable from any cluster by creating a new Chain there.
type Chain struct {
	table   *Table
	next    uint32
	visited uint32
	done    bool
}

func (t *Table) Chain(start uint32) *Chain {
	return &Chain{
		table: t,
		next:  start,
	}
}

// Next yields the next cluster of the chain. ok turns false once the
// end-of-chain marker was consumed. A pointer leaving the valid cluster
// range, a reachable free, bad or reserved entry, and a chain longer than
// the number of usable clusters all fail with ErrBadChain.
func (c *Chain) Next() (cluster uint32, ok bool, err error) {
	if c.done {
		return 0, false, nil
	}

	current := c.next
	if !c.table.geo.ValidCluster(current) {
		return 0, false, checkpoint.Wrap(fmt.Errorf("cluster %d is out of range", current), ErrBadChain)
	}

	c.visited++
	if c.visited > c.table.geo.UsableClusters {
		return 0, false, checkpoint.Wrap(fmt.Errorf("chain did not terminate after %d clusters", c.visited-1), ErrBadChain)
	}

	entry, err := c.table.Entry(current)
	if err != nil {
		return 0, false, err
	}

	switch {
	case entry.IsEOC():
		c.done = true
	case entry.IsNextCluster():
		c.next = entry.Value()
	default:
		return 0, false, checkpoint.Wrap(fmt.Errorf("cluster %d links to a %#08x entry", current, entry.Value()), ErrBadChain)
	}

	return current, true, nil
}

// Walk collects the whole chain starting at start.
func (t *Table) Walk(start uint32) ([]uint32, error) {
	var clusters []uint32
	chain := t.Chain(start)
	for {
		cluster, ok, err := chain.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return clusters, nil
		}
		clusters = append(clusters, cluster)
	}
}

// ClusterAt follows the chain the given number of steps from start and
// returns the cluster it arrives at.
func (t *Table) ClusterAt(start uint32, steps int64) (uint32, error) {
	chain := t.Chain(start)
	var taken int64
	for {
		cluster, ok, err := chain.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, checkpoint.Wrap(fmt.Errorf("chain ended %d steps early", steps-taken+1), ErrBadChain)
		}
		if taken == steps {
			return cluster, nil
		}
		taken++
	}
}

// FindFree scans the FAT linearly for the first free cluster.
// There is no free-list cache, the scan always starts right behind the
// root directory cluster.
func (t *Table) FindFree() (uint32, error) {
	for cluster := t.geo.RootCluster + 1; cluster <= t.geo.UsableClusters+1; cluster++ {
		entry, err := t.Entry(cluster)
		if err != nil {
			return 0, err
		}
		if entry.IsFree() {
			return cluster, nil
		}
	}
	return 0, checkpoint.From(ErrNoSpace)
}

// AllocateAndLink claims n free clusters and links them onto prev. Every
// new cluster is marked end-of-chain before the previous one is pointed at
// it, so a crash in between leaves a well-formed chain. With prev == 0 the
// caller has to store the first returned cluster in the directory entry.
// On failure the already performed FAT writes are not rolled back.
func (t *Table) AllocateAndLink(prev uint32, n int) ([]uint32, error) {
	clusters := make([]uint32, 0, n)
	for i := 0; i < n; i++ {
		cluster, err := t.FindFree()
		if err != nil {
			return clusters, err
		}
		if err := t.SetEntry(cluster, endOfChain); err != nil {
			return clusters, err
		}
		if prev != 0 {
			if err := t.SetEntry(prev, cluster); err != nil {
				return clusters, err
			}
		}
		clusters = append(clusters, cluster)
		prev = cluster
	}
	return clusters, nil
}

// FreeChain walks from start and marks every visited entry free. The next
// pointer is read before its entry is cleared. If the walk fails mid-way
// the entries freed so far stay free.
func (t *Table) FreeChain(start uint32) error {
	chain := t.Chain(start)
	for {
		cluster, ok, err := chain.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := t.SetEntry(cluster, entryFree); err != nil {
			return err
		}
	}
}
