package netutil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"net/netip"
)

const (
	// SubnetNewBits is the prefix extension applied to the parent network for every zone block.
	SubnetNewBits = 8
	// DatabaseTierOffset is the index of the first database-tier block inside the parent network.
	// Indices below it are left free for other tiers.
	DatabaseTierOffset = 6
)

// ErrInvalidPrefix is returned when the parent network cannot be parsed or is not usable.
var ErrInvalidPrefix = errors.New("invalid network prefix")

// AddressBlock is a subnet carved out of a parent network for a single availability zone.
type AddressBlock struct {
	// Zone is the zero-based zone ordinal the block serves.
	Zone int
	// Netnum is the block number within the parent at SubnetNewBits granularity.
	Netnum int
	Prefix netip.Prefix
}

// String returns the block in CIDR notation.
func (b AddressBlock) String() string {
	return b.Prefix.String()
}

// Overlaps reports whether two blocks share any address.
func (b AddressBlock) Overlaps(other AddressBlock) bool {
	return b.Prefix.Overlaps(other.Prefix)
}

// AddressSpaceExhaustedError is returned when the parent network cannot hold the requested blocks.
type AddressSpaceExhaustedError struct {
	Parent    string
	Offset    int
	Zones     int
	Available int
}

func (e *AddressSpaceExhaustedError) Error() string {
	return fmt.Sprintf("address space exhausted: %s provides %d blocks at +%d bits, need offset %d + %d zones",
		e.Parent, e.Available, SubnetNewBits, e.Offset, e.Zones)
}

// AllocateSubnets carves zoneCount consecutive blocks out of parentCIDR starting at tierOffset.
// Each block extends the parent prefix by SubnetNewBits. Host bits set in parentCIDR are ignored.
//
// Only IPv4 parents with a non-zero prefix length are accepted.
func AllocateSubnets(parentCIDR string, zoneCount, tierOffset int) ([]AddressBlock, error) {
	parent, err := netip.ParsePrefix(parentCIDR)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPrefix, err)
	}
	if !parent.Addr().Is4() {
		return nil, fmt.Errorf("%w: only IPv4 networks are supported, got %s", ErrInvalidPrefix, parentCIDR)
	}
	if parent.Bits() == 0 {
		return nil, fmt.Errorf("%w: zero-length prefix %s", ErrInvalidPrefix, parentCIDR)
	}
	if zoneCount < 1 {
		return nil, fmt.Errorf("zone count must be at least 1, got %d", zoneCount)
	}
	if tierOffset < 0 {
		return nil, fmt.Errorf("tier offset must not be negative, got %d", tierOffset)
	}

	parent = parent.Masked()
	exhausted := &AddressSpaceExhaustedError{
		Parent: parent.String(),
		Offset: tierOffset,
		Zones:  zoneCount,
	}
	if parent.Bits()+SubnetNewBits > 32 {
		return nil, exhausted
	}
	exhausted.Available = 1 << SubnetNewBits
	if tierOffset+zoneCount > exhausted.Available {
		return nil, exhausted
	}

	blocks := make([]AddressBlock, 0, zoneCount)
	for zone := range zoneCount {
		netnum := tierOffset + zone
		cidr, err := CIDRSubnet(parent.String(), SubnetNewBits, netnum)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, AddressBlock{
			Zone:   zone,
			Netnum: netnum,
			Prefix: netip.MustParsePrefix(cidr),
		})
	}
	return blocks, nil
}

// VerifyBlocks checks that every block lies inside parentCIDR and that no two blocks overlap.
func VerifyBlocks(parentCIDR string, blocks []AddressBlock) error {
	parent, err := netip.ParsePrefix(parentCIDR)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrefix, err)
	}
	parent = parent.Masked()
	for i, b := range blocks {
		if b.Prefix.Bits() < parent.Bits() || !parent.Contains(b.Prefix.Addr()) {
			return fmt.Errorf("block %s is outside %s", b, parent)
		}
		for _, other := range blocks[i+1:] {
			if b.Overlaps(other) {
				return fmt.Errorf("blocks %s and %s overlap", b, other)
			}
		}
	}
	return nil
}

// CIDRSubnet calculates a subnet address given a network address, a netmask size increase, and a subnet number.
// This mimics the behavior of Terraform's cidrsubnet function.
//
// Note: Only IPv4 addresses are supported. IPv6 addresses will return an error.
func CIDRSubnet(prefix string, newbits int, netnum int) (string, error) {
	_, network, err := net.ParseCIDR(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}

	if network.IP.To4() == nil {
		return "", fmt.Errorf("only IPv4 addresses are supported, got IPv6: %s", prefix)
	}

	maskSize, totalBits := network.Mask.Size()
	newMaskSize := maskSize + newbits

	if newMaskSize > totalBits {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}

	maxSubnets := 1 << newbits
	if netnum < 0 || netnum >= maxSubnets {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, maxSubnets)
	}

	ipInt := uint32FromIP(network.IP.To4())
	subnetSize := uint64(1) << (totalBits - newMaskSize)
	// #nosec G115
	ipInt += uint64(netnum) * subnetSize

	return fmt.Sprintf("%s/%d", ipFromUint32(ipInt).String(), newMaskSize), nil
}

func uint32FromIP(ip net.IP) uint64 {
	return uint64(binary.BigEndian.Uint32(ip))
}

func ipFromUint32(val uint64) net.IP {
	ip := make(net.IP, 4)
	// #nosec G115
	binary.BigEndian.PutUint32(ip, uint32(val))
	return ip
}
