package config

import (
	"fmt"
	"net/netip"
)

// Subnet carves the netnum-th subnet, newbits longer than prefix, out of an
// IPv4 network. Subnet("10.0.0.0/16", 8, 1) is "10.0.1.0/24".
func Subnet(prefix string, newbits, netnum int) (string, error) {
	network, err := netip.ParsePrefix(prefix)
	if err != nil {
		return "", fmt.Errorf("invalid CIDR prefix: %w", err)
	}
	if !network.Addr().Is4() {
		return "", fmt.Errorf("only IPv4 networks are supported, got %s", prefix)
	}
	network = network.Masked()

	bits := network.Bits() + newbits
	if newbits < 0 || bits > 32 {
		return "", fmt.Errorf("prefix extension of %d bits is too large for %s", newbits, prefix)
	}
	if netnum < 0 || netnum >= 1<<newbits {
		return "", fmt.Errorf("subnet number %d exceeds max subnets %d", netnum, 1<<newbits)
	}

	base := network.Addr().As4()
	ip := uint32(base[0])<<24 | uint32(base[1])<<16 | uint32(base[2])<<8 | uint32(base[3])
	// #nosec G115
	ip += uint32(netnum) << (32 - bits)

	addr := netip.AddrFrom4([4]byte{byte(ip >> 24), byte(ip >> 16), byte(ip >> 8), byte(ip)})
	return netip.PrefixFrom(addr, bits).String(), nil
}

// JobSubnet is the subnet servers attach to inside the deployment network.
func (h HCloudConfig) JobSubnet() (string, error) {
	return Subnet(h.NetworkCIDR, 8, 1)
}
