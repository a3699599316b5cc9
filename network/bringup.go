package network

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/fsutil"
	libnet "github.com/Cloud-Foundations/target-installer/lib/net"
)

func newBringer(params BringerParams) *Bringer {
	if params.DhcpTimeout <= 0 {
		params.DhcpTimeout = 2 * time.Minute
	}
	if params.InterfaceName == "" {
		params.InterfaceName = constants.DefaultInterface
	}
	if params.ResolvConfFile == "" {
		params.ResolvConfFile = "/etc/resolv.conf"
	}
	return &Bringer{
		params:         params,
		links:          &netlinkConfigurer{},
		listInterfaces: libnet.ListBroadcastInterfaces,
		requestLease:   dhcpRequest,
	}
}

func (b *Bringer) apply(ifName string, ip net.IP, mask net.IPMask,
	gateway net.IP, dnsServers []net.IP) error {
	logger := b.params.Logger
	addr := &net.IPNet{IP: ip, Mask: mask}
	if b.params.DryRun {
		logger.Printf("dry run: skipping: %s: address: %s gateway: %s\n",
			ifName, addr, gateway)
		return nil
	}
	if err := b.links.setLinkUp(ifName); err != nil {
		return fmt.Errorf("error raising: %s: %s", ifName, err)
	}
	if err := b.links.addAddress(ifName, addr); err != nil {
		return fmt.Errorf("error adding address: %s to: %s: %s",
			addr, ifName, err)
	}
	if err := b.links.setDefaultRoute(ifName, gateway); err != nil {
		return fmt.Errorf("error adding default route via: %s: %s",
			gateway, err)
	}
	logger.Printf("%s: configured address: %s gateway: %s\n",
		ifName, addr, gateway)
	return b.writeResolvConf(dnsServers)
}

func (b *Bringer) bringUp(config *Config) error {
	iface, err := b.selectInterface()
	if err != nil {
		return err
	}
	config.Interface = iface.Name
	if config.Mode == ModeAuto {
		return b.bringUpAuto(config, iface)
	}
	return b.bringUpStatic(config, iface)
}

func (b *Bringer) bringUpAuto(config *Config, iface net.Interface) error {
	logger := b.params.Logger
	logger.Printf("%s: requesting DHCP lease\n", iface.Name)
	if b.params.DryRun {
		logger.Printf("dry run: skipping DHCP on: %s\n", iface.Name)
		return nil
	}
	if err := b.links.setLinkUp(iface.Name); err != nil {
		return fmt.Errorf("error raising: %s: %s", iface.Name, err)
	}
	packet, err := b.requestLease(iface, b.params.DhcpTimeout, logger)
	if err != nil {
		return err
	}
	lease, err := parseLease(packet, logger)
	if err != nil {
		return err
	}
	logger.Printf("%s: using DHCP response with address: %s\n",
		iface.Name, lease.IP)
	err = b.apply(iface.Name, lease.IP, lease.Mask, lease.Gateway,
		lease.DnsServers)
	if err != nil {
		return err
	}
	config.setFromLease(iface.Name, lease)
	return nil
}

func (b *Bringer) bringUpStatic(config *Config, iface net.Interface) error {
	if err := config.Validate(); err != nil {
		return err
	}
	ip, _ := parseIPv4("address", config.IP)
	mask, _ := parseMask(config.Mask)
	gateway, _ := parseIPv4("gateway", config.Gateway)
	dns1, _ := parseIPv4("DNS server", config.DNS1)
	dns2, _ := parseIPv4("DNS server", config.DNS2)
	return b.apply(iface.Name, ip, mask, gateway, []net.IP{dns1, dns2})
}

func (b *Bringer) requestOnlyLease() (string, *Lease, error) {
	iface, err := b.selectInterface()
	if err != nil {
		return "", nil, err
	}
	packet, err := b.requestLease(iface, b.params.DhcpTimeout, b.params.Logger)
	if err != nil {
		return "", nil, err
	}
	lease, err := parseLease(packet, b.params.Logger)
	if err != nil {
		return "", nil, err
	}
	return iface.Name, lease, nil
}

func (b *Bringer) selectInterface() (net.Interface, error) {
	logger := b.params.Logger
	list, interfaces, err := b.listInterfaces(libnet.InterfaceTypeEtherNet,
		logger)
	if err != nil {
		return net.Interface{}, err
	}
	if iface, ok := interfaces[b.params.InterfaceName]; ok {
		return iface, nil
	}
	if len(list) < 1 {
		return net.Interface{}, errors.New("no EtherNet interfaces found")
	}
	logger.Printf("interface: %s not found, using: %s\n",
		b.params.InterfaceName, list[0].Name)
	return list[0], nil
}

func (b *Bringer) writeResolvConf(dnsServers []net.IP) error {
	if len(dnsServers) < 1 {
		return nil
	}
	buffer := &bytes.Buffer{}
	for _, server := range dnsServers {
		fmt.Fprintf(buffer, "nameserver %s\n", server)
	}
	err := fsutil.CopyToFile(b.params.ResolvConfFile, fsutil.PublicFilePerms,
		buffer, uint64(buffer.Len()))
	if err != nil {
		return err
	}
	b.params.Logger.Debugf(0, "wrote: %s\n", b.params.ResolvConfFile)
	return nil
}
