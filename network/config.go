package network

import (
	"errors"
	"fmt"
	"net"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
)

func parseIPv4(name, value string) (net.IP, error) {
	ip := net.ParseIP(value)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("invalid %s: \"%s\"", name, value)
	}
	return ip.To4(), nil
}

func parseMask(value string) (net.IPMask, error) {
	ip, err := parseIPv4("netmask", value)
	if err != nil {
		return nil, err
	}
	mask := net.IPMask(ip)
	if _, bits := mask.Size(); bits == 0 {
		return nil, fmt.Errorf("non-contiguous netmask: \"%s\"", value)
	}
	return mask, nil
}

func (c *Config) isDefined() bool {
	return c.IP != "" && c.Mask != "" && c.Gateway != "" && c.DNS1 != "" &&
		c.DNS2 != ""
}

func (c *Config) kernelIpParameter() string {
	if c.Mode == ModeAuto {
		return "dhcp"
	}
	ifName := c.Interface
	if ifName == "" {
		ifName = constants.DefaultInterface
	}
	return fmt.Sprintf("%s::%s:%s::%s:off", c.IP, c.Gateway, c.Mask, ifName)
}

func (c *Config) validate() error {
	if c.Mode == ModeAuto {
		return nil
	}
	if !c.isDefined() {
		return errors.New("incomplete static network configuration")
	}
	ip, err := parseIPv4("address", c.IP)
	if err != nil {
		return err
	}
	mask, err := parseMask(c.Mask)
	if err != nil {
		return err
	}
	gateway, err := parseIPv4("gateway", c.Gateway)
	if err != nil {
		return err
	}
	if !ip.Mask(mask).Equal(gateway.Mask(mask)) {
		return fmt.Errorf("gateway: %s not in subnet of: %s/%s",
			c.Gateway, c.IP, c.Mask)
	}
	if _, err := parseIPv4("DNS server", c.DNS1); err != nil {
		return err
	}
	if _, err := parseIPv4("DNS server", c.DNS2); err != nil {
		return err
	}
	return nil
}

func (c *Config) setFromLease(ifName string, lease *Lease) {
	c.Interface = ifName
	c.IP = lease.IP.String()
	c.Mask = net.IP(lease.Mask).String()
	c.Gateway = lease.Gateway.String()
	c.DNS1 = ""
	c.DNS2 = ""
	if len(lease.DnsServers) > 0 {
		c.DNS1 = lease.DnsServers[0].String()
	}
	if len(lease.DnsServers) > 1 {
		c.DNS2 = lease.DnsServers[1].String()
	}
}
