//go:build linux
// +build linux

package main

import (
	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/network"
)

func dhcpRequestSubcommand(args []string, logger log.DebugLogger) error {
	bringer := network.NewBringer(network.BringerParams{
		DryRun:        true,
		InterfaceName: *interfaceName,
		Logger:        logger,
	})
	ifName, lease, err := bringer.RequestLease()
	if err != nil {
		return err
	}
	logger.Printf("%s: address: %s mask: %s gateway: %s\n",
		ifName, lease.IP, lease.Mask, lease.Gateway)
	for _, dnsServer := range lease.DnsServers {
		logger.Printf("DNS server: %s\n", dnsServer)
	}
	if lease.Hostname != "" {
		logger.Printf("DHCP HostName option found, value=%s\n", lease.Hostname)
	}
	return nil
}
