package network

import (
	"errors"
	"fmt"
	"net"
	"sort"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	libnet "github.com/Cloud-Foundations/target-installer/lib/net"
	"github.com/d2g/dhcp4"
	"github.com/d2g/dhcp4client"
	dhcp "github.com/krolaw/dhcp4" // Used for option strings.
)

func dhcpRequest(iface net.Interface, timeout time.Duration,
	logger log.DebugLogger) (dhcp4.Packet, error) {
	stopTime := time.Now().Add(timeout)
	for ; !libnet.TestCarrier(iface.Name); time.Sleep(100 * time.Millisecond) {
		if time.Now().After(stopTime) {
			return nil, fmt.Errorf("%s: timed out waiting for carrier",
				iface.Name)
		}
	}
	logger.Debugf(1, "%s: carrier detected\n", iface.Name)
	packetSocket, err := dhcp4client.NewPacketSock(iface.Index)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create DHCP socket: %s",
			iface.Name, err)
	}
	defer packetSocket.Close()
	client, err := dhcp4client.New(
		dhcp4client.HardwareAddr(iface.HardwareAddr),
		dhcp4client.Connection(packetSocket),
		dhcp4client.Timeout(time.Second*5))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create DHCP client: %s",
			iface.Name, err)
	}
	defer client.Close()
	for ; time.Now().Before(stopTime); time.Sleep(100 * time.Millisecond) {
		logger.Debugf(1, "%s: DHCP attempt\n", iface.Name)
		ok, packet, err := client.Request()
		if err != nil {
			logger.Debugf(1, "%s: DHCP failed: %s\n", iface.Name, err)
			continue
		}
		if !ok {
			continue
		}
		return packet, nil
	}
	return nil, fmt.Errorf("%s: timed out waiting for DHCP", iface.Name)
}

func logOptions(options dhcp4.Options, logger log.DebugLogger) {
	codes := make([]int, 0, len(options))
	for code := range options {
		codes = append(codes, int(code))
	}
	sort.Ints(codes)
	for _, code := range codes {
		logger.Debugf(1, "DHCP option: %3d/%s: %#x\n",
			code, dhcp.OptionCode(code).String(),
			options[dhcp4.OptionCode(code)])
	}
}

func parseLease(packet dhcp4.Packet, logger log.DebugLogger) (*Lease, error) {
	options := packet.ParseOptions()
	logOptions(options, logger)
	lease := &Lease{IP: packet.YIAddr()}
	if lease.IP.To4() == nil || lease.IP.Equal(net.IPv4zero) {
		return nil, errors.New("DHCP response has no address")
	}
	if mask := options[dhcp4.OptionSubnetMask]; len(mask) == 4 {
		lease.Mask = net.IPMask(mask)
	} else {
		lease.Mask = lease.IP.DefaultMask()
	}
	if router := options[dhcp4.OptionRouter]; len(router) >= 4 {
		lease.Gateway = net.IP(router[:4])
	} else {
		return nil, errors.New("ignoring response with no valid router address")
	}
	dnsServersBuffer := options[dhcp4.OptionDomainNameServer]
	for len(dnsServersBuffer) > 0 {
		if len(dnsServersBuffer) < 4 {
			return nil, errors.New("truncated DNS server address")
		}
		lease.DnsServers = append(lease.DnsServers,
			net.IP(dnsServersBuffer[:4]))
		dnsServersBuffer = dnsServersBuffer[4:]
	}
	if hostname := options[dhcp4.OptionHostName]; len(hostname) > 0 {
		lease.Hostname = string(hostname)
	}
	return lease, nil
}
