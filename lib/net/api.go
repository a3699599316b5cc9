package net

import (
	"net"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

const (
	InterfaceTypeEtherNet = 1 << iota
	InterfaceTypeBridge
	InterfaceTypeTunTap

	sysClassNet = "/sys/class/net"
)

// ListBroadcastInterfaces will return a list of broadcast interfaces of the
// specified types, sorted by name, as well as a map keyed by interface name.
func ListBroadcastInterfaces(interfaceType uint, logger log.DebugLogger) (
	[]net.Interface, map[string]net.Interface, error) {
	return listBroadcastInterfaces(interfaceType, logger)
}

// TestCarrier will return true if the interface has a carrier signal (a cable
// is plugged in and the link is up at the other end).
func TestCarrier(name string) bool {
	return testCarrier(sysClassNet, name)
}
