package network

import (
	"net"

	"github.com/vishvananda/netlink"
)

type linkConfigurer interface {
	addAddress(ifName string, addr *net.IPNet) error
	setDefaultRoute(ifName string, gateway net.IP) error
	setLinkUp(ifName string) error
}

type netlinkConfigurer struct{}

func (netlinkConfigurer) addAddress(ifName string, addr *net.IPNet) error {
	link, err := netlink.LinkByName(ifName)
	if err != nil {
		return err
	}
	return netlink.AddrReplace(link, &netlink.Addr{IPNet: addr})
}

func (netlinkConfigurer) setDefaultRoute(ifName string, gateway net.IP) error {
	link, err := netlink.LinkByName(ifName)
	if err != nil {
		return err
	}
	return netlink.RouteReplace(&netlink.Route{
		LinkIndex: link.Attrs().Index,
		Gw:        gateway,
	})
}

func (netlinkConfigurer) setLinkUp(ifName string) error {
	link, err := netlink.LinkByName(ifName)
	if err != nil {
		return err
	}
	return netlink.LinkSetUp(link)
}
