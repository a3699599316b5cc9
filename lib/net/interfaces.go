package net

import (
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

func listBroadcastInterfaces(interfaceType uint, logger log.DebugLogger) (
	[]net.Interface, map[string]net.Interface, error) {
	allInterfaces, err := net.Interfaces()
	if err != nil {
		return nil, nil, err
	}
	interfaceList := make([]net.Interface, 0)
	interfaceMap := make(map[string]net.Interface)
	for _, iface := range allInterfaces {
		if iface.Flags&net.FlagBroadcast == 0 {
			logger.Debugf(2, "skipping non-broadcast interface: %s\n",
				iface.Name)
			continue
		}
		if !includeType(sysClassNet, iface.Name, interfaceType, logger) {
			continue
		}
		logger.Debugf(1, "found broadcast interface: %s\n", iface.Name)
		interfaceList = append(interfaceList, iface)
		interfaceMap[iface.Name] = iface
	}
	sort.Slice(interfaceList, func(left, right int) bool {
		return interfaceList[left].Name < interfaceList[right].Name
	})
	return interfaceList, interfaceMap, nil
}

func includeType(topdir, name string, interfaceType uint,
	logger log.DebugLogger) bool {
	if _, err := os.Stat(filepath.Join(topdir, name, "bridge")); err == nil {
		if interfaceType&InterfaceTypeBridge == 0 {
			logger.Debugf(2, "skipping bridge interface: %s\n", name)
			return false
		}
		return true
	}
	if _, err := os.Stat(filepath.Join(topdir, name, "tun_flags")); err == nil {
		if interfaceType&InterfaceTypeTunTap == 0 {
			logger.Debugf(2, "skipping TUN/TAP interface: %s\n", name)
			return false
		}
		return true
	}
	if _, err := os.Stat(filepath.Join(topdir, name, "device")); err == nil {
		if interfaceType&InterfaceTypeEtherNet == 0 {
			logger.Debugf(2, "skipping EtherNet interface: %s\n", name)
			return false
		}
		return true
	}
	logger.Debugf(1, "skipping unknown interface: %s\n", name)
	return false
}

func testCarrier(topdir, name string) bool {
	data, err := os.ReadFile(filepath.Join(topdir, name, "carrier"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}
