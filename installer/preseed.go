package installer

import (
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/preseed"
	"github.com/Cloud-Foundations/target-installer/target"
)

const (
	keyLocale      = "globe/locale"
	keyNetworkDns1 = "network/dns1"
	keyNetworkDns2 = "network/dns2"
	keyNetworkGw   = "network/gw"
	keyNetworkIp   = "network/ip"
	keyNetworkMask = "network/mask"
	keyStorage     = "target/storage"
	keyStoragePath = "target/storagePath"

	storageNfs = "nfs"
	storageUsb = "usb"
)

const (
	policyDefault storagePolicy = iota
	policyNetworkRoot
	policyNfsWithoutPath
	policyUsbOverride
	policyUsbUnsupported
	policyUnknownStorage
)

type storagePolicy uint

var storagePolicyToText = map[storagePolicy]string{
	policyDefault:        "default root",
	policyNetworkRoot:    "network root",
	policyNfsWithoutPath: "nfs without storage path, using local root",
	policyUsbOverride:    "usb root",
	policyUsbUnsupported: "usb not supported on device, using default root",
	policyUnknownStorage: "unknown storage, using default root",
}

// networkConfigFromPreseed returns the network configuration for a network
// root. Unless every static field is given the configuration is automatic.
func networkConfigFromPreseed(config *preseed.Config) *network.Config {
	networkConfig := &network.Config{
		IP:      config.GetStringValue(keyNetworkIp),
		Mask:    config.GetStringValue(keyNetworkMask),
		Gateway: config.GetStringValue(keyNetworkGw),
		DNS1:    config.GetStringValue(keyNetworkDns1),
		DNS2:    config.GetStringValue(keyNetworkDns2),
		Mode:    network.ModeStatic,
	}
	if !networkConfig.IsDefined() {
		networkConfig.SetAuto()
	}
	return networkConfig
}

// resolveStorage returns the root for device as selected by the storage
// keys, along with the policy that selected it. Only policyNetworkRoot
// selects a network root.
func resolveStorage(device *target.Device,
	config *preseed.Config) (string, storagePolicy) {
	switch config.GetStringValue(keyStorage) {
	case "":
		return device.Root(), policyDefault
	case storageNfs:
		if path := config.GetStringValue(keyStoragePath); path != "" {
			return path, policyNetworkRoot
		}
		return device.Root(), policyNfsWithoutPath
	case storageUsb:
		if device.UsbRootOverride != "" {
			return device.UsbRootOverride, policyUsbOverride
		}
		return device.Root(), policyUsbUnsupported
	}
	return device.Root(), policyUnknownStorage
}

func (p storagePolicy) String() string {
	return storagePolicyToText[p]
}
