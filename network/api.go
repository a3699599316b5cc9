// Package network holds the network configuration used for a network root
// and brings the network up, either statically or with DHCP.
package network

import (
	"net"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/d2g/dhcp4"
)

const (
	ModeStatic Mode = iota
	ModeAuto
)

type Mode uint

// Config is the network configuration. After a successful bring up in auto
// mode the address fields hold the leased values and Mode remains ModeAuto.
type Config struct {
	IP        string
	Mask      string
	Gateway   string
	DNS1      string
	DNS2      string
	Interface string // Set by BringUp.
	Mode      Mode
}

// Lease is the useful content of a DHCP response.
type Lease struct {
	IP         net.IP
	Mask       net.IPMask
	Gateway    net.IP
	DnsServers []net.IP
	Hostname   string
}

type BringerParams struct {
	DhcpTimeout    time.Duration // Default: 2 minutes.
	DryRun         bool
	InterfaceName  string // Default: eth0, else first EtherNet interface.
	Logger         log.DebugLogger
	ResolvConfFile string // Default: /etc/resolv.conf.
}

type Bringer struct {
	params         BringerParams
	links          linkConfigurer
	listInterfaces listFunc
	requestLease   leaseFunc
}

type leaseFunc func(net.Interface, time.Duration, log.DebugLogger) (
	dhcp4.Packet, error)

type listFunc func(uint, log.DebugLogger) (
	[]net.Interface, map[string]net.Interface, error)

// IsDefined returns true if all of the static configuration fields are set.
func (c *Config) IsDefined() bool {
	return c.isDefined()
}

// KernelIpParameter returns the value for the ip= kernel command-line
// parameter: "dhcp" in auto mode, else <ip>::<gw>:<mask>::<iface>:off.
func (c *Config) KernelIpParameter() string {
	return c.kernelIpParameter()
}

// SetAuto switches to DHCP configuration.
func (c *Config) SetAuto() {
	c.Mode = ModeAuto
}

func (m Mode) String() string {
	if m == ModeAuto {
		return "auto"
	}
	return "static"
}

// Validate checks the static fields. A Config in auto mode is always valid.
func (c *Config) Validate() error {
	return c.validate()
}

func NewBringer(params BringerParams) *Bringer {
	return newBringer(params)
}

// BringUp configures the network interface according to config, blocking
// until the interface has an address or an error occurs. In auto mode the
// leased values are written back into config.
func (b *Bringer) BringUp(config *Config) error {
	return b.bringUp(config)
}

// RequestLease issues a DHCP request on the selected interface without
// applying the response.
func (b *Bringer) RequestLease() (string, *Lease, error) {
	return b.requestOnlyLease()
}
