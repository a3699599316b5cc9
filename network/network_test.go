package network

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/lib/log/testlogger"
	"github.com/d2g/dhcp4"
	dhcp "github.com/krolaw/dhcp4"
)

type definedTestcase struct {
	config  Config
	defined bool
}

type recordingLinks struct {
	addresses []string
	gateways  []string
	raised    []string
}

var staticConfig = Config{
	IP:      "192.168.1.20",
	Mask:    "255.255.255.0",
	Gateway: "192.168.1.1",
	DNS1:    "192.168.1.1",
	DNS2:    "8.8.8.8",
}

var definedTestcases = []definedTestcase{
	{staticConfig, true},
	{Config{IP: "192.168.1.20"}, false},
	{Config{IP: "1.2.3.4", Mask: "255.0.0.0", Gateway: "1.0.0.1",
		DNS1: "1.0.0.1"}, false},
	{Config{}, false},
}

func (r *recordingLinks) addAddress(ifName string, addr *net.IPNet) error {
	r.addresses = append(r.addresses, ifName+"="+addr.String())
	return nil
}

func (r *recordingLinks) setDefaultRoute(ifName string, gw net.IP) error {
	r.gateways = append(r.gateways, gw.String())
	return nil
}

func (r *recordingLinks) setLinkUp(ifName string) error {
	r.raised = append(r.raised, ifName)
	return nil
}

func makeTestBringer(t *testing.T, interfaceNames ...string) (
	*Bringer, *recordingLinks, string) {
	resolvConf := filepath.Join(t.TempDir(), "resolv.conf")
	links := &recordingLinks{}
	b := NewBringer(BringerParams{
		Logger:         testlogger.New(t),
		ResolvConfFile: resolvConf,
	})
	b.links = links
	b.listInterfaces = func(uint, log.DebugLogger) ([]net.Interface,
		map[string]net.Interface, error) {
		list := make([]net.Interface, 0, len(interfaceNames))
		interfaces := make(map[string]net.Interface)
		for index, name := range interfaceNames {
			iface := net.Interface{Index: index + 2, Name: name}
			list = append(list, iface)
			interfaces[name] = iface
		}
		return list, interfaces, nil
	}
	b.requestLease = func(net.Interface, time.Duration, log.DebugLogger) (
		dhcp4.Packet, error) {
		return nil, errors.New("no DHCP server")
	}
	return b, links, resolvConf
}

func makeLeasePacket() dhcp4.Packet {
	packet := dhcp.NewPacket(dhcp.BootReply)
	packet.SetYIAddr(net.IPv4(10, 0, 0, 42))
	packet.AddOption(dhcp.OptionSubnetMask, []byte{255, 255, 0, 0})
	packet.AddOption(dhcp.OptionRouter, []byte{10, 0, 0, 1})
	packet.AddOption(dhcp.OptionDomainNameServer,
		[]byte{10, 0, 0, 2, 10, 0, 0, 3})
	return dhcp4.Packet(packet)
}

func TestIsDefined(t *testing.T) {
	for index, testcase := range definedTestcases {
		if defined := testcase.config.IsDefined(); defined != testcase.defined {
			t.Errorf("testcase %d: expected: %v, got: %v",
				index, testcase.defined, defined)
		}
	}
}

func TestValidate(t *testing.T) {
	config := staticConfig
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
	config.Mask = "255.0.255.0"
	if err := config.Validate(); err == nil {
		t.Error("non-contiguous mask accepted")
	}
	config = staticConfig
	config.Gateway = "10.0.0.1"
	if err := config.Validate(); err == nil {
		t.Error("gateway outside subnet accepted")
	}
	config = staticConfig
	config.DNS2 = "dns.example.com"
	if err := config.Validate(); err == nil {
		t.Error("DNS hostname accepted")
	}
	config = Config{IP: "garbage"}
	config.SetAuto()
	if err := config.Validate(); err != nil {
		t.Errorf("auto config rejected: %s", err)
	}
}

func TestKernelIpParameter(t *testing.T) {
	config := staticConfig
	expected := "192.168.1.20::192.168.1.1:255.255.255.0::eth0:off"
	if param := config.KernelIpParameter(); param != expected {
		t.Errorf("expected: %s, got: %s", expected, param)
	}
	config.SetAuto()
	if param := config.KernelIpParameter(); param != "dhcp" {
		t.Errorf("expected: dhcp, got: %s", param)
	}
}

func TestBringUpStatic(t *testing.T) {
	b, links, resolvConf := makeTestBringer(t, "eth0", "eth1")
	config := staticConfig
	if err := b.BringUp(&config); err != nil {
		t.Fatal(err)
	}
	if len(links.addresses) != 1 ||
		links.addresses[0] != "eth0=192.168.1.20/24" {
		t.Errorf("unexpected addresses: %v", links.addresses)
	}
	if len(links.gateways) != 1 || links.gateways[0] != "192.168.1.1" {
		t.Errorf("unexpected gateways: %v", links.gateways)
	}
	data, err := os.ReadFile(resolvConf)
	if err != nil {
		t.Fatal(err)
	}
	expected := "nameserver 192.168.1.1\nnameserver 8.8.8.8\n"
	if string(data) != expected {
		t.Errorf("expected: %q, got: %q", expected, string(data))
	}
}

func TestBringUpInvalidStaticDoesNothing(t *testing.T) {
	b, links, _ := makeTestBringer(t, "eth0")
	config := staticConfig
	config.IP = "192.168.1.300"
	if err := b.BringUp(&config); err == nil {
		t.Fatal("invalid address accepted")
	}
	if len(links.raised) > 0 || len(links.addresses) > 0 {
		t.Errorf("links touched: %v %v", links.raised, links.addresses)
	}
}

func TestBringUpAutoAppliesLease(t *testing.T) {
	b, links, _ := makeTestBringer(t, "enp1s0")
	b.requestLease = func(iface net.Interface, timeout time.Duration,
		logger log.DebugLogger) (dhcp4.Packet, error) {
		if iface.Name != "enp1s0" {
			t.Errorf("DHCP on wrong interface: %s", iface.Name)
		}
		return makeLeasePacket(), nil
	}
	config := Config{IP: "192.168.1.20"}
	config.SetAuto()
	if err := b.BringUp(&config); err != nil {
		t.Fatal(err)
	}
	if config.Mode != ModeAuto {
		t.Error("mode changed after lease")
	}
	if config.IP != "10.0.0.42" || config.Gateway != "10.0.0.1" ||
		config.Mask != "255.255.0.0" || config.DNS2 != "10.0.0.3" {
		t.Errorf("lease not recorded: %+v", config)
	}
	if config.Interface != "enp1s0" {
		t.Errorf("interface not recorded: %s", config.Interface)
	}
	if len(links.addresses) != 1 ||
		links.addresses[0] != "enp1s0=10.0.0.42/16" {
		t.Errorf("unexpected addresses: %v", links.addresses)
	}
}

func TestBringUpAutoFails(t *testing.T) {
	b, links, _ := makeTestBringer(t, "eth0")
	config := Config{}
	config.SetAuto()
	if err := b.BringUp(&config); err == nil {
		t.Fatal("no error without DHCP server")
	}
	if len(links.addresses) > 0 {
		t.Errorf("address added: %v", links.addresses)
	}
}

func TestNoInterfaces(t *testing.T) {
	b, _, _ := makeTestBringer(t)
	config := staticConfig
	if err := b.BringUp(&config); err == nil {
		t.Error("no error without interfaces")
	}
}

func TestParseLeaseRequiresRouter(t *testing.T) {
	packet := dhcp.NewPacket(dhcp.BootReply)
	packet.SetYIAddr(net.IPv4(10, 0, 0, 42))
	if _, err := parseLease(dhcp4.Packet(packet), testlogger.New(t)); err == nil {
		t.Error("lease without router accepted")
	}
}
