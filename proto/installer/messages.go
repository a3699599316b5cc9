package installer

const (
	FileSystemTypeExt4 FileSystemType = iota
	FileSystemTypeVfat
	FileSystemTypeNfs
	FileSystemTypeHfsPlus
)

// FileSystemType is the type of a boot or root file-system. It is encoded as
// text ("ext4", "vfat", "nfs", "hfsplus") in JSON and on the command-line.
type FileSystemType uint

// Partition describes one partition of a target device.
type Partition struct {
	Device         string         `json:",omitempty"`
	FileSystemType FileSystemType `json:",omitempty"`
	MountPoint     string         `json:",omitempty"`
}
