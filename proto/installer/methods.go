package installer

import (
	"errors"
)

const fileSystemTypeUnknown = "UNKNOWN FileSystemType"

var (
	fileSystemTypeToText = map[FileSystemType]string{
		FileSystemTypeExt4:    "ext4",
		FileSystemTypeVfat:    "vfat",
		FileSystemTypeNfs:     "nfs",
		FileSystemTypeHfsPlus: "hfsplus",
	}
	textToFileSystemType = make(map[string]FileSystemType,
		len(fileSystemTypeToText))
)

func init() {
	for fileSystemType, text := range fileSystemTypeToText {
		textToFileSystemType[text] = fileSystemType
	}
}

// IsNetwork returns true if the file-system is mounted over the network.
func (fileSystemType FileSystemType) IsNetwork() bool {
	return fileSystemType == FileSystemTypeNfs
}

func (fileSystemType FileSystemType) MarshalText() ([]byte, error) {
	text, ok := fileSystemTypeToText[fileSystemType]
	if !ok {
		return nil, errors.New(fileSystemTypeUnknown)
	}
	return []byte(text), nil
}

func (fileSystemType *FileSystemType) Set(value string) error {
	val, ok := textToFileSystemType[value]
	if !ok {
		return errors.New(fileSystemTypeUnknown + ": " + value)
	}
	*fileSystemType = val
	return nil
}

func (fileSystemType FileSystemType) String() string {
	if text, ok := fileSystemTypeToText[fileSystemType]; ok {
		return text
	}
	return fileSystemTypeUnknown
}

func (fileSystemType *FileSystemType) UnmarshalText(text []byte) error {
	return fileSystemType.Set(string(text))
}
