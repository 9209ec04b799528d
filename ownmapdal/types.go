package ownmapdal

import (
	"path/filepath"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
)

type ExtractFileType string

const (
	ExtractFileTypeXML ExtractFileType = "xml"
	ExtractFileTypePBF ExtractFileType = "pbf"
)

type ExtractFilePath struct {
	Type ExtractFileType
	Path string
}

const ConnectionPathSeparator = "://"

// ParseExtractFilePath reads the file type from an explicit prefix, such as "pbf://data/region.osm.pbf".
// Without a prefix, the type is taken from the file extension.
func ParseExtractFilePath(str string) (ExtractFilePath, errorsx.Error) {
	idx := strings.Index(str, ConnectionPathSeparator)
	if idx >= 0 {
		fileType := ExtractFileType(str[:idx])
		switch fileType {
		case ExtractFileTypeXML, ExtractFileTypePBF:
			return ExtractFilePath{
				Type: fileType,
				Path: str[idx+len(ConnectionPathSeparator):],
			}, nil
		default:
			return ExtractFilePath{}, errorsx.Errorf("unknown extract file type %q. Known types: %q, %q", fileType, ExtractFileTypeXML, ExtractFileTypePBF)
		}
	}

	switch strings.ToLower(filepath.Ext(str)) {
	case ".osm", ".xml":
		return ExtractFilePath{Type: ExtractFileTypeXML, Path: str}, nil
	case ".pbf":
		return ExtractFilePath{Type: ExtractFileTypePBF, Path: str}, nil
	default:
		return ExtractFilePath{}, errorsx.Errorf("couldn't detect the extract file type of %q. Use a .osm or .osm.pbf file, or prefix the path with %q or %q", str, ExtractFileTypeXML+ConnectionPathSeparator, ExtractFileTypePBF+ConnectionPathSeparator)
	}
}
