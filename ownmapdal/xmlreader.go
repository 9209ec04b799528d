package ownmapdal

import (
	"encoding/xml"
	"io"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/ownmap-svg/ownmap"
	"github.com/paulmach/osm"
)

// ReadXMLExtract decodes an .osm XML document into an extract
func ReadXMLExtract(reader io.Reader) (*ownmap.MapExtract, errorsx.Error) {
	o := new(osm.OSM)
	err := xml.NewDecoder(reader).Decode(o)
	if err != nil {
		return nil, errorsx.Wrap(err)
	}

	return ownmap.NewMapExtract(o), nil
}
