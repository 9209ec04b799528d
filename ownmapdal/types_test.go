package ownmapdal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractFilePath(t *testing.T) {
	type args struct {
		str string
	}
	tests := []struct {
		name    string
		args    args
		want    ExtractFilePath
		wantErr bool
	}{
		{
			name: "explicit pbf prefix",
			args: args{"pbf:///data/region.bin"},
			want: ExtractFilePath{Type: ExtractFileTypePBF, Path: "/data/region.bin"},
		}, {
			name: "explicit xml prefix",
			args: args{"xml://map_big.txt"},
			want: ExtractFilePath{Type: ExtractFileTypeXML, Path: "map_big.txt"},
		}, {
			name: "osm extension",
			args: args{"../map_big.osm"},
			want: ExtractFilePath{Type: ExtractFileTypeXML, Path: "../map_big.osm"},
		}, {
			name: "pbf extension",
			args: args{"/data/region.osm.pbf"},
			want: ExtractFilePath{Type: ExtractFileTypePBF, Path: "/data/region.osm.pbf"},
		}, {
			name: "upper case extension",
			args: args{"/data/REGION.OSM"},
			want: ExtractFilePath{Type: ExtractFileTypeXML, Path: "/data/REGION.OSM"},
		}, {
			name:    "unknown prefix",
			args:    args{"postgresql://localhost"},
			wantErr: true,
		}, {
			name:    "unknown extension",
			args:    args{"/data/region.json"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExtractFilePath(tt.args.str)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
