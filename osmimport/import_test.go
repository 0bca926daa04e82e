package osmimport_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/roadrl/network"
	"github.com/katalvlaran/roadrl/osmimport"
)

func roadIDs(roads []network.Road) []string {
	ids := make([]string, 0, len(roads))
	for _, r := range roads {
		ids = append(ids, r.ID)
	}
	return ids
}

func roadByID(t *testing.T, roads []network.Road, id string) network.Road {
	t.Helper()
	for _, r := range roads {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("road %q not imported", id)
	return network.Road{}
}

func TestLoadSmallExtract(t *testing.T) {
	res, err := osmimport.Load(context.Background(), filepath.Join("testdata", "small.osm"))
	require.NoError(t, err)

	assert.Equal(t, 4, res.Ways, "footway is skipped")
	assert.Len(t, res.Junctions, 5)
	for _, j := range res.Junctions {
		assert.NotContains(t, []string{"6", "7", "8"}, j.ID, "shape and footway nodes are not junctions")
	}

	assert.Equal(t,
		[]string{"-w10-0", "-w10-1", "-w13-0", "w10-0", "w10-1", "w11-0", "w13-0"},
		roadIDs(res.Roads))
	assert.Equal(t, 2, res.Dropped, "the longer parallel service road is dropped both ways")

	one := roadByID(t, res.Roads, "w11-0")
	assert.Equal(t, "2", one.From)
	assert.Equal(t, "4", one.To)
	assert.InEpsilon(t, 111.3, one.Length, 0.01)

	east := roadByID(t, res.Roads, "w10-0")
	back := roadByID(t, res.Roads, "-w10-0")
	assert.Equal(t, east.From, back.To)
	assert.Equal(t, east.Length, back.Length)
	assert.InEpsilon(t, 71.6, east.Length, 0.01)

	bent := roadByID(t, res.Roads, "w13-0")
	assert.Greater(t, bent.Length, 111.3, "length follows the shape node")
}

func TestPlanarCoordinates(t *testing.T) {
	res, err := osmimport.Load(context.Background(), filepath.Join("testdata", "small.osm"))
	require.NoError(t, err)

	byID := make(map[string]network.Junction)
	for _, j := range res.Junctions {
		byID[j.ID] = j
	}
	assert.Equal(t, 0.0, byID["1"].X)
	assert.Equal(t, 0.0, byID["1"].Y)
	assert.InEpsilon(t, 143.1, byID["3"].X, 0.01)
	assert.InDelta(t, 0.0, byID["3"].Y, 1e-9)
	assert.InEpsilon(t, 222.6, byID["5"].Y, 0.01)
	assert.InDelta(t, 8.0, res.Origin[0], 1e-12)
	assert.InDelta(t, 50.0, res.Origin[1], 1e-12)
}

func TestResultNetwork(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "small.osm"))
	require.NoError(t, err)
	defer f.Close()

	res, err := osmimport.Decode(context.Background(), f, osmimport.XML)
	require.NoError(t, err)

	net, err := res.Network()
	require.NoError(t, err)
	st := net.Stats()
	assert.Equal(t, 5, st.Junctions)
	assert.Equal(t, 7, st.Roads)
	assert.Equal(t, 1, net.OutDegree("4"))
}

func TestWithHighways(t *testing.T) {
	res, err := osmimport.Load(context.Background(), filepath.Join("testdata", "small.osm"),
		osmimport.WithHighways("primary", "footway"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ways)
	assert.Len(t, res.Junctions, 3)
}

func TestDecodeEmpty(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="50.0" lon="8.0"/>
  <node id="2" lat="50.0" lon="8.1"/>
  <way id="1"><nd ref="1"/><nd ref="2"/><tag k="highway" v="footway"/></way>
</osm>`
	_, err := osmimport.Decode(context.Background(), strings.NewReader(doc), osmimport.XML)
	assert.ErrorIs(t, err, osmimport.ErrEmpty)
}

func TestFormatOf(t *testing.T) {
	cases := []struct {
		path string
		want osmimport.Format
		err  bool
	}{
		{"city.osm", osmimport.XML, false},
		{"city.XML", osmimport.XML, false},
		{"city.osm.pbf", osmimport.PBF, false},
		{"city.json", osmimport.XML, true},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := osmimport.FormatOf(tc.path)
			if tc.err {
				assert.ErrorIs(t, err, osmimport.ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := osmimport.Load(context.Background(), filepath.Join("testdata", "missing.osm"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
