package scenexml

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/format"
	"github.com/meshforge/scenexml/rtypes"
)

func roundTripDocument(t *testing.T, roots []*Instance, opts ...SerializeOption) []*Instance {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, roots, opts...))

	got, err := Deserialize(&buf)
	require.NoError(t, err)

	return got
}

func TestDeserialize_RoundTrip(t *testing.T) {
	model := NewInstance("Model", "Scene")
	model.Properties["Anchored"] = rtypes.Bool(true)
	model.Properties["Transparency"] = rtypes.Float32(0.25)
	model.Properties["Pivot"] = rtypes.NewCFrame(1, 2, 3)
	model.Properties["Padded"] = rtypes.String("  outer whitespace survives  ")

	floor := model.AddChild(NewInstance("Part", "Floor"))
	floor.Properties["Size"] = rtypes.Vector3{X: 10, Y: 1, Z: 10}
	floor.Properties["Color"] = rtypes.Color3uint8{R: 100, G: 150, B: 200}

	got := roundTripDocument(t, []*Instance{model})
	require.Len(t, got, 1)

	gotModel := got[0]
	assert.Equal(t, "Model", gotModel.ClassName)
	assert.Equal(t, "Scene", gotModel.Name)
	assert.Equal(t, model.Properties["Anchored"], gotModel.Properties["Anchored"])
	assert.Equal(t, model.Properties["Transparency"], gotModel.Properties["Transparency"])
	assert.Equal(t, model.Properties["Pivot"], gotModel.Properties["Pivot"])
	assert.Equal(t, model.Properties["Padded"], gotModel.Properties["Padded"])
	assert.NotContains(t, gotModel.Properties, "Name")

	gotFloor := gotModel.FindFirstChild("Floor")
	require.NotNil(t, gotFloor)
	assert.Equal(t, floor.Properties["Size"], gotFloor.Properties["Size"])
	assert.Equal(t, floor.Properties["Color"], gotFloor.Properties["Color"])
}

func TestDeserialize_RefResolvesToDecodedInstance(t *testing.T) {
	model := NewInstance("Model", "Scene")
	floor := model.AddChild(NewInstance("Part", "Floor"))
	model.Properties["PrimaryPart"] = floor.Ref

	got := roundTripDocument(t, []*Instance{model})
	require.Len(t, got, 1)

	gotFloor := got[0].FindFirstChild("Floor")
	require.NotNil(t, gotFloor)

	// Decoded instances carry fresh identities; the reference must point at
	// the decoded floor, not the original one.
	assert.Equal(t, gotFloor.Ref, got[0].Properties["PrimaryPart"])
	assert.NotEqual(t, floor.Ref, gotFloor.Ref)
}

func TestDeserialize_SharedStringRoundTrip(t *testing.T) {
	model := NewInstance("Model", "Scene")
	model.Properties["MeshA"] = rtypes.SharedString("shared payload")
	model.Properties["MeshB"] = rtypes.SharedString("shared payload")

	got := roundTripDocument(t, []*Instance{model})
	require.Len(t, got, 1)
	assert.Equal(t, rtypes.SharedString("shared payload"), got[0].Properties["MeshA"])
	assert.Equal(t, rtypes.SharedString("shared payload"), got[0].Properties["MeshB"])
}

func TestDeserialize_CompressedRoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	model := NewInstance("Model", "Scene")
	model.Properties["Anchored"] = rtypes.Bool(true)
	model.AddChild(NewInstance("Part", "Floor"))

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			got := roundTripDocument(t, []*Instance{model}, WithCompression(compression))
			require.Len(t, got, 1)
			assert.Equal(t, "Scene", got[0].Name)
			assert.Equal(t, rtypes.Bool(true), got[0].Properties["Anchored"])
			require.NotNil(t, got[0].FindFirstChild("Floor"))
		})
	}
}

func TestDeserialize_ForwardReference(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Model" referent="ref0">
    <Properties>
      <Name><string>a</string></Name>
      <Link><Ref>ref1</Ref></Link>
    </Properties>
  </Item>
  <Item class="Part" referent="ref1">
    <Properties>
      <Name><string>b</string></Name>
    </Properties>
  </Item>
</scenexml>`

	roots, err := Deserialize(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, roots, 2)

	assert.Equal(t, roots[1].Ref, roots[0].Properties["Link"])
}

func TestDeserialize_DanglingReference(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Part" referent="ref0">
    <Properties>
      <Name><string>a</string></Name>
      <Target><Ref>ref9</Ref></Target>
    </Properties>
  </Item>
</scenexml>`

	roots, err := Deserialize(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, rtypes.RefNull, roots[0].Properties["Target"])
}

func TestDeserialize_SharedStringTableAtEnd(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Part" referent="ref0">
    <Properties>
      <Name><string>a</string></Name>
      <Data><SharedString>00000000deadbeef</SharedString></Data>
    </Properties>
  </Item>
  <SharedStrings>
    <SharedString key="00000000deadbeef">aGVsbG8=</SharedString>
  </SharedStrings>
</scenexml>`

	roots, err := Deserialize(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, rtypes.SharedString("hello"), roots[0].Properties["Data"])
}

func TestDeserialize_AmbiguousSharedStringTable(t *testing.T) {
	// Two different payloads under one key: either one would silently read
	// back as the other, so the document is rejected.
	doc := `<scenexml version="1">
  <Item class="Part" referent="ref0">
    <Properties>
      <Name><string>a</string></Name>
      <Data><SharedString>00000000deadbeef</SharedString></Data>
    </Properties>
  </Item>
  <SharedStrings>
    <SharedString key="00000000deadbeef">aGVsbG8=</SharedString>
    <SharedString key="00000000deadbeef">d29ybGQ=</SharedString>
  </SharedStrings>
</scenexml>`

	_, err := Deserialize(strings.NewReader(doc))
	require.ErrorIs(t, err, errs.ErrHashCollision)
}

func TestDeserialize_UnresolvedSharedString(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Part" referent="ref0">
    <Properties>
      <Name><string>a</string></Name>
      <Data><SharedString>00000000deadbeef</SharedString></Data>
    </Properties>
  </Item>
</scenexml>`

	_, err := Deserialize(strings.NewReader(doc))
	require.ErrorIs(t, err, errs.ErrUnresolvedSharedString)
}

func TestDeserialize_VersionMismatch(t *testing.T) {
	_, err := Deserialize(strings.NewReader(`<scenexml version="2"></scenexml>`))
	require.ErrorIs(t, err, errs.ErrInvalidDocument)

	_, err = Deserialize(strings.NewReader(`<scenexml></scenexml>`))
	require.ErrorIs(t, err, errs.ErrInvalidDocument)
}

func TestDeserialize_MissingClass(t *testing.T) {
	doc := `<scenexml version="1">
  <Item referent="ref0"></Item>
</scenexml>`

	_, err := Deserialize(strings.NewReader(doc))
	require.ErrorIs(t, err, errs.ErrInvalidDocument)
}

func TestDeserialize_UnknownPropertyTypeAborts(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Part" referent="ref0">
    <Properties>
      <Weird><NotARealType>x</NotARealType></Weird>
    </Properties>
  </Item>
</scenexml>`

	_, err := Deserialize(strings.NewReader(doc))
	require.ErrorIs(t, err, errs.ErrUnknownPropertyType)

	var decodeErr *errs.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Greater(t, decodeErr.Loc.Line, 1)
}

func TestDeserialize_ProtectedStringLegacy(t *testing.T) {
	doc := `<scenexml version="1">
  <Item class="Script" referent="ref0">
    <Properties>
      <Name><string>loader</string></Name>
      <Source><ProtectedString>print(1)</ProtectedString></Source>
    </Properties>
  </Item>
</scenexml>`

	roots, err := Deserialize(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, rtypes.String("print(1)"), roots[0].Properties["Source"])
}

func TestDeserialize_EmptyInput(t *testing.T) {
	_, err := Deserialize(strings.NewReader(""))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestDeserialize_TruncatedDocument(t *testing.T) {
	_, err := Deserialize(strings.NewReader(`<scenexml version="1"><Item class="Part"`))
	require.Error(t, err)
}

func TestDeserialize_InvalidContainerType(t *testing.T) {
	_, err := Deserialize(strings.NewReader("SXZ1\x99garbage"))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
