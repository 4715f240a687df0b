package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// twoGroupProduct builds a Color/Size product where red allows only S and
// blue allows S and M. Size combinations under red/blue carry no hex;
// color combinations under the sizes do.
func twoGroupProduct() *Product {
	return &Product{
		ID:    7,
		Price: 20,
		CustomOptions: []OptionGroup{
			{
				Key:   "color",
				Title: "Color",
				Values: []OptionValue{
					{
						Value: "red",
						Hex:   strPtr("#ff0000"),
						AvailableOptions: map[string][]AvailableOption{
							"size": {
								{Value: "S", SKUID: 101, Image: strPtr("red-s.jpg")},
							},
						},
					},
					{
						Value: "blue",
						Hex:   strPtr("#0000ff"),
						AvailableOptions: map[string][]AvailableOption{
							"size": {
								{Value: "S", SKUID: 201, Image: strPtr("blue-s.jpg")},
								{Value: "M", SKUID: 202, Image: strPtr("blue-m.jpg")},
							},
						},
					},
				},
			},
			{
				Key:   "size",
				Title: "Size",
				Values: []OptionValue{
					{
						Value: "S",
						AvailableOptions: map[string][]AvailableOption{
							"color": {
								{Value: "red", SKUID: 101, Hex: strPtr("#ff0000")},
								{Value: "blue", SKUID: 201, Hex: strPtr("#0000ff")},
							},
						},
					},
					{
						Value: "M",
						AvailableOptions: map[string][]AvailableOption{
							"color": {
								{Value: "blue", SKUID: 202, Hex: strPtr("#0000ff")},
							},
						},
					},
				},
			},
		},
	}
}

func TestResolveOptions_NoVariants(t *testing.T) {
	assert.Nil(t, ResolveOptions(nil))
	assert.Nil(t, ResolveOptions(&Product{ID: 1}))
	assert.Nil(t, ResolveOptions(&Product{
		CustomOptions: []OptionGroup{{Key: "color", Title: "Color"}},
	}))
}

func TestResolveOptions_SingleGroup(t *testing.T) {
	p := &Product{
		ID: 3,
		SKUs: []SKU{
			{ID: 11, Option: "red", Price: 15, Qty: 4, Image: "red.jpg"},
			{ID: 12, Option: "blue", Price: 16, Qty: 2, Image: "blue.jpg"},
		},
		CustomOptions: []OptionGroup{
			{
				Key:   "color",
				Title: "Color",
				Values: []OptionValue{
					{Value: "red", Hex: strPtr("#ff0000")},
					{Value: "blue", Hex: strPtr("#0000ff")},
				},
			},
		},
	}

	resolved := ResolveOptions(p)
	require.NotNil(t, resolved)
	assert.Nil(t, resolved.Second)
	assert.Equal(t, "color", resolved.First.Key)
	assert.False(t, resolved.First.HasColors)

	// Every first value associates with exactly one entry, resolved from
	// the flat SKU list.
	for _, value := range []string{"red", "blue"} {
		require.Len(t, resolved.Associations[value], 1)
	}
	red := resolved.Associations["red"][0]
	assert.Equal(t, 11, red.SKUID)
	require.NotNil(t, red.Price)
	assert.Equal(t, 15.0, *red.Price)
	require.NotNil(t, red.Qty)
	assert.Equal(t, 4, *red.Qty)
	require.NotNil(t, red.Image)
	assert.Equal(t, "red.jpg", *red.Image)
}

func TestResolveOptions_SingleGroup_NoSKUList(t *testing.T) {
	p := &Product{
		ID: 4,
		CustomOptions: []OptionGroup{
			{
				Key:   "color",
				Title: "Color",
				Values: []OptionValue{
					{Value: "green", Hex: strPtr("#00ff00"), SKUID: intPtr(31), Image: strPtr("green.jpg")},
				},
			},
		},
	}

	resolved := ResolveOptions(p)
	require.NotNil(t, resolved)
	require.Len(t, resolved.Associations["green"], 1)

	// Falls back to the value's own SKU metadata.
	opt := resolved.Associations["green"][0]
	assert.Equal(t, 31, opt.SKUID)
	assert.Equal(t, "#00ff00", *opt.Hex)
	assert.Equal(t, "green.jpg", *opt.Image)
}

func TestResolveOptions_CrossWiredColorDetection(t *testing.T) {
	resolved := ResolveOptions(twoGroupProduct())
	require.NotNil(t, resolved)
	require.NotNil(t, resolved.Second)

	// The size values reveal hex entries under available_options["color"],
	// so the color group "has colors" — and not the other way around: the
	// color values' entries under available_options["size"] carry no hex.
	assert.True(t, resolved.First.HasColors)
	assert.False(t, resolved.Second.HasColors)
}

func TestResolveOptions_Associations(t *testing.T) {
	resolved := ResolveOptions(twoGroupProduct())
	require.NotNil(t, resolved)

	// red allows only S, blue allows S and M; entries are copied verbatim.
	require.Len(t, resolved.Associations["red"], 1)
	assert.Equal(t, "S", resolved.Associations["red"][0].Value)
	assert.Equal(t, 101, resolved.Associations["red"][0].SKUID)

	require.Len(t, resolved.Associations["blue"], 2)
	assert.Equal(t, 202, resolved.Associations["blue"][1].SKUID)
	assert.Equal(t, "blue-m.jpg", *resolved.Associations["blue"][1].Image)
}

func TestResolveOptions_FirstValueWithoutEntries(t *testing.T) {
	p := twoGroupProduct()
	p.CustomOptions[0].Values = append(p.CustomOptions[0].Values, OptionValue{Value: "black"})

	resolved := ResolveOptions(p)
	require.NotNil(t, resolved)

	// A first value with no available_options entry for the second group
	// has no valid second choices.
	assert.Empty(t, resolved.Associations["black"])
}

func TestResolveOptions_Deterministic(t *testing.T) {
	p := twoGroupProduct()
	a := ResolveOptions(p)
	b := ResolveOptions(p)
	assert.Equal(t, a, b)
}

func TestProduct_Validate(t *testing.T) {
	p := twoGroupProduct()
	assert.NoError(t, p.Validate())

	p.CustomOptions = append(p.CustomOptions, OptionGroup{Key: "material", Title: "Material"})
	assert.ErrorIs(t, p.Validate(), ErrTooManyOptionGroups)
}

func TestProduct_HasVariants(t *testing.T) {
	assert.False(t, (&Product{}).HasVariants())
	assert.False(t, (&Product{CustomOptions: []OptionGroup{{Key: "color"}}}).HasVariants())
	assert.True(t, twoGroupProduct().HasVariants())
}
