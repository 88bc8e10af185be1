package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionListValueNilMeansAbsent(t *testing.T) {
	var absent OptionList
	v, err := absent.Value()
	require.NoError(t, err)
	assert.Nil(t, v, "absent options must persist as SQL NULL")

	empty := OptionList{}
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v, "present-but-empty options must stay distinct from NULL")
}

func TestOptionListRoundTrip(t *testing.T) {
	opts := OptionList{
		{Value: "y", Label: "Yes"},
		{Value: "n", Label: "No"},
	}
	v, err := opts.Value()
	require.NoError(t, err)

	var scanned OptionList
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, opts, scanned)

	var fromString OptionList
	require.NoError(t, fromString.Scan(string(v.([]byte))))
	assert.Equal(t, opts, fromString)

	var fromNull OptionList
	require.NoError(t, fromNull.Scan(nil))
	assert.Nil(t, fromNull)
}

func TestValidQuestionType(t *testing.T) {
	for _, typ := range []string{"text", "textarea", "radio", "checkbox", "select", "number", "email", "date"} {
		assert.True(t, ValidQuestionType(typ), typ)
	}
	assert.False(t, ValidQuestionType("slider"))
	assert.False(t, ValidQuestionType(""))
}

func TestMultiValueRoundTrip(t *testing.T) {
	values := []string{"red", "blue", "green"}
	encoded := EncodeMultiValue(values)
	assert.Equal(t, "red,blue,green", encoded)
	assert.Equal(t, values, DecodeMultiValue(encoded))

	assert.Nil(t, DecodeMultiValue(""))
	assert.Equal(t, "", EncodeMultiValue(nil))
}
