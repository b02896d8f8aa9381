package outbound

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Text(t *testing.T) {
	p := Build("1555", "hello", "")

	assert.Equal(t, "text", p.Type)
	assert.Equal(t, "1555", p.To)
	require.NotNil(t, p.Text)
	assert.Equal(t, "hello", p.Text.Body)
	assert.Nil(t, p.Template)
}

func TestBuild_TextWinsOverTemplate(t *testing.T) {
	p := Build("1555", "hello", "promo")

	assert.Equal(t, "text", p.Type)
	assert.Nil(t, p.Template)
}

func TestBuild_Template(t *testing.T) {
	p := Build("1555", "", "promo")

	assert.Equal(t, "template", p.Type)
	assert.Nil(t, p.Text)
	require.NotNil(t, p.Template)
	assert.Equal(t, "promo", p.Template.Name)
	assert.Equal(t, "en_US", p.Template.Language.Code)
}

func TestBuild_DefaultTemplate(t *testing.T) {
	p := Build("1555", "", "")

	require.NotNil(t, p.Template)
	assert.Equal(t, DefaultTemplate, p.Template.Name)
}

func TestBuild_WireShape(t *testing.T) {
	data, err := json.Marshal(Build("1555", "", "promo"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"messaging_product": "whatsapp",
		"to": "1555",
		"type": "template",
		"template": {"name": "promo", "language": {"code": "en_US"}}
	}`, string(data))

	data, err = json.Marshal(Build("1555", "hi", ""))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"messaging_product": "whatsapp",
		"to": "1555",
		"type": "text",
		"text": {"body": "hi"}
	}`, string(data))
}
