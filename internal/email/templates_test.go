package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_PasswordResetBuiltIn(t *testing.T) {
	tm := NewTemplateManager()

	body, err := tm.Render("password_reset", TemplateData{"Code": "482913"})
	require.NoError(t, err)

	assert.Contains(t, body, "482913")
	assert.Contains(t, body, "expires in one hour")
}

func TestTemplateManager_UnknownTemplate(t *testing.T) {
	tm := NewTemplateManager()

	_, err := tm.Render("no-such-template", TemplateData{})
	assert.Error(t, err)
}

func TestTemplateManager_AddTemplate(t *testing.T) {
	tm := NewTemplateManager()

	require.NoError(t, tm.AddTemplate("welcome", "<p>Hello {{.Name}}</p>"))

	body, err := tm.Render("welcome", TemplateData{"Name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello Ada</p>", body)

	assert.Error(t, tm.AddTemplate("broken", "{{.Unclosed"))
}
