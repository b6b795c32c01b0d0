package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Шаблон письма с кодом сброса пароля
const passwordResetTemplate = `
<p>You requested a password reset</p>
<p>Your reset code is <b>{{.Code}}</b></p>
<p>The code expires in one hour.</p>
<p>If you did not request a password reset, please ignore this email.</p>
`

// TemplateManager реализует TemplateRenderer
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	// Ошибку парсинга встроенного шаблона можно игнорировать только потому,
	// что он константный и покрыт тестом
	_ = tm.AddTemplate("password_reset", passwordResetTemplate)
	return tm
}

// AddTemplate добавляет шаблон в рендерер
func (tm *TemplateManager) AddTemplate(name string, tpl string) error {
	parsed, err := template.New(name).Parse(tpl)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = parsed
	tm.mutex.Unlock()
	return nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
