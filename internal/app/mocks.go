package app

import "findartisan_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }
func (m *MockEmailProvider) SendWithTemplate(templateName string, data email.TemplateData, msg *email.Email) error {
	return nil
}
func (m *MockEmailProvider) SendPasswordResetCode(to, code string) error { return nil }
func (m *MockEmailProvider) Validate() error                             { return nil }
func (m *MockEmailProvider) Close() error                                { return nil }
