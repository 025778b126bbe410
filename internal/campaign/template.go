package campaign

import (
	"strings"

	"sautiai-dashboard/internal/contacts"
)

// RenderTemplate substitutes the supported placeholders with the contact's
// values. Supported placeholders: {name}, {debt_amount}, {phone_number}.
// Unknown placeholders are left verbatim so typos show up in review sends
// instead of silently vanishing.
func RenderTemplate(text string, c contacts.Contact) string {
	r := strings.NewReplacer(
		"{name}", c.Name,
		"{debt_amount}", contacts.FormatDebtAmount(c.DebtAmount),
		"{phone_number}", c.PhoneNumber,
	)
	return r.Replace(text)
}

// Render resolves both parts of a message template for one contact.
func (t Template) Render(c contacts.Contact) Template {
	return Template{
		Subject: RenderTemplate(t.Subject, c),
		Body:    RenderTemplate(t.Body, c),
	}
}
