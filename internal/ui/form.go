package ui

import (
	"strings"

	"github.com/talkpad/talkpad/internal/focus"
	"github.com/talkpad/talkpad/internal/nav/list"
	"github.com/talkpad/talkpad/internal/store"
)

type formField int

const (
	fieldPhone formField = iota
	fieldName
)

func (f formField) prompt() string {
	if f == fieldName {
		return "Name: "
	}
	return "Phone: "
}

// contactForm backs the new and edit contact modal. Fields are edited one at
// a time through the keyboard buffer.
type contactForm struct {
	// contactID is zero when the form creates a contact.
	contactID int64
	phone     string
	name      string
	editing   formField
	// draft holds the message being composed when the form opened.
	draft  string
	fields *list.Navigator
}

func (f *contactForm) title() string {
	if f.contactID != 0 {
		return "Edit contact"
	}
	return "New contact"
}

func (f *contactForm) value(field formField) string {
	if field == fieldName {
		return f.name
	}
	return f.phone
}

func (m *Model) openContactForm(c store.Contact) {
	m.closeModal()
	m.form = &contactForm{
		contactID: c.ID,
		phone:     c.Phone,
		name:      c.Name,
		draft:     m.keyboard.Buffer().String(),
		fields:    list.New("contact-form", nil),
	}
	m.refreshForm()
	m.openModal(modalContact)
}

func (m *Model) editSelectedContact() {
	c, ok := m.contacts.Lookup(m.contacts.Selected())
	if !ok {
		m.setError("Select a contact first")
		return
	}
	m.openContactForm(c)
}

func (m *Model) formItems() []list.Item {
	f := m.form
	return []list.Item{
		{ID: "phone", Label: fieldPhone.prompt() + f.phone, Action: func() { m.editField(fieldPhone) }},
		{ID: "name", Label: fieldName.prompt() + f.name, Action: func() { m.editField(fieldName) }},
		{ID: "cancel", Label: "Cancel", Action: m.closeModal},
		{ID: "save", Label: "Save", Action: m.saveForm},
	}
}

func (m *Model) refreshForm() {
	if m.form != nil {
		m.form.fields.SetItems(m.formItems())
	}
}

// editField loads field into the keyboard buffer and hands focus to the
// keyboard. Enter stores the value, Esc discards it.
func (m *Model) editField(field formField) {
	m.form.editing = field
	m.keyboard.Buffer().Set(m.form.value(field))
	m.compose = composeField
	m.errMsg = ""
	m.broker.SetFocus(focus.Keyboard)
}

func (m *Model) commitField() {
	value := strings.TrimSpace(m.keyboard.Buffer().String())
	switch m.form.editing {
	case fieldPhone:
		m.form.phone = value
	case fieldName:
		m.form.name = value
	}
	m.leaveField()
}

// leaveField returns from a field edit to the form, cursor unchanged.
func (m *Model) leaveField() {
	m.compose = composeMessage
	m.keyboard.Buffer().Reset()
	m.refreshForm()
	m.broker.SetFocus(focus.Modal)
}

func (m *Model) saveForm() {
	f := m.form
	if f.phone == "" {
		m.setError("Phone number is required")
		return
	}
	m.errMsg = ""
	if f.contactID == 0 {
		m.queue(m.createContactCmd(f.phone, f.name))
		return
	}
	c, _ := m.contacts.Lookup(f.contactID)
	c.ID, c.Phone, c.Name = f.contactID, f.phone, f.name
	m.queue(m.updateContactCmd(c))
}
