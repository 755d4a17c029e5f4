package patterns

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// generateFormInput renders form_input and text_area components.
func generateFormInput(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	action := c.Text("action", "submitForm")
	b.method(action)

	b.line(0, fmt.Sprintf(`<form @submit.prevent="%s">`, esc(action)))

	bind := c.Text("bind", "")
	placeholder := c.Text("placeholder", "")
	if bind != "" {
		b.bind(bind, entities.BindText)
		if c.PatternName == "text_area" {
			b.line(1, fmt.Sprintf(`<textarea v-model="%s" placeholder="%s" rows="%s"></textarea>`,
				esc(bind), esc(placeholder), esc(c.Text("rows", "3"))))
		} else {
			b.line(1, fmt.Sprintf(`<input v-model="%s" placeholder="%s">`, esc(bind), esc(placeholder)))
		}
	}

	for _, field := range c.List("fields") {
		name, ok := field.AsString()
		if !ok {
			continue
		}
		b.bind(name, entities.BindText)
		b.line(1, fmt.Sprintf(`<input v-model="%s" placeholder="%s">`, esc(name), esc(name)))
	}

	for _, el := range maps(c.List("elements")) {
		writeFormElement(b, 1, el)
	}

	if text := c.Text("submit_text", ""); text != "" {
		b.line(1, fmt.Sprintf(`<button type="submit">%s</button>`, esc(text)))
	}

	b.line(0, "</form>")
	return b.build()
}

func writeFormElement(b *fragmentBuilder, depth int, el entities.Value) {
	required := ""
	if v, ok := el.Field("required"); ok && v.Truthy() {
		required = " required"
	}

	switch el.FieldText("type") {
	case "text_area":
		bind := el.FieldText("bind")
		b.bind(bind, entities.BindText)
		b.line(depth, fmt.Sprintf(`<textarea v-model="%s" placeholder="%s" rows="%s"%s></textarea>`,
			esc(bind), esc(el.FieldText("placeholder")), esc(fieldOr(el, "rows", "3")), required))
	case "input":
		bind := el.FieldText("bind")
		b.bind(bind, entities.BindText)
		inputType := ""
		if t := el.FieldText("input_type"); t != "" {
			inputType = fmt.Sprintf(` type="%s"`, esc(t))
		}
		b.line(depth, fmt.Sprintf(`<input v-model="%s"%s placeholder="%s"%s>`,
			esc(bind), inputType, esc(el.FieldText("placeholder")), required))
	case "button":
		action := el.FieldText("action")
		disabled := fieldOr(el, "disabled_when", "false")
		b.method(action)
		b.bind(disabled, entities.BindFlag)
		b.line(depth, fmt.Sprintf(`<button @click="%s" :disabled="%s">%s</button>`,
			esc(action), esc(disabled), esc(el.FieldText("text"))))
	default:
		writeElement(b, depth, el)
	}
}

// writeElement renders a generic content element.
func writeElement(b *fragmentBuilder, depth int, el entities.Value) {
	switch el.FieldText("type") {
	case "heading":
		level := fieldOr(el, "level", "2")
		b.line(depth, fmt.Sprintf("<h%s>%s</h%s>", esc(level), b.textOrBinding(el.FieldText("text")), esc(level)))
	case "button":
		action := el.FieldText("action")
		b.method(action)
		b.line(depth, fmt.Sprintf(`<button @click="%s">%s</button>`, esc(action), esc(el.FieldText("text"))))
	case "text":
		b.line(depth, fmt.Sprintf("<p>%s</p>", b.textOrBinding(fieldOr(el, "content", el.FieldText("text")))))
	default:
		b.line(depth, fmt.Sprintf("<div>%s</div>", esc(fieldOr(el, "text", el.FieldText("content")))))
	}
}

func generateEmailForm(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	bind := c.Text("bind", "user_email")
	action := c.Text("action", "submit_email")
	b.bind(bind, entities.BindText)
	b.method(action)

	b.line(0, `<div class="email-form">`)
	b.line(1, fmt.Sprintf(`<h3 class="email-title">%s</h3>`, esc(c.Text("title", ""))))
	b.line(1, fmt.Sprintf(`<p class="email-description">%s</p>`, esc(c.Text("description", ""))))
	b.line(1, fmt.Sprintf(`<form @submit.prevent="%s" class="email-form-container">`, esc(action)))
	b.line(2, fmt.Sprintf(`<input v-model="%s" type="email" placeholder="%s" class="email-input" required>`,
		esc(bind), esc(c.Text("placeholder", ""))))
	b.line(2, fmt.Sprintf(`<button type="submit" class="email-button">%s</button>`, esc(c.Text("button_text", "Submit"))))
	b.line(1, "</form>")
	if note := c.Text("privacy_note", ""); note != "" {
		b.line(1, fmt.Sprintf(`<small class="email-privacy">%s</small>`, esc(note)))
	}
	b.line(0, "</div>")
	return b.build()
}
