package patterns

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

func generateConditionalContent(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	cond := c.Text("condition", "false")
	b.bind(cond, entities.BindFlag)

	b.line(0, fmt.Sprintf(`<div v-if="%s">`, esc(cond)))
	writeBranch(b, c.Map("if_true"))
	b.line(0, "</div>")
	b.line(0, "<div v-else>")
	writeBranch(b, c.Map("if_false"))
	b.line(0, "</div>")
	return b.build()
}

func writeBranch(b *fragmentBuilder, branch entities.Value) {
	elements, ok := branch.Field("elements")
	if !ok {
		return
	}
	items, _ := elements.AsList()
	for _, el := range maps(items) {
		writeElement(b, 1, el)
	}
}

func generateModalDialog(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	visible := c.Text("visible_when", "false")
	b.bind(visible, entities.BindFlag)

	overlay := ""
	if handler := c.Text("overlay_click", ""); handler != "" {
		b.method(handler)
		overlay = fmt.Sprintf(` @click="%s"`, esc(handler))
	}

	b.line(0, fmt.Sprintf(`<div v-if="%s" class="modal-overlay"%s>`, esc(visible), overlay))
	b.line(1, `<div class="modal-content" @click.stop>`)
	b.line(2, fmt.Sprintf("<h3>%s</h3>", b.textOrBinding(c.Text("title", ""))))
	if content := c.Text("content", ""); content != "" {
		b.line(2, fmt.Sprintf(`<div class="modal-body">%s</div>`, b.textOrBinding(content)))
	}
	b.line(2, `<div class="modal-actions">`)
	for _, action := range maps(c.List("actions")) {
		handler := action.FieldText("action")
		b.method(handler)
		b.line(3, fmt.Sprintf(`<button @click="%s" class="%s">%s</button>`,
			esc(handler), esc(fieldOr(action, "style", "secondary")), esc(action.FieldText("text"))))
	}
	b.line(2, "</div>")
	b.line(1, "</div>")
	b.line(0, "</div>")
	return b.build()
}

func generateWizard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	current := c.Text("current_step", "current_step")
	steps := c.Text("steps_bind", "steps")
	b.bind(current, entities.BindNumber)
	b.bind(steps, entities.BindList)

	nav := c.Map("navigation")
	prev, _ := nav.Field("previous")
	next, _ := nav.Field("next")
	prevAction := fieldOr(prev, "action", "previousStep")
	nextAction := fieldOr(next, "action", "nextStep")
	prevDisabled := fieldOr(prev, "disabled_when", "false")
	nextDisabled := fieldOr(next, "disabled_when", "false")
	b.method(prevAction)
	b.method(nextAction)
	b.bind(prevDisabled, entities.BindFlag)
	b.bind(nextDisabled, entities.BindFlag)

	b.line(0, `<div class="wizard">`)
	b.line(1, `<div class="steps">`)
	b.line(2, fmt.Sprintf(`<div v-for="(step, index) in %s" :key="index" :class="{ active: %s === index }">`, esc(steps), esc(current)))
	b.line(3, "{{ step.title }}")
	b.line(2, "</div>")
	b.line(1, "</div>")
	b.line(1, `<div class="step-content">`)
	b.line(2, fmt.Sprintf(`<component :is="%s[%s].component" />`, esc(steps), esc(current)))
	b.line(1, "</div>")
	b.line(1, `<div class="step-actions">`)
	b.line(2, fmt.Sprintf(`<button @click="%s" :disabled="%s">%s</button>`,
		esc(prevAction), esc(prevDisabled), esc(fieldOr(prev, "text", "Previous"))))
	b.line(2, fmt.Sprintf(`<button @click="%s" :disabled="%s">%s</button>`,
		esc(nextAction), esc(nextDisabled), esc(fieldOr(next, "text", "Next"))))
	b.line(1, "</div>")
	b.line(0, "</div>")
	return b.build()
}

func generateProgressBar(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	current := c.Text("current_step", "")
	percent := c.Text("percent_bind", "progress_percent")
	b.bind(current, entities.BindNumber)
	b.bind(percent, entities.BindNumber)

	b.line(0, `<div class="progress-container">`)
	b.line(1, `<div class="progress-bar">`)
	b.line(2, fmt.Sprintf(`<div class="progress-fill" :style="{ width: %s + '%%' }"></div>`, esc(percent)))
	b.line(1, "</div>")
	b.line(1, fmt.Sprintf(`<div class="progress-text">{{ %s }} of %s</div>`, esc(current), esc(c.Text("total_steps", ""))))
	b.line(0, "</div>")
	return b.build()
}
