package patterns

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

func generateActionList(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	source := c.Text("data_source", "")
	key := c.Text("key_field", "id")
	display := c.Text("display_field", "text")
	b.bind(source, entities.BindList)

	b.line(0, fmt.Sprintf(`<div v-for="item in %s" :key="item.%s" class="list-item">`, esc(source), esc(key)))
	b.line(1, fmt.Sprintf("<span>{{ item.%s }}</span>", esc(display)))
	for _, action := range maps(c.List("actions")) {
		handler := action.FieldText("action")
		b.method(handler)
		b.line(1, fmt.Sprintf(`<button @click="%s(item.%s)">%s</button>`,
			esc(handlerName(handler)), esc(key), esc(action.FieldText("text"))))
	}
	b.line(0, "</div>")
	return b.build()
}

type column struct {
	key   string
	label string
}

func columnsOf(items []entities.Value) []column {
	cols := make([]column, 0, len(items))
	for _, item := range items {
		if s, ok := item.AsString(); ok {
			cols = append(cols, column{key: s, label: s})
			continue
		}
		key := item.FieldText("key")
		cols = append(cols, column{key: key, label: fieldOr(item, "label", key)})
	}
	return cols
}

func generateDataTable(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	source := c.Text("data_source", "")
	key := c.Text("key_field", "id")
	cols := columnsOf(c.List("columns"))
	b.bind(source, entities.BindList)

	b.line(0, "<table>")
	b.line(1, "<thead>")
	b.line(2, "<tr>")
	for _, col := range cols {
		b.line(3, fmt.Sprintf("<th>%s</th>", esc(col.label)))
	}
	b.line(2, "</tr>")
	b.line(1, "</thead>")
	b.line(1, "<tbody>")
	b.line(2, fmt.Sprintf(`<tr v-for="row in %s" :key="row.%s">`, esc(source), esc(key)))
	for _, col := range cols {
		b.line(3, fmt.Sprintf("<td>{{ row.%s }}</td>", esc(col.key)))
	}
	b.line(2, "</tr>")
	b.line(1, "</tbody>")
	b.line(0, "</table>")
	return b.build()
}

func generateScrollablePanel(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	source := c.Text("data_source", "conversation_messages")
	b.bind(source, entities.BindList)
	b.method("formatTime")

	b.line(0, `<div class="scrollable-panel">`)
	b.line(1, fmt.Sprintf("<h2>%s</h2>", esc(c.Text("title", ""))))
	b.line(1, `<div class="scrollable-content">`)
	b.line(2, fmt.Sprintf(`<div v-for="message in %s" :key="message.timestamp" :class="'conversation-message ' + message.type">`, esc(source)))
	b.line(3, `<div class="timestamp">{{ formatTime(message.timestamp) }}</div>`)
	b.line(3, `<div class="message-content">{{ message.content }}</div>`)
	b.line(2, "</div>")
	b.line(1, "</div>")
	b.line(0, "</div>")
	return b.build()
}

func generateTabbedPanel(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	active := c.Text("bind", "active_tab")
	b.bind(active, entities.BindText)
	tabs := maps(c.List("tabs"))

	b.line(0, `<div class="tabbed-panel">`)
	if title := c.Text("title", ""); title != "" {
		b.line(1, fmt.Sprintf("<h2>%s</h2>", esc(title)))
	}
	b.line(1, `<div class="tab-buttons">`)
	for _, tab := range tabs {
		name := tab.FieldText("name")
		key := slug(name)
		label := name
		if icon := tab.FieldText("icon"); icon != "" {
			label = icon + " " + name
		}
		b.line(2, fmt.Sprintf(`<button class="tab-button" :class="{ active: %s === '%s' }" @click="%s = '%s'">%s</button>`,
			esc(active), esc(key), esc(active), esc(key), esc(label)))
	}
	b.line(1, "</div>")
	b.line(1, `<div class="tab-content-area">`)
	for _, tab := range tabs {
		key := slug(tab.FieldText("name"))
		b.line(2, fmt.Sprintf(`<div v-if="%s === '%s'" class="tab-content">`, esc(active), esc(key)))
		if content := tab.FieldText("content"); content != "" {
			b.line(3, fmt.Sprintf("<p>%s</p>", b.textOrBinding(content)))
		}
		if elements, ok := tab.Field("elements"); ok {
			items, _ := elements.AsList()
			for _, el := range maps(items) {
				writeElement(b, 3, el)
			}
		}
		b.line(2, "</div>")
	}
	b.line(1, "</div>")
	b.line(0, "</div>")
	return b.build()
}
