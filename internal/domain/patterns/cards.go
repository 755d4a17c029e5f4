package patterns

import (
	"fmt"

	"github.com/reglet-dev/apmlc/internal/domain/entities"
)

// Card patterns render fixed layouts for quiz-style flows. Literal properties
// render as text; *_bind properties name data bindings.

func generateWelcomeCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	action := c.Text("action", "start_game")
	b.method(action)

	b.line(0, `<div class="welcome-card">`)
	b.line(1, fmt.Sprintf(`<h1 class="welcome-title">%s</h1>`, esc(c.Text("title", ""))))
	if sub := c.Text("subtitle", ""); sub != "" {
		b.line(1, fmt.Sprintf(`<h2 class="welcome-subtitle">%s</h2>`, esc(sub)))
	}
	if desc := c.Text("description", ""); desc != "" {
		b.line(1, fmt.Sprintf(`<p class="welcome-description">%s</p>`, esc(desc)))
	}
	if meta := c.Text("meta_info", ""); meta != "" {
		b.line(1, fmt.Sprintf(`<div class="welcome-meta">%s</div>`, esc(meta)))
	}
	b.line(1, fmt.Sprintf(`<button @click="%s" class="welcome-button">%s</button>`,
		esc(action), esc(c.Text("action_text", "Start"))))
	b.line(0, "</div>")
	return b.build()
}

// optionList renders a clickable v-for over an options binding.
func optionList(b *fragmentBuilder, depth int, class, options, action string) {
	b.bind(options, entities.BindList)
	b.method(action)
	b.line(depth, fmt.Sprintf(`<div class="%s">`, class))
	b.line(depth+1, fmt.Sprintf(`<div v-for="option in %s" :key="option.id" class="option-button" @click="%s(option.id)">`,
		esc(options), esc(handlerName(action))))
	b.line(depth+2, "{{ option.text }}")
	b.line(depth+1, "</div>")
	b.line(depth, "</div>")
}

// interpolate writes a bound value inside the given element when the property is set.
func interpolate(b *fragmentBuilder, depth int, c *entities.ComponentConfig, key, open, closing string) {
	name := c.Text(key, "")
	if name == "" {
		return
	}
	b.bind(name, entities.BindText)
	b.line(depth, fmt.Sprintf("%s{{ %s }}%s", open, esc(name), closing))
}

func generateScenarioCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	b.line(0, `<div class="scenario-card">`)
	interpolate(b, 1, c, "title_bind", `<h3 class="scenario-title">`, "</h3>")
	interpolate(b, 1, c, "situation_bind", `<p class="scenario-situation">`, "</p>")
	interpolate(b, 1, c, "question_bind", `<p class="scenario-question">`, "</p>")
	optionList(b, 1, "scenario-options", c.Text("options_bind", "options"), c.Text("action", "answer_first_question"))
	b.line(0, "</div>")
	return b.build()
}

func generateFollowupCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	b.line(0, `<div class="followup-card">`)
	if prev := c.Text("previous_answer_bind", ""); prev != "" {
		b.bind(prev, entities.BindText)
		b.line(1, `<div class="previous-answer">`)
		b.line(2, fmt.Sprintf("<small>You chose: {{ %s }}</small>", esc(prev)))
		b.line(1, "</div>")
	}
	interpolate(b, 1, c, "question_bind", `<p class="followup-question">`, "</p>")
	optionList(b, 1, "followup-options", c.Text("options_bind", "options"), c.Text("action", "answer_followup_question"))
	b.line(0, "</div>")
	return b.build()
}

func generateBreakthroughCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	action := c.Text("action", "show_results")
	b.method(action)

	b.line(0, `<div class="breakthrough-card">`)
	b.line(1, fmt.Sprintf(`<h2 class="breakthrough-title">%s</h2>`, esc(c.Text("title", ""))))
	if analysis := c.Text("pattern_analysis_bind", ""); analysis != "" {
		b.bind(analysis, entities.BindText)
		b.line(1, fmt.Sprintf(`<div class="breakthrough-analysis"><p>{{ %s }}</p></div>`, esc(analysis)))
	}
	if gaps := c.Text("gap_examples_bind", ""); gaps != "" {
		b.bind(gaps, entities.BindList)
		b.line(1, `<div class="breakthrough-examples">`)
		b.line(2, fmt.Sprintf(`<div v-for="gap in %s" :key="gap.id" class="gap-example">`, esc(gaps)))
		b.line(3, "<strong>{{ gap.scenario }}</strong>: {{ gap.description }}")
		b.line(2, "</div>")
		b.line(1, "</div>")
	}
	if text := c.Text("revelation_text", ""); text != "" {
		b.line(1, fmt.Sprintf(`<p class="breakthrough-revelation">%s</p>`, esc(text)))
	}
	b.line(1, fmt.Sprintf(`<button @click="%s" class="breakthrough-button">%s</button>`,
		esc(action), esc(c.Text("continue_text", "Continue"))))
	b.line(0, "</div>")
	return b.build()
}

func generateResultsCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	action := c.Text("action", "show_email_capture")
	b.method(action)

	b.line(0, `<div class="results-card">`)
	b.line(1, fmt.Sprintf(`<h2 class="results-title">%s</h2>`, esc(c.Text("title", ""))))
	if summary := c.Text("summary_bind", ""); summary != "" {
		b.bind(summary, entities.BindText)
		b.line(1, fmt.Sprintf(`<div class="results-summary"><p>{{ %s }}</p></div>`, esc(summary)))
	}
	if insights := c.Text("pattern_insights_bind", ""); insights != "" {
		b.bind(insights, entities.BindList)
		b.line(1, `<div class="results-insights">`)
		b.line(2, fmt.Sprintf(`<div v-for="insight in %s" :key="insight.id" class="insight-item">`, esc(insights)))
		b.line(3, "<h4>{{ insight.title }}</h4>")
		b.line(3, "<p>{{ insight.description }}</p>")
		b.line(2, "</div>")
		b.line(1, "</div>")
	}
	if next := c.Text("next_steps_text", ""); next != "" {
		b.line(1, fmt.Sprintf(`<p class="results-next-steps">%s</p>`, esc(next)))
	}
	b.line(1, fmt.Sprintf(`<button @click="%s" class="results-button">%s</button>`,
		esc(action), esc(c.Text("button_text", "Get Full Analysis"))))
	b.line(0, "</div>")
	return b.build()
}

func generateThriveCard(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	domains := c.Text("domains_bind", "thrive_domains")
	action := c.Text("action", "select_domain")
	b.bind(domains, entities.BindList)
	b.method(action)

	b.line(0, `<div class="thrive-card">`)
	b.line(1, fmt.Sprintf(`<h2 class="thrive-title">%s</h2>`, esc(c.Text("title", ""))))
	if desc := c.Text("description", ""); desc != "" {
		b.line(1, fmt.Sprintf(`<p class="thrive-description">%s</p>`, esc(desc)))
	}
	b.line(1, `<div class="thrive-domains">`)
	b.line(2, fmt.Sprintf(`<div v-for="domain in %s" :key="domain.letter" class="domain-item" @click="%s(domain.letter)">`,
		esc(domains), esc(handlerName(action))))
	b.line(3, `<div class="domain-letter">{{ domain.letter }}</div>`)
	b.line(3, `<div class="domain-info">`)
	b.line(4, "<h4>{{ domain.name }}</h4>")
	b.line(4, "<p>{{ domain.description }}</p>")
	b.line(3, "</div>")
	b.line(2, "</div>")
	b.line(1, "</div>")
	if q := c.Text("question", ""); q != "" {
		b.line(1, fmt.Sprintf(`<p class="thrive-question">%s</p>`, esc(q)))
	}
	b.line(0, "</div>")
	return b.build()
}

func generateCardContainer(c *entities.ComponentConfig) entities.Fragment {
	b := newBuilder()
	feedback := c.Text("feedback_bind", "feedback_message")
	b.bind(feedback, entities.BindText)

	b.line(0, `<div class="card-container">`)
	b.line(1, fmt.Sprintf("<h2>%s</h2>", esc(c.Text("title", ""))))
	if desc := c.Text("description", ""); desc != "" {
		b.line(1, fmt.Sprintf(`<p class="card-description">%s</p>`, esc(desc)))
	}
	b.line(1, `<div class="card-buttons">`)
	for _, button := range maps(c.List("buttons")) {
		action := fieldOr(button, "action", "handleClick")
		b.method(action)
		attrs := ""
		if cond := button.FieldText("conditional"); cond != "" {
			b.bind(cond, entities.BindFlag)
			attrs += fmt.Sprintf(` v-if="%s"`, esc(cond))
		}
		if tip := button.FieldText("tooltip"); tip != "" {
			attrs += fmt.Sprintf(` title="%s"`, esc(tip))
		}
		b.line(2, fmt.Sprintf(`<button class="btn btn-%s" @click="%s"%s>%s</button>`,
			esc(fieldOr(button, "style", "primary")), esc(action), attrs, esc(button.FieldText("text"))))
	}
	b.line(1, "</div>")
	b.line(1, fmt.Sprintf(`<div class="feedback-area" v-if="%s">{{ %s }}</div>`, esc(feedback), esc(feedback)))
	b.line(0, "</div>")
	return b.build()
}
