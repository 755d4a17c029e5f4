package patterns

import "fmt"

// builtins lists the rule-based patterns in registration order.
// Semantic matching picks the first definition whose keyword hits, so order matters.
var builtins = []Definition{
	{
		ID:               "form_input",
		Description:      "Form with bound inputs and a submit action",
		Generator:        GeneratorFunc(generateFormInput),
		Style:            formStyle,
		SemanticKeywords: []string{"form", "input", "field", "submit", "login", "register"},
	},
	{
		ID:             "text_area",
		Description:    "Multi-line text entry bound to a data field",
		Generator:      GeneratorFunc(generateFormInput),
		Style:          formStyle,
		RequiredFields: []string{"bind"},
	},
	{
		ID:               "action_list",
		Description:      "Repeated items with per-item action buttons",
		Generator:        GeneratorFunc(generateActionList),
		Style:            listStyle,
		RequiredFields:   []string{"data_source", "key_field"},
		SemanticKeywords: []string{"menu", "navigation", "actions", "buttons"},
	},
	{
		ID:             "conditional_content",
		Description:    "Content switched on a boolean condition",
		Generator:      GeneratorFunc(generateConditionalContent),
		RequiredFields: []string{"condition"},
	},
	{
		ID:               "modal_dialog",
		Description:      "Overlay dialog with title, body and actions",
		Generator:        GeneratorFunc(generateModalDialog),
		Style:            modalStyle,
		RequiredFields:   []string{"visible_when", "title"},
		SemanticKeywords: []string{"modal", "popup", "dialog", "overlay"},
	},
	{
		ID:               "data_table",
		Description:      "Tabular rendering of a list binding",
		Generator:        GeneratorFunc(generateDataTable),
		Style:            tableStyle,
		RequiredFields:   []string{"data_source", "columns"},
		SemanticKeywords: []string{"table", "grid", "data", "rows", "columns"},
	},
	{
		ID:               "wizard_component",
		Description:      "Multi-step flow with previous and next navigation",
		Generator:        GeneratorFunc(generateWizard),
		Style:            wizardStyle,
		RequiredFields:   []string{"current_step"},
		SemanticKeywords: []string{"wizard", "step", "multi-step", "progress"},
	},
	{
		ID:             "welcome_card",
		Description:    "Landing card with a start action",
		Generator:      GeneratorFunc(generateWelcomeCard),
		Style:          cardStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "scenario_card",
		Description:    "Question card with bound options",
		Generator:      GeneratorFunc(generateScenarioCard),
		Style:          cardStyle,
		RequiredFields: []string{"title_bind", "options_bind"},
	},
	{
		ID:             "followup_card",
		Description:    "Follow-up question card echoing the previous answer",
		Generator:      GeneratorFunc(generateFollowupCard),
		Style:          cardStyle,
		RequiredFields: []string{"question_bind", "options_bind"},
	},
	{
		ID:             "breakthrough_card",
		Description:    "Analysis card listing bound examples",
		Generator:      GeneratorFunc(generateBreakthroughCard),
		Style:          cardStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "results_card",
		Description:    "Summary card with insights and a follow-up action",
		Generator:      GeneratorFunc(generateResultsCard),
		Style:          cardStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "email_form",
		Description:    "Email capture form",
		Generator:      GeneratorFunc(generateEmailForm),
		Style:          formStyle + "\n" + emailStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "thrive_card",
		Description:    "Selectable domain grid",
		Generator:      GeneratorFunc(generateThriveCard),
		Style:          cardStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "progress_bar",
		Description:    "Step progress indicator",
		Generator:      GeneratorFunc(generateProgressBar),
		Style:          progressStyle,
		RequiredFields: []string{"current_step", "total_steps"},
	},
	{
		ID:             "card_container",
		Description:    "Card with styled buttons and a feedback area",
		Generator:      GeneratorFunc(generateCardContainer),
		Style:          cardStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "scrollable_panel",
		Description:    "Scrolling message history",
		Generator:      GeneratorFunc(generateScrollablePanel),
		Style:          panelStyle,
		RequiredFields: []string{"title"},
	},
	{
		ID:             "tabbed_panel",
		Description:    "Tab strip switching between content panes",
		Generator:      GeneratorFunc(generateTabbedPanel),
		Style:          tabStyle,
		RequiredFields: []string{"tabs"},
	},
}

// NewDefaultRegistry returns a sealed registry holding the built-in patterns.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range builtins {
		if err := r.Register(def); err != nil {
			panic(fmt.Sprintf("register built-in pattern %q: %v", def.ID, err))
		}
	}
	r.Seal()
	return r
}
