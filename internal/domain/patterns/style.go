package patterns

// BaseStyle is the shared dark theme emitted for every artifact.
const BaseStyle = `body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  background: #0a0a0a;
  color: #ffffff;
  margin: 0;
  padding: 20px;
}
.app-container {
  max-width: 800px;
  margin: 0 auto;
}
.component {
  background: #1a1a1a;
  border: 1px solid #333;
  border-radius: 8px;
  padding: 20px;
  margin: 20px 0;
}
.component.pending {
  border-style: dashed;
  opacity: 0.7;
}
h1 {
  color: #00ff88;
  text-align: center;
  margin-bottom: 30px;
}
h2, h3 {
  color: #00ff88;
  margin-bottom: 15px;
}
button, .btn {
  background: #00ff88;
  color: #000;
  border: none;
  padding: 12px 24px;
  border-radius: 4px;
  cursor: pointer;
  font-weight: 500;
  font-size: 16px;
}
button:disabled {
  opacity: 0.5;
  cursor: not-allowed;
}
button:hover:not(:disabled) {
  opacity: 0.9;
}
button.secondary, .btn-secondary {
  background: #333;
  color: #fff;
}
.btn-primary {
  background: #00ff88;
  color: #000;
}`

const formStyle = `form {
  display: flex;
  flex-direction: column;
  gap: 15px;
}
textarea, input {
  padding: 12px;
  border: 1px solid #333;
  border-radius: 4px;
  background: #0a0a0a;
  color: #ffffff;
  font-family: inherit;
  font-size: 16px;
}
textarea {
  resize: vertical;
  min-height: 100px;
}`

const listStyle = `.list-item {
  display: flex;
  justify-content: space-between;
  align-items: center;
  padding: 10px;
  border-bottom: 1px solid #333;
}
.list-item:last-child {
  border-bottom: none;
}`

const modalStyle = `.modal-overlay {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  bottom: 0;
  background: rgba(0, 0, 0, 0.8);
  display: flex;
  justify-content: center;
  align-items: center;
  z-index: 1000;
}
.modal-content {
  background: #1a1a1a;
  border: 1px solid #333;
  border-radius: 8px;
  padding: 30px;
  max-width: 500px;
  width: 90%;
}
.modal-actions {
  margin-top: 20px;
  display: flex;
  gap: 10px;
  justify-content: flex-end;
}`

const tableStyle = `table {
  width: 100%;
  border-collapse: collapse;
}
th, td {
  padding: 12px;
  text-align: left;
  border-bottom: 1px solid #333;
}
th {
  background: #333;
  font-weight: 600;
}`

const wizardStyle = `.wizard .steps {
  display: flex;
  gap: 10px;
  margin-bottom: 20px;
}
.wizard .steps .active {
  color: #00ff88;
  font-weight: 600;
}
.step-actions {
  display: flex;
  justify-content: space-between;
  margin-top: 20px;
}`

const cardStyle = `.welcome-card, .scenario-card, .followup-card, .breakthrough-card, .results-card, .thrive-card, .card-container {
  text-align: center;
}
.option-button, .domain-item, .insight-item, .gap-example {
  background: #0a0a0a;
  border: 1px solid #333;
  border-radius: 6px;
  padding: 12px;
  margin: 8px 0;
  cursor: pointer;
}
.option-button:hover, .domain-item:hover {
  border-color: #00ff88;
}
.domain-letter {
  font-size: 24px;
  color: #00ff88;
}
.card-buttons {
  display: flex;
  gap: 10px;
  justify-content: center;
}
.feedback-area {
  margin-top: 15px;
  color: #00ff88;
}`

const emailStyle = `.email-form-container {
  display: flex;
  gap: 10px;
}
.email-input {
  flex: 1;
}
.email-privacy {
  display: block;
  margin-top: 10px;
  color: #888;
}`

const progressStyle = `.progress-bar {
  height: 8px;
  background: #333;
  border-radius: 4px;
  overflow: hidden;
}
.progress-fill {
  height: 100%;
  background: #00ff88;
  transition: width 0.3s ease;
}
.progress-text {
  margin-top: 8px;
  text-align: right;
  color: #888;
}`

const panelStyle = `.scrollable-content {
  max-height: 400px;
  overflow-y: auto;
}
.conversation-message {
  padding: 10px;
  border-bottom: 1px solid #333;
}
.timestamp {
  font-size: 12px;
  color: #888;
}`

const tabStyle = `.tab-buttons {
  display: flex;
  gap: 5px;
  border-bottom: 1px solid #333;
}
.tab-button {
  background: transparent;
  color: #fff;
  border-radius: 4px 4px 0 0;
}
.tab-button.active {
  background: #00ff88;
  color: #000;
}
.tab-content {
  padding: 15px 0;
}`
